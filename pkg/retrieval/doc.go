// Package retrieval assembles prompt context from vector search hits.
//
// BuildContext is a pure function that concatenates hit snippets under a
// total length budget; Retriever composes a vector index with context
// assembly for callers that want a single entry point.
//
//	ret := retrieval.NewRetriever(indexClient, cfg, log)
//	result, err := ret.Retrieve(ctx, retrieval.Query{
//	    Text:       "what changed in the pricing model",
//	    Vector:     queryVec,
//	    Collection: "summaries",
//	    Limit:      5,
//	})
//	prompt := result.ContextText
package retrieval
