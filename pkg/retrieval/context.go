package retrieval

import (
	"strings"

	"github.com/stocktide/curator/pkg/qdrant"
)

const (
	// SnippetLimit caps the length of a single hit's contribution, so
	// one oversized document cannot crowd out every other hit.
	SnippetLimit = 500

	// DefaultMaxContextLength is the total budget applied when the
	// caller does not specify one.
	DefaultMaxContextLength = 2000

	// separator delimits snippets in the assembled context text.
	separator = "\n\n---\n\n"
)

// Context is the result of context assembly. Hits always carries the
// full search result list, even when the length budget cut assembly
// short, so callers can still inspect scores and payloads of everything
// the index returned.
type Context struct {
	Query       string             `json:"query"`
	Hits        []qdrant.SearchHit `json:"hits"`
	ContextText string             `json:"context_text"`
}

// BuildContext assembles a context string from search hits, in the order
// given, under a total length budget.
//
// Each hit contributes the "content" field of its payload, truncated to
// SnippetLimit characters. Hits are consumed strictly in order: when the
// next snippet would overflow the remaining budget, assembly stops there
// rather than skipping ahead to a smaller snippet, preserving the
// ranking the index produced. Separators do not count against the
// budget.
//
// maxTotalLength is taken literally: a budget of 0 admits only empty
// snippets, so any hit with content stops assembly immediately.
// Callers wanting a default budget apply it before calling, as
// Retriever does.
//
// The function is pure. It performs no I/O and does not mutate hits.
func BuildContext(query string, hits []qdrant.SearchHit, maxTotalLength int) Context {
	parts := make([]string, 0, len(hits))
	currentLength := 0

	for _, hit := range hits {
		snippet := truncate(contentOf(hit), SnippetLimit)

		if currentLength+len([]rune(snippet)) > maxTotalLength {
			break
		}

		parts = append(parts, snippet)
		currentLength += len([]rune(snippet))
	}

	return Context{
		Query:       query,
		Hits:        hits,
		ContextText: strings.Join(parts, separator),
	}
}

// contentOf extracts the text content of a hit's payload. Missing or
// non-string content yields an empty string.
func contentOf(hit qdrant.SearchHit) string {
	if s, ok := hit.Payload["content"].(string); ok {
		return s
	}
	return ""
}

// truncate cuts s to at most limit characters, counting runes so a
// multi-byte character is never split.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
