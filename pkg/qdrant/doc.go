// Package qdrant provides a thin, dependency-injected wrapper around the
// official Qdrant Go client for storing and searching content embeddings.
//
// # Core Features
//
//   - Managed gRPC client lifecycle with Fx integration
//   - Startup health check (fail fast on unreachable index)
//   - Idempotent collection bootstrap with cosine distance
//   - Synchronous upserts (Wait=true) so inserted points are immediately
//     searchable
//   - Similarity search with optional score threshold and exact-match
//     payload filters combined with AND logic
//   - Client-side vector dimension validation before any write or search
//
// # Usage
//
//	client, err := qdrant.NewClient(cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.EnsureCollection(ctx, "tweets", 1024); err != nil {
//	    return err
//	}
//
//	hits, err := client.Search(ctx, qdrant.SearchRequest{
//	    Collection: "tweets",
//	    Vector:     queryVec,
//	    Limit:      5,
//	    Filter:     map[string]any{"account_id": accountID},
//	})
//
// Availability failures are reported as ErrIndexUnavailable and dimension
// conflicts as ErrDimensionMismatch; callers can branch on them with
// errors.Is.
package qdrant
