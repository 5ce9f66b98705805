package qdrant

import (
	"context"
	"fmt"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// ──────────────────────────────────────────────────────────────
// EnsureCollection
// ──────────────────────────────────────────────────────────────
//
// EnsureCollection verifies that a collection exists with the expected
// vector dimensionality, creating it with cosine distance if missing.
//
// It is safe to call multiple times — if the collection already exists
// with the right dimensionality, the function exits early. An existing
// collection whose dimensionality differs is a fatal configuration
// conflict and reported as ErrDimensionMismatch; the collection is never
// dropped or recreated implicitly.
func (c *Client) EnsureCollection(ctx context.Context, name string, dim uint64) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if dim == 0 {
		return fmt.Errorf("vector dimension must be greater than 0")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w: %w", ErrIndexUnavailable, err)
	}

	if slices.Contains(collections, name) {
		existing, err := c.collectionDim(ctx, name)
		if err != nil {
			return err
		}
		if existing != dim {
			return fmt.Errorf("[Qdrant] collection '%s' exists with dimension %d, expected %d: %w",
				name, existing, dim, ErrDimensionMismatch)
		}
		c.logger.Debug("[Qdrant] collection already exists", nil, map[string]interface{}{
			"collection": name,
			"dimension":  dim,
		})
		return nil
	}

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dim,
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w: %w", name, ErrIndexUnavailable, err)
	}

	c.dims.Store(name, dim)
	c.logger.Info("[Qdrant] collection created", nil, map[string]interface{}{
		"collection": name,
		"dimension":  dim,
		"distance":   "cosine",
	})
	return nil
}

// ──────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────
//
// Upsert inserts or replaces points in a collection. Existing IDs are
// overwritten entirely, including payload.
//
// Every vector is validated against the collection's dimensionality
// before anything is sent; a single bad vector rejects the whole call
// with ErrDimensionMismatch.
//
// The request blocks until the points are persisted (Wait=true), so a
// nil return guarantees the points are visible to subsequent searches.
// Large inputs are split into chunks of defaultBatchSize to reduce
// request size.
func (c *Client) Upsert(ctx context.Context, collection string, points []Point) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(points) == 0 {
		return nil
	}

	dim, err := c.collectionDim(ctx, collection)
	if err != nil {
		return err
	}
	for i, p := range points {
		if uint64(len(p.Vector)) != dim {
			return fmt.Errorf("[Qdrant] point [%d] has dimension %d, collection '%s' expects %d: %w",
				i, len(p.Vector), collection, dim, ErrDimensionMismatch)
		}
	}

	for start := 0; start < len(points); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(points))

		if err := c.upsertBatch(ctx, collection, points[start:end]); err != nil {
			return fmt.Errorf("[Qdrant] batch upsert failed at [%d:%d]: %w", start, end, err)
		}
		c.logger.Debug("[Qdrant] upserted batch", nil, map[string]interface{}{
			"collection": collection,
			"from":       start,
			"to":         end,
		})
	}

	return nil
}

// upsertBatch sends a single Upsert request for a slice of points with
// Wait=true so data is persisted before returning.
func (c *Client) upsertBatch(ctx context.Context, collection string, batch []Point) error {
	qdrantPoints := make([]*qdrant.PointStruct, 0, len(batch))
	for _, p := range batch {
		qdrantPoints = append(qdrantPoints, &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
		Wait:           &wait,
	}

	if _, err := c.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────
//
// Search performs a cosine similarity search and returns up to
// req.Limit hits ordered by descending score.
//
// An optional score threshold excludes weaker matches; when nothing
// clears it, the result is an empty slice, not an error. Payload
// filters are combined with AND logic and applied before the limit, so
// the caller always receives the best matching vectors that satisfy
// every constraint.
//
// The relative order of hits with exactly equal scores is not defined.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]SearchHit, error) {
	if err := validateSearchInput(req.Collection, req.Vector, req.Limit); err != nil {
		return nil, err
	}

	dim, err := c.collectionDim(ctx, req.Collection)
	if err != nil {
		return nil, err
	}
	if uint64(len(req.Vector)) != dim {
		return nil, fmt.Errorf("[Qdrant] query vector has dimension %d, collection '%s' expects %d: %w",
			len(req.Vector), req.Collection, dim, ErrDimensionMismatch)
	}

	filter, err := buildFilter(req.Filter)
	if err != nil {
		return nil, err
	}

	limit := uint64(req.Limit)
	query := &qdrant.QueryPoints{
		CollectionName: req.Collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		ScoreThreshold: req.ScoreThreshold,
		Filter:         filter,
	}

	resp, err := c.api.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] search failed: %w: %w", ErrIndexUnavailable, err)
	}

	hits, err := parseSearchHits(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("[Qdrant] search completed", nil, map[string]interface{}{
		"collection": req.Collection,
		"hits":       len(hits),
	})
	return hits, nil
}

// ──────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────
//
// Delete removes points from a collection by their IDs, waiting
// synchronously for completion. IDs that do not exist are ignored, so
// the call succeeds whether or not the points were present.
func (c *Client) Delete(ctx context.Context, collection string, ids []string) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(ids) == 0 {
		return nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	}

	resp, err := c.api.Delete(ctx, req)
	if err != nil {
		return fmt.Errorf("[Qdrant] delete failed: %w: %w", ErrIndexUnavailable, err)
	}

	c.logger.Debug("[Qdrant] delete completed", nil, map[string]interface{}{
		"collection": collection,
		"count":      len(ids),
		"status":     resp.GetStatus().String(),
	})
	return nil
}

// ──────────────────────────────────────────────────────────────
// ListCollections
// ──────────────────────────────────────────────────────────────
//
// ListCollections retrieves all existing collection names.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to list collections: %w: %w", ErrIndexUnavailable, err)
	}
	return names, nil
}
