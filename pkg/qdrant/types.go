package qdrant

// Point is a single embedding together with its identifier and metadata.
//
// ID must be a UUID or an unsigned integer rendered as a string; Qdrant
// accepts no other point identifier formats.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// SearchHit is one result of a similarity search, ordered by descending
// score. The payload is the full metadata stored with the point.
type SearchHit struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// SearchRequest describes a single similarity search.
//
// Filter holds exact-match payload constraints; all entries must match
// (AND logic). Supported value types are string, bool, int, int64 and
// float64 (treated as an integer, matching JSON-decoded numbers).
type SearchRequest struct {
	Collection     string
	Vector         []float32
	Limit          int
	ScoreThreshold *float32
	Filter         map[string]any
}
