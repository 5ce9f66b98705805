package retrieval

import (
	"context"
	"fmt"

	"github.com/stocktide/curator/pkg/qdrant"
)

// Index is the slice of vector index behavior the retriever depends on.
// *qdrant.Client satisfies it.
type Index interface {
	Search(ctx context.Context, req qdrant.SearchRequest) ([]qdrant.SearchHit, error)
}

// Logger defines the logging operations the retrieval package needs.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Config holds retrieval behavior settings.
type Config struct {
	// Total context length budget. Zero means DefaultMaxContextLength.
	MaxContextLength int `yaml:"max_context_length" env:"RETRIEVAL_MAX_CONTEXT_LENGTH"`

	// Number of hits requested per search when the query does not
	// specify one.
	DefaultLimit int `yaml:"default_limit" env:"RETRIEVAL_DEFAULT_LIMIT"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		MaxContextLength: DefaultMaxContextLength,
		DefaultLimit:     5,
	}
}

// Query describes a single retrieval request. Vector must already be
// embedded; this package does not call an embedding model.
type Query struct {
	Text           string
	Vector         []float32
	Collection     string
	Limit          int
	ScoreThreshold *float32
	Filter         map[string]any

	// Overrides Config.MaxContextLength when positive.
	MaxContextLength int
}

// Retriever executes vector searches and assembles the results into
// prompt context.
type Retriever struct {
	index  Index
	cfg    Config
	logger Logger
}

// NewRetriever creates a new Retriever. It is safe for concurrent use.
func NewRetriever(index Index, cfg Config, logger Logger) *Retriever {
	if cfg.MaxContextLength <= 0 {
		cfg.MaxContextLength = DefaultMaxContextLength
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 5
	}
	return &Retriever{index: index, cfg: cfg, logger: logger}
}

// Retrieve searches the collection and builds context from the hits.
// Index failures are returned unwrapped enough for errors.Is checks
// against qdrant.ErrIndexUnavailable.
func (r *Retriever) Retrieve(ctx context.Context, q Query) (*Context, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = r.cfg.DefaultLimit
	}

	hits, err := r.index.Search(ctx, qdrant.SearchRequest{
		Collection:     q.Collection,
		Vector:         q.Vector,
		Limit:          limit,
		ScoreThreshold: q.ScoreThreshold,
		Filter:         q.Filter,
	})
	if err != nil {
		r.logger.Error("retrieval search failed", err, map[string]interface{}{
			"collection": q.Collection,
		})
		return nil, fmt.Errorf("retrieval search in '%s': %w", q.Collection, err)
	}

	budget := q.MaxContextLength
	if budget <= 0 {
		budget = r.cfg.MaxContextLength
	}

	result := BuildContext(q.Text, hits, budget)

	r.logger.Debug("retrieval completed", nil, map[string]interface{}{
		"collection":   q.Collection,
		"hits":         len(hits),
		"context_size": len(result.ContextText),
	})
	return &result, nil
}
