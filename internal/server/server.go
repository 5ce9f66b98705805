package server

import (
	"context"
	"net/http"

	"github.com/stocktide/curator/internal/auth"
	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/internal/repository"
	"github.com/stocktide/curator/pkg/config"
	"github.com/stocktide/curator/pkg/metrics"
)

// Logger defines the logging operations the server package needs. Any
// implementation conforming to these methods can be injected.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// AccountStore is the account persistence surface the handlers use.
type AccountStore interface {
	List(ctx context.Context, p repository.AccountListParams) ([]domain.Account, int, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	HandleExists(ctx context.Context, handle, excludeID string) (bool, error)
	Create(ctx context.Context, in domain.CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, id string, in domain.UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, onlyActive bool) (int, error)
}

// BucketStore is the bucket persistence surface the handlers use.
type BucketStore interface {
	List(ctx context.Context, p repository.BucketListParams) ([]domain.Bucket, int, error)
	Get(ctx context.Context, id string) (*domain.Bucket, error)
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	MacroExists(ctx context.Context) (bool, error)
	Create(ctx context.Context, in domain.CreateBucketInput) (*domain.Bucket, error)
	Update(ctx context.Context, id string, in domain.UpdateBucketInput) (*domain.Bucket, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, onlyActive bool) (int, error)
}

// AssociationStore is the bucket-membership surface the handlers use.
type AssociationStore interface {
	ListMembers(ctx context.Context, bucketID string) ([]domain.BucketMember, error)
	Assign(ctx context.Context, bucketID, accountID string, priority int) (*domain.AccountBucket, error)
	Remove(ctx context.Context, bucketID, accountID string) error
}

// Server holds the handlers for the admin API.
type Server struct {
	accounts     AccountStore
	buckets      BucketStore
	associations AssociationStore
	tokens       *auth.Manager
	authCfg      config.AuthConfig
	metrics      *metrics.Metrics
	logger       Logger
}

// NewServer creates the admin API server.
func NewServer(
	accounts AccountStore,
	buckets BucketStore,
	associations AssociationStore,
	tokens *auth.Manager,
	authCfg config.AuthConfig,
	m *metrics.Metrics,
	logger Logger,
) *Server {
	return &Server{
		accounts:     accounts,
		buckets:      buckets,
		associations: associations,
		tokens:       tokens,
		authCfg:      authCfg,
		metrics:      m,
		logger:       logger,
	}
}

// requireAuth rejects requests without a valid bearer token. The check
// runs before any request validation.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.ExtractBearer(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized. Please login.")
			return
		}
		if _, err := s.tokens.VerifyToken(token); err != nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized. Please login.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
