package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktide/curator/internal/auth"
	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/internal/repository"
	"github.com/stocktide/curator/pkg/config"
	"github.com/stocktide/curator/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

type fakeAccounts struct {
	listFn   func(p repository.AccountListParams) ([]domain.Account, int, error)
	getFn    func(id string) (*domain.Account, error)
	existsFn func(handle, excludeID string) (bool, error)
	createFn func(in domain.CreateAccountInput) (*domain.Account, error)
	updateFn func(id string, in domain.UpdateAccountInput) (*domain.Account, error)
	deleteFn func(id string) error
	countFn  func(onlyActive bool) (int, error)
}

func (f *fakeAccounts) List(_ context.Context, p repository.AccountListParams) ([]domain.Account, int, error) {
	if f.listFn == nil {
		return nil, 0, nil
	}
	return f.listFn(p)
}

func (f *fakeAccounts) Get(_ context.Context, id string) (*domain.Account, error) {
	if f.getFn == nil {
		return nil, domain.NotFoundf("account not found")
	}
	return f.getFn(id)
}

func (f *fakeAccounts) HandleExists(_ context.Context, handle, excludeID string) (bool, error) {
	if f.existsFn == nil {
		return false, nil
	}
	return f.existsFn(handle, excludeID)
}

func (f *fakeAccounts) Create(_ context.Context, in domain.CreateAccountInput) (*domain.Account, error) {
	if f.createFn == nil {
		return &domain.Account{ID: "acc-1", TwitterHandle: in.TwitterHandle, IsActive: true}, nil
	}
	return f.createFn(in)
}

func (f *fakeAccounts) Update(_ context.Context, id string, in domain.UpdateAccountInput) (*domain.Account, error) {
	if f.updateFn == nil {
		if in.Empty() {
			return nil, domain.Validationf("no fields to update")
		}
		return &domain.Account{ID: id}, nil
	}
	return f.updateFn(id, in)
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(id)
}

func (f *fakeAccounts) Count(_ context.Context, onlyActive bool) (int, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(onlyActive)
}

type fakeBuckets struct {
	listFn        func(p repository.BucketListParams) ([]domain.Bucket, int, error)
	getFn         func(id string) (*domain.Bucket, error)
	nameExistsFn  func(name, excludeID string) (bool, error)
	macroExistsFn func() (bool, error)
	createFn      func(in domain.CreateBucketInput) (*domain.Bucket, error)
	updateFn      func(id string, in domain.UpdateBucketInput) (*domain.Bucket, error)
	deleteFn      func(id string) error
	countFn       func(onlyActive bool) (int, error)
}

func (f *fakeBuckets) List(_ context.Context, p repository.BucketListParams) ([]domain.Bucket, int, error) {
	if f.listFn == nil {
		return nil, 0, nil
	}
	return f.listFn(p)
}

func (f *fakeBuckets) Get(_ context.Context, id string) (*domain.Bucket, error) {
	if f.getFn == nil {
		return nil, domain.NotFoundf("bucket not found")
	}
	return f.getFn(id)
}

func (f *fakeBuckets) NameExists(_ context.Context, name, excludeID string) (bool, error) {
	if f.nameExistsFn == nil {
		return false, nil
	}
	return f.nameExistsFn(name, excludeID)
}

func (f *fakeBuckets) MacroExists(_ context.Context) (bool, error) {
	if f.macroExistsFn == nil {
		return false, nil
	}
	return f.macroExistsFn()
}

func (f *fakeBuckets) Create(_ context.Context, in domain.CreateBucketInput) (*domain.Bucket, error) {
	if f.createFn == nil {
		interval := domain.DefaultCollectionInterval
		if in.CollectionIntervalMinutes != nil {
			interval = *in.CollectionIntervalMinutes
		}
		return &domain.Bucket{
			ID: "bkt-1", Name: in.Name, Type: in.Type, Persona: in.Persona,
			CollectionIntervalMinutes: interval, IsActive: true,
		}, nil
	}
	return f.createFn(in)
}

func (f *fakeBuckets) Update(_ context.Context, id string, in domain.UpdateBucketInput) (*domain.Bucket, error) {
	if f.updateFn == nil {
		if in.Empty() {
			return nil, domain.Validationf("no fields to update")
		}
		return &domain.Bucket{ID: id}, nil
	}
	return f.updateFn(id, in)
}

func (f *fakeBuckets) Delete(_ context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(id)
}

func (f *fakeBuckets) Count(_ context.Context, onlyActive bool) (int, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(onlyActive)
}

type fakeAssociations struct {
	listFn   func(bucketID string) ([]domain.BucketMember, error)
	assignFn func(bucketID, accountID string, priority int) (*domain.AccountBucket, error)
	removeFn func(bucketID, accountID string) error
}

func (f *fakeAssociations) ListMembers(_ context.Context, bucketID string) ([]domain.BucketMember, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(bucketID)
}

func (f *fakeAssociations) Assign(_ context.Context, bucketID, accountID string, priority int) (*domain.AccountBucket, error) {
	if f.assignFn == nil {
		return &domain.AccountBucket{ID: "ab-1", BucketID: bucketID, AccountID: accountID, Priority: priority}, nil
	}
	return f.assignFn(bucketID, accountID, priority)
}

func (f *fakeAssociations) Remove(_ context.Context, bucketID, accountID string) error {
	if f.removeFn == nil {
		return nil
	}
	return f.removeFn(bucketID, accountID)
}

type testServer struct {
	handler http.Handler
	tokens  *auth.Manager
}

func newTestServer(accounts AccountStore, buckets BucketStore, associations AssociationStore) testServer {
	tokens := auth.NewManager("test-secret", time.Hour)
	authCfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: "hunter2",
	}
	s := NewServer(accounts, buckets, associations, tokens, authCfg, metrics.NewMetrics(metrics.DefaultConfig()), nopLogger{})
	return testServer{handler: s.Routes(), tokens: tokens}
}

func (ts testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if authed {
		token, err := ts.tokens.GenerateToken("admin@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestLogin(t *testing.T) {
	ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})

	t.Run("success", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "admin@example.com", "password": "hunter2"}, false)
		require.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Login successful", env.Message)

		var data struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, "admin@example.com", data.User.Email)

		_, err := ts.tokens.VerifyToken(data.Token)
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "admin@example.com", "password": "wrong"}, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Error)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com"}, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email format", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "not-an-email", "password": "x"}, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email format", decodeEnvelope(t, rec).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		ts.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})

	t.Run("missing token rejected before validation", func(t *testing.T) {
		// Invalid body: the 401 must win over the 400.
		req := httptest.NewRequest(http.MethodPost, "/api/admin/accounts", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		ts.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized. Please login.", decodeEnvelope(t, rec).Error)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		ts.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/admin/accounts", nil, true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health and metrics open", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", nil, false).Code)
		assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/metrics", nil, false).Code)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})

	rec := ts.do(t, http.MethodDelete, "/api/auth/login", nil, false)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Method not allowed", env.Error)
}

func TestListAccounts(t *testing.T) {
	accounts := &fakeAccounts{
		listFn: func(p repository.AccountListParams) ([]domain.Account, int, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 10, p.PageSize)
			assert.Equal(t, "fin", p.Search)
			require.NotNil(t, p.IsActive)
			assert.True(t, *p.IsActive)
			return []domain.Account{{ID: "a1"}, {ID: "a2"}}, 45, nil
		},
	}
	ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})

	rec := ts.do(t, http.MethodGet, "/api/admin/accounts?page=2&page_size=10&search=fin&is_active=true", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Data       []domain.Account `json:"data"`
		Total      int              `json:"total"`
		Page       int              `json:"page"`
		PageSize   int              `json:"page_size"`
		TotalPages int              `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Len(t, data.Data, 2)
	assert.Equal(t, 45, data.Total)
	assert.Equal(t, 2, data.Page)
	assert.Equal(t, 10, data.PageSize)
	assert.Equal(t, 5, data.TotalPages)
}

func TestListAccountsClampsPageSize(t *testing.T) {
	accounts := &fakeAccounts{
		listFn: func(p repository.AccountListParams) ([]domain.Account, int, error) {
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, 100, p.PageSize)
			return nil, 0, nil
		},
	}
	ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})

	rec := ts.do(t, http.MethodGet, "/api/admin/accounts?page=0&page_size=500", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAccount(t *testing.T) {
	t.Run("normalizes handle", func(t *testing.T) {
		accounts := &fakeAccounts{
			createFn: func(in domain.CreateAccountInput) (*domain.Account, error) {
				assert.Equal(t, "finwatch", in.TwitterHandle)
				return &domain.Account{ID: "a1", TwitterHandle: in.TwitterHandle}, nil
			},
		}
		ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})

		rec := ts.do(t, http.MethodPost, "/api/admin/accounts",
			map[string]string{"twitter_handle": "@finwatch"}, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Account created successfully", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing handle", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/accounts", map[string]string{}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "twitter_handle is required", decodeEnvelope(t, rec).Error)
	})

	t.Run("invalid handle", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/accounts",
			map[string]string{"twitter_handle": "way_too_long_for_twitter"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate handle", func(t *testing.T) {
		accounts := &fakeAccounts{
			existsFn: func(handle, excludeID string) (bool, error) { return true, nil },
		}
		ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/accounts",
			map[string]string{"twitter_handle": "finwatch"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "An account with this handle already exists", decodeEnvelope(t, rec).Error)
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("empty update", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPut, "/api/admin/accounts/a1", map[string]string{}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no fields to update", decodeEnvelope(t, rec).Error)
	})

	t.Run("handle conflict excludes self", func(t *testing.T) {
		accounts := &fakeAccounts{
			existsFn: func(handle, excludeID string) (bool, error) {
				assert.Equal(t, "finwatch", handle)
				assert.Equal(t, "a1", excludeID)
				return false, nil
			},
		}
		ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPut, "/api/admin/accounts/a1",
			map[string]string{"twitter_handle": "@finwatch"}, true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing account", func(t *testing.T) {
		accounts := &fakeAccounts{
			updateFn: func(id string, in domain.UpdateAccountInput) (*domain.Account, error) {
				return nil, domain.NotFoundf("account not found")
			},
		}
		ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPut, "/api/admin/accounts/missing",
			map[string]string{"display_name": "X"}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "account not found", decodeEnvelope(t, rec).Error)
	})
}

func TestDeleteAccount(t *testing.T) {
	accounts := &fakeAccounts{
		deleteFn: func(id string) error {
			if id != "a1" {
				return domain.NotFoundf("account not found")
			}
			return nil
		},
	}
	ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodDelete, "/api/admin/accounts/a1", nil, true).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/api/admin/accounts/a2", nil, true).Code)
}

func TestCreateBucket(t *testing.T) {
	t.Run("defaults type to regular", func(t *testing.T) {
		buckets := &fakeBuckets{
			createFn: func(in domain.CreateBucketInput) (*domain.Bucket, error) {
				assert.Equal(t, domain.BucketTypeRegular, in.Type)
				return &domain.Bucket{ID: "b1", Name: in.Name, Type: in.Type}, nil
			},
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/buckets",
			map[string]string{"name": "energy", "persona": "energy analyst"}, true)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing persona", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/buckets", map[string]string{"name": "energy"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "persona is required", decodeEnvelope(t, rec).Error)
	})

	t.Run("invalid type", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/buckets",
			map[string]string{"name": "energy", "persona": "x", "type": "mega"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid bucket type", decodeEnvelope(t, rec).Error)
	})

	t.Run("second macro bucket rejected", func(t *testing.T) {
		buckets := &fakeBuckets{
			macroExistsFn: func() (bool, error) { return true, nil },
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/buckets",
			map[string]string{"name": "macro2", "persona": "x", "type": "macro"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "A macro bucket already exists", decodeEnvelope(t, rec).Error)
	})

	t.Run("duplicate name", func(t *testing.T) {
		buckets := &fakeBuckets{
			nameExistsFn: func(name, excludeID string) (bool, error) { return true, nil },
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/buckets",
			map[string]string{"name": "energy", "persona": "x"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateBucket(t *testing.T) {
	macro := &domain.Bucket{ID: "b1", Name: "macro", Type: domain.BucketTypeMacro, Persona: "macro strategist"}

	t.Run("macro rename rejected", func(t *testing.T) {
		buckets := &fakeBuckets{
			getFn: func(id string) (*domain.Bucket, error) { return macro, nil },
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodPut, "/api/admin/buckets/b1",
			map[string]string{"name": "renamed"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The macro bucket cannot be renamed", decodeEnvelope(t, rec).Error)
	})

	t.Run("macro persona update allowed", func(t *testing.T) {
		buckets := &fakeBuckets{
			getFn: func(id string) (*domain.Bucket, error) { return macro, nil },
			updateFn: func(id string, in domain.UpdateBucketInput) (*domain.Bucket, error) {
				require.NotNil(t, in.Persona)
				return &domain.Bucket{ID: id, Name: "macro", Type: domain.BucketTypeMacro, Persona: *in.Persona}, nil
			},
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodPut, "/api/admin/buckets/b1",
			map[string]string{"persona": "global macro desk"}, true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing bucket", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPut, "/api/admin/buckets/missing",
			map[string]string{"persona": "x"}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteBucket(t *testing.T) {
	t.Run("macro bucket undeletable", func(t *testing.T) {
		buckets := &fakeBuckets{
			getFn: func(id string) (*domain.Bucket, error) {
				return &domain.Bucket{ID: id, Name: "macro", Type: domain.BucketTypeMacro}, nil
			},
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodDelete, "/api/admin/buckets/b1", nil, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The macro bucket cannot be deleted", decodeEnvelope(t, rec).Error)
	})

	t.Run("regular bucket deleted", func(t *testing.T) {
		buckets := &fakeBuckets{
			getFn: func(id string) (*domain.Bucket, error) {
				return &domain.Bucket{ID: id, Name: "energy", Type: domain.BucketTypeRegular}, nil
			},
		}
		ts := newTestServer(&fakeAccounts{}, buckets, &fakeAssociations{})
		rec := ts.do(t, http.MethodDelete, "/api/admin/buckets/b1", nil, true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBucketAccounts(t *testing.T) {
	existing := func(id string) (*domain.Bucket, error) {
		return &domain.Bucket{ID: id, Name: "energy", Type: domain.BucketTypeRegular}, nil
	}

	t.Run("list members", func(t *testing.T) {
		assoc := &fakeAssociations{
			listFn: func(bucketID string) ([]domain.BucketMember, error) {
				return []domain.BucketMember{
					{Account: domain.Account{ID: "a1", TwitterHandle: "ainews"}, Priority: 5},
					{Account: domain.Account{ID: "a2", TwitterHandle: "chipnews"}, Priority: 0},
				}, nil
			},
		}
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{getFn: existing}, assoc)

		rec := ts.do(t, http.MethodGet, "/api/admin/buckets/b1/accounts", nil, true)
		require.Equal(t, http.StatusOK, rec.Code)

		var members []domain.BucketMember
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &members))
		require.Len(t, members, 2)
		assert.Equal(t, "ainews", members[0].TwitterHandle)
		assert.Equal(t, 5, members[0].Priority)
	})

	t.Run("list missing bucket", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{}, &fakeAssociations{})
		rec := ts.do(t, http.MethodGet, "/api/admin/buckets/missing/accounts", nil, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("assign defaults priority", func(t *testing.T) {
		assoc := &fakeAssociations{
			assignFn: func(bucketID, accountID string, priority int) (*domain.AccountBucket, error) {
				assert.Equal(t, 0, priority)
				return &domain.AccountBucket{ID: "ab-1", BucketID: bucketID, AccountID: accountID}, nil
			},
		}
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{getFn: existing}, assoc)

		rec := ts.do(t, http.MethodPost, "/api/admin/buckets/b1/accounts",
			map[string]string{"account_id": "a1"}, true)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("assign requires account_id", func(t *testing.T) {
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{getFn: existing}, &fakeAssociations{})
		rec := ts.do(t, http.MethodPost, "/api/admin/buckets/b1/accounts", map[string]string{}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "account_id is required", decodeEnvelope(t, rec).Error)
	})

	t.Run("duplicate assignment", func(t *testing.T) {
		assoc := &fakeAssociations{
			assignFn: func(bucketID, accountID string, priority int) (*domain.AccountBucket, error) {
				return nil, domain.Conflictf("account is already in this bucket")
			},
		}
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{getFn: existing}, assoc)

		rec := ts.do(t, http.MethodPost, "/api/admin/buckets/b1/accounts",
			map[string]string{"account_id": "a1"}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "account is already in this bucket", decodeEnvelope(t, rec).Error)
	})

	t.Run("assign missing account", func(t *testing.T) {
		assoc := &fakeAssociations{
			assignFn: func(bucketID, accountID string, priority int) (*domain.AccountBucket, error) {
				return nil, domain.NotFoundf("account not found")
			},
		}
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{getFn: existing}, assoc)

		rec := ts.do(t, http.MethodPost, "/api/admin/buckets/b1/accounts",
			map[string]string{"account_id": "missing"}, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("remove missing relation", func(t *testing.T) {
		assoc := &fakeAssociations{
			removeFn: func(bucketID, accountID string) error {
				return domain.NotFoundf("account is not in this bucket")
			},
		}
		ts := newTestServer(&fakeAccounts{}, &fakeBuckets{getFn: existing}, assoc)

		rec := ts.do(t, http.MethodDelete, "/api/admin/buckets/b1/accounts/a1", nil, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDashboardStats(t *testing.T) {
	accounts := &fakeAccounts{
		countFn: func(onlyActive bool) (int, error) {
			if onlyActive {
				return 7, nil
			}
			return 10, nil
		},
	}
	buckets := &fakeBuckets{
		countFn: func(onlyActive bool) (int, error) {
			if onlyActive {
				return 3, nil
			}
			return 4, nil
		},
	}
	ts := newTestServer(accounts, buckets, &fakeAssociations{})

	rec := ts.do(t, http.MethodGet, "/api/admin/dashboard/stats", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats dashboardStats
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &stats))
	assert.Equal(t, 10, stats.TotalAccounts)
	assert.Equal(t, 7, stats.ActiveAccounts)
	assert.Equal(t, 4, stats.TotalBuckets)
	assert.Equal(t, 3, stats.ActiveBuckets)
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	accounts := &fakeAccounts{
		listFn: func(p repository.AccountListParams) ([]domain.Account, int, error) {
			return nil, 0, errors.New("connection reset by peer")
		},
	}
	ts := newTestServer(accounts, &fakeBuckets{}, &fakeAssociations{})

	rec := ts.do(t, http.MethodGet, "/api/admin/accounts", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal server error", env.Error)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
