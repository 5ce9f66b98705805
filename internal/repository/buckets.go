package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/pkg/postgres"
)

const bucketColumns = `id, name, type, description, persona,
	collection_interval_minutes, is_active, created_at, updated_at`

// Buckets persists domain.Bucket rows.
type Buckets struct {
	db *postgres.Postgres
}

// NewBuckets creates the bucket repository.
func NewBuckets(db *postgres.Postgres) *Buckets {
	return &Buckets{db: db}
}

// BucketListParams narrows and pages a bucket listing.
type BucketListParams struct {
	IsActive *bool
	Type     *domain.BucketType
	Page     int
	PageSize int
}

// List returns one page of buckets plus the total row count for the
// same filters, newest first.
func (r *Buckets) List(ctx context.Context, p BucketListParams) ([]domain.Bucket, int, error) {
	filters := postgres.Filters{}
	if p.IsActive != nil {
		filters["is_active"] = *p.IsActive
	}
	if p.Type != nil {
		filters["type"] = string(*p.Type)
	}

	clause, values, err := postgres.BuildWhere(filters, 1)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM buckets %s", clause)
	if err := r.db.QueryRow(ctx, countSQL, values...).Scan(&total); err != nil {
		return nil, 0, postgres.TranslateError(err)
	}

	orderBy, err := postgres.BuildOrderBy("created_at", "DESC")
	if err != nil {
		return nil, 0, err
	}
	limit, offset := postgres.BuildPagination(p.Page, p.PageSize)

	listSQL := fmt.Sprintf("SELECT %s FROM buckets %s %s LIMIT $%d OFFSET $%d",
		bucketColumns, clause, orderBy, len(values)+1, len(values)+2)

	rows, err := r.db.Query(ctx, listSQL, append(values, limit, offset)...)
	if err != nil {
		return nil, 0, postgres.TranslateError(err)
	}
	defer rows.Close()

	buckets := make([]domain.Bucket, 0, limit)
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, 0, err
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.TranslateError(err)
	}

	return buckets, total, nil
}

// Get fetches one bucket by ID.
func (r *Buckets) Get(ctx context.Context, id string) (*domain.Bucket, error) {
	row := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM buckets WHERE id = $1", bucketColumns), id)

	b, err := scanBucket(row)
	if err != nil {
		if errors.Is(postgres.TranslateError(err), postgres.ErrRecordNotFound) {
			return nil, domain.NotFoundf("bucket not found")
		}
		return nil, err
	}
	return &b, nil
}

// NameExists reports whether another bucket already uses the name.
// excludeID may be empty.
func (r *Buckets) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM buckets WHERE name = $1)", name).Scan(&exists)
	} else {
		err = r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM buckets WHERE name = $1 AND id != $2)", name, excludeID).Scan(&exists)
	}
	if err != nil {
		return false, postgres.TranslateError(err)
	}
	return exists, nil
}

// MacroExists reports whether the singleton macro bucket is present.
func (r *Buckets) MacroExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM buckets WHERE type = $1)", string(domain.BucketTypeMacro)).Scan(&exists)
	if err != nil {
		return false, postgres.TranslateError(err)
	}
	return exists, nil
}

// Create inserts a new bucket. A concurrent duplicate name surfaces as
// ErrConflict.
func (r *Buckets) Create(ctx context.Context, in domain.CreateBucketInput) (*domain.Bucket, error) {
	interval := domain.DefaultCollectionInterval
	if in.CollectionIntervalMinutes != nil {
		interval = *in.CollectionIntervalMinutes
	}

	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO buckets (name, type, description, persona, collection_interval_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, bucketColumns),
		in.Name, string(in.Type), in.Description, in.Persona, interval)

	b, err := scanBucket(row)
	if err != nil {
		if errors.Is(postgres.TranslateError(err), postgres.ErrDuplicateKey) {
			return nil, domain.Conflictf("bucket with this name already exists")
		}
		return nil, err
	}
	return &b, nil
}

// Update applies a partial update. Only non-nil input fields reach the
// SET clause. Returns the updated bucket, or ErrNotFound.
func (r *Buckets) Update(ctx context.Context, id string, in domain.UpdateBucketInput) (*domain.Bucket, error) {
	sets := make([]string, 0, 6)
	values := make([]any, 0, 7)
	idx := 1

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		values = append(values, value)
		idx++
	}

	if in.Name != nil {
		appendSet("name", *in.Name)
	}
	if in.Description != nil {
		appendSet("description", *in.Description)
	}
	if in.Persona != nil {
		appendSet("persona", *in.Persona)
	}
	if in.CollectionIntervalMinutes != nil {
		appendSet("collection_interval_minutes", *in.CollectionIntervalMinutes)
	}
	if in.IsActive != nil {
		appendSet("is_active", *in.IsActive)
	}

	if len(sets) == 0 {
		return nil, domain.Validationf("no fields to update")
	}

	sets = append(sets, "updated_at = now()")

	values = append(values, id)
	sql := fmt.Sprintf("UPDATE buckets SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), idx, bucketColumns)

	b, err := scanBucket(r.db.QueryRow(ctx, sql, values...))
	if err != nil {
		translated := postgres.TranslateError(err)
		switch {
		case errors.Is(translated, postgres.ErrRecordNotFound):
			return nil, domain.NotFoundf("bucket not found")
		case errors.Is(translated, postgres.ErrDuplicateKey):
			return nil, domain.Conflictf("bucket with this name already exists")
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes a bucket; related associations cascade. Macro bucket
// protection is enforced by the handler, which loads the bucket first.
func (r *Buckets) Delete(ctx context.Context, id string) error {
	affected, err := r.db.Exec(ctx, "DELETE FROM buckets WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err)
	}
	if affected == 0 {
		return domain.NotFoundf("bucket not found")
	}
	return nil
}

// Count returns the number of buckets, optionally only active ones.
func (r *Buckets) Count(ctx context.Context, onlyActive bool) (int, error) {
	filters := postgres.Filters{}
	if onlyActive {
		filters["is_active"] = true
	}
	clause, values, err := postgres.BuildWhere(filters, 1)
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM buckets %s", clause), values...).Scan(&total); err != nil {
		return 0, postgres.TranslateError(err)
	}
	return total, nil
}

func scanBucket(row interface{ Scan(dest ...any) error }) (domain.Bucket, error) {
	var b domain.Bucket
	var bucketType string
	err := row.Scan(
		&b.ID,
		&b.Name,
		&bucketType,
		&b.Description,
		&b.Persona,
		&b.CollectionIntervalMinutes,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	b.Type = domain.BucketType(bucketType)
	return b, err
}
