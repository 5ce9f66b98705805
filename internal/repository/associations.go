package repository

import (
	"context"
	"errors"

	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/pkg/postgres"
)

// Associations persists the account-to-bucket links.
type Associations struct {
	db *postgres.Postgres
}

// NewAssociations creates the association repository.
func NewAssociations(db *postgres.Postgres) *Associations {
	return &Associations{db: db}
}

// ListMembers returns a bucket's accounts joined with association
// metadata, highest priority first, then newest membership first.
func (r *Associations) ListMembers(ctx context.Context, bucketID string) ([]domain.BucketMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			a.id, a.twitter_handle, a.twitter_id, a.display_name,
			a.description, a.followers_count, a.is_active, a.created_at, a.updated_at,
			ab.priority, ab.last_fetched_at, ab.next_fetch_at
		FROM account_buckets ab
		JOIN accounts a ON a.id = ab.account_id
		WHERE ab.bucket_id = $1
		ORDER BY ab.priority DESC, ab.created_at DESC`, bucketID)
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	defer rows.Close()

	members := make([]domain.BucketMember, 0)
	for rows.Next() {
		var m domain.BucketMember
		err := rows.Scan(
			&m.ID,
			&m.TwitterHandle,
			&m.TwitterID,
			&m.DisplayName,
			&m.Description,
			&m.FollowersCount,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.Priority,
			&m.LastFetchedAt,
			&m.NextFetchAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.TranslateError(err)
	}

	return members, nil
}

// Assign links an account into a bucket. An existing link surfaces as
// ErrConflict; a missing account or bucket as ErrNotFound via the
// foreign key.
func (r *Associations) Assign(ctx context.Context, bucketID, accountID string, priority int) (*domain.AccountBucket, error) {
	var ab domain.AccountBucket
	err := r.db.QueryRow(ctx, `
		INSERT INTO account_buckets (account_id, bucket_id, priority)
		VALUES ($1, $2, $3)
		RETURNING id, account_id, bucket_id, priority, last_fetched_at, next_fetch_at, created_at`,
		accountID, bucketID, priority).Scan(
		&ab.ID,
		&ab.AccountID,
		&ab.BucketID,
		&ab.Priority,
		&ab.LastFetchedAt,
		&ab.NextFetchAt,
		&ab.CreatedAt,
	)
	if err != nil {
		translated := postgres.TranslateError(err)
		switch {
		case errors.Is(translated, postgres.ErrDuplicateKey):
			return nil, domain.Conflictf("account is already in this bucket")
		case errors.Is(translated, postgres.ErrForeignKey):
			return nil, domain.NotFoundf("account not found")
		}
		return nil, err
	}
	return &ab, nil
}

// Remove deletes the link between an account and a bucket. A missing
// link surfaces as ErrNotFound.
func (r *Associations) Remove(ctx context.Context, bucketID, accountID string) error {
	affected, err := r.db.Exec(ctx,
		"DELETE FROM account_buckets WHERE bucket_id = $1 AND account_id = $2", bucketID, accountID)
	if err != nil {
		return postgres.TranslateError(err)
	}
	if affected == 0 {
		return domain.NotFoundf("account is not in this bucket")
	}
	return nil
}
