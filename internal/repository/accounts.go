package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/pkg/postgres"
)

const accountColumns = `id, twitter_handle, twitter_id, display_name,
	description, followers_count, is_active, created_at, updated_at`

// Accounts persists domain.Account rows.
type Accounts struct {
	db *postgres.Postgres
}

// NewAccounts creates the account repository.
func NewAccounts(db *postgres.Postgres) *Accounts {
	return &Accounts{db: db}
}

// AccountListParams narrows and pages an account listing.
type AccountListParams struct {
	IsActive *bool

	// Case-insensitive substring match over twitter_handle and
	// display_name.
	Search string

	Page     int
	PageSize int
}

// List returns one page of accounts plus the total row count for the
// same filters, newest first.
func (r *Accounts) List(ctx context.Context, p AccountListParams) ([]domain.Account, int, error) {
	filters := postgres.Filters{}
	if p.IsActive != nil {
		filters["is_active"] = *p.IsActive
	}

	clause, values, err := postgres.BuildWhere(filters, 1)
	if err != nil {
		return nil, 0, err
	}

	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		cond := fmt.Sprintf("(twitter_handle ILIKE $%d OR display_name ILIKE $%d)", len(values)+1, len(values)+1)
		if clause == "" {
			clause = "WHERE " + cond
		} else {
			clause += " AND " + cond
		}
		values = append(values, pattern)
	}

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM accounts %s", clause)
	if err := r.db.QueryRow(ctx, countSQL, values...).Scan(&total); err != nil {
		return nil, 0, postgres.TranslateError(err)
	}

	orderBy, err := postgres.BuildOrderBy("created_at", "DESC")
	if err != nil {
		return nil, 0, err
	}
	limit, offset := postgres.BuildPagination(p.Page, p.PageSize)

	listSQL := fmt.Sprintf("SELECT %s FROM accounts %s %s LIMIT $%d OFFSET $%d",
		accountColumns, clause, orderBy, len(values)+1, len(values)+2)

	rows, err := r.db.Query(ctx, listSQL, append(values, limit, offset)...)
	if err != nil {
		return nil, 0, postgres.TranslateError(err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.TranslateError(err)
	}

	return accounts, total, nil
}

// Get fetches one account by ID.
func (r *Accounts) Get(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns), id)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(postgres.TranslateError(err), postgres.ErrRecordNotFound) {
			return nil, domain.NotFoundf("account not found")
		}
		return nil, err
	}
	return &a, nil
}

// HandleExists reports whether another account already uses the handle.
// excludeID may be empty.
func (r *Accounts) HandleExists(ctx context.Context, handle, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM accounts WHERE twitter_handle = $1)", handle).Scan(&exists)
	} else {
		err = r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM accounts WHERE twitter_handle = $1 AND id != $2)", handle, excludeID).Scan(&exists)
	}
	if err != nil {
		return false, postgres.TranslateError(err)
	}
	return exists, nil
}

// Create inserts a new account. The handle must already be normalized.
// A concurrent duplicate insert surfaces as ErrConflict.
func (r *Accounts) Create(ctx context.Context, in domain.CreateAccountInput) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO accounts (twitter_handle, display_name, description)
		VALUES ($1, $2, $3)
		RETURNING %s`, accountColumns),
		in.TwitterHandle, in.DisplayName, in.Description)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(postgres.TranslateError(err), postgres.ErrDuplicateKey) {
			return nil, domain.Conflictf("account with this twitter handle already exists")
		}
		return nil, err
	}
	return &a, nil
}

// Update applies a partial update. Only non-nil input fields reach the
// SET clause. Returns the updated account, or ErrNotFound.
func (r *Accounts) Update(ctx context.Context, id string, in domain.UpdateAccountInput) (*domain.Account, error) {
	sets := make([]string, 0, 5)
	values := make([]any, 0, 6)
	idx := 1

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		values = append(values, value)
		idx++
	}

	if in.TwitterHandle != nil {
		appendSet("twitter_handle", *in.TwitterHandle)
	}
	if in.DisplayName != nil {
		appendSet("display_name", *in.DisplayName)
	}
	if in.Description != nil {
		appendSet("description", *in.Description)
	}
	if in.IsActive != nil {
		appendSet("is_active", *in.IsActive)
	}

	if len(sets) == 0 {
		return nil, domain.Validationf("no fields to update")
	}

	sets = append(sets, "updated_at = now()")

	values = append(values, id)
	sql := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), idx, accountColumns)

	a, err := scanAccount(r.db.QueryRow(ctx, sql, values...))
	if err != nil {
		translated := postgres.TranslateError(err)
		switch {
		case errors.Is(translated, postgres.ErrRecordNotFound):
			return nil, domain.NotFoundf("account not found")
		case errors.Is(translated, postgres.ErrDuplicateKey):
			return nil, domain.Conflictf("account with this twitter handle already exists")
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an account; related associations cascade.
func (r *Accounts) Delete(ctx context.Context, id string) error {
	affected, err := r.db.Exec(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return postgres.TranslateError(err)
	}
	if affected == 0 {
		return domain.NotFoundf("account not found")
	}
	return nil
}

// Count returns the number of accounts, optionally only active ones.
func (r *Accounts) Count(ctx context.Context, onlyActive bool) (int, error) {
	filters := postgres.Filters{}
	if onlyActive {
		filters["is_active"] = true
	}
	clause, values, err := postgres.BuildWhere(filters, 1)
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM accounts %s", clause), values...).Scan(&total); err != nil {
		return 0, postgres.TranslateError(err)
	}
	return total, nil
}

// scanAccount reads one account row. Works for both pgx.Row and
// pgx.Rows since both expose Scan.
func scanAccount(row interface{ Scan(dest ...any) error }) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.TwitterHandle,
		&a.TwitterID,
		&a.DisplayName,
		&a.Description,
		&a.FollowersCount,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
