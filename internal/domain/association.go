package domain

import "time"

// AccountBucket links an account into a bucket with a fetch priority.
// The (account_id, bucket_id) pair is unique.
type AccountBucket struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	BucketID      string     `json:"bucket_id"`
	Priority      int        `json:"priority"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
	NextFetchAt   *time.Time `json:"next_fetch_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BucketMember is an account joined with its association metadata, as
// returned when listing a bucket's members.
type BucketMember struct {
	Account
	Priority      int        `json:"priority"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
	NextFetchAt   *time.Time `json:"next_fetch_at"`
}

// AssignAccountInput carries the fields accepted when adding an account
// to a bucket. AccountID is required; Priority defaults to 0.
type AssignAccountInput struct {
	AccountID string `json:"account_id"`
	Priority  *int   `json:"priority"`
}
