package domain

import "time"

// BucketType partitions buckets into the single macro bucket and
// regular topic buckets.
type BucketType string

const (
	// BucketTypeMacro is the singleton bucket for macro-economic
	// content. At most one bucket of this type exists; it cannot be
	// renamed or deleted.
	BucketTypeMacro BucketType = "macro"

	// BucketTypeRegular is an ordinary topic bucket.
	BucketTypeRegular BucketType = "regular"
)

// Valid reports whether t is a known bucket type.
func (t BucketType) Valid() bool {
	return t == BucketTypeMacro || t == BucketTypeRegular
}

// DefaultCollectionInterval is applied when a bucket is created without
// an explicit collection interval.
const DefaultCollectionInterval = 60

// Bucket groups accounts around an investment topic and carries the
// persona used when generating content for it.
type Bucket struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	Type                      BucketType `json:"type"`
	Description               *string    `json:"description"`
	Persona                   string     `json:"persona"`
	CollectionIntervalMinutes int        `json:"collection_interval_minutes"`
	IsActive                  bool       `json:"is_active"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

// CreateBucketInput carries the fields accepted when creating a bucket.
// Name and Persona are required; Type defaults to regular and
// CollectionIntervalMinutes to DefaultCollectionInterval.
type CreateBucketInput struct {
	Name                      string     `json:"name"`
	Type                      BucketType `json:"type"`
	Description               *string    `json:"description"`
	Persona                   string     `json:"persona"`
	CollectionIntervalMinutes *int       `json:"collection_interval_minutes"`
}

// UpdateBucketInput carries the fields accepted in a partial bucket
// update. Nil fields are left untouched. Type is deliberately absent: a
// bucket's type is immutable.
type UpdateBucketInput struct {
	Name                      *string `json:"name"`
	Description               *string `json:"description"`
	Persona                   *string `json:"persona"`
	CollectionIntervalMinutes *int    `json:"collection_interval_minutes"`
	IsActive                  *bool   `json:"is_active"`
}

// Empty reports whether the update carries no fields at all.
func (in UpdateBucketInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Persona == nil &&
		in.CollectionIntervalMinutes == nil && in.IsActive == nil
}
