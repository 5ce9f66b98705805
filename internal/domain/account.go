package domain

import (
	"regexp"
	"strings"
	"time"
)

// Account is a tracked social media account.
type Account struct {
	ID             string    `json:"id"`
	TwitterHandle  string    `json:"twitter_handle"`
	TwitterID      *string   `json:"twitter_id"`
	DisplayName    *string   `json:"display_name"`
	Description    *string   `json:"description"`
	FollowersCount *int      `json:"followers_count"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateAccountInput carries the fields accepted when creating an
// account. TwitterHandle is required.
type CreateAccountInput struct {
	TwitterHandle string  `json:"twitter_handle"`
	DisplayName   *string `json:"display_name"`
	Description   *string `json:"description"`
}

// UpdateAccountInput carries the fields accepted in a partial account
// update. Nil fields are left untouched.
type UpdateAccountInput struct {
	TwitterHandle *string `json:"twitter_handle"`
	DisplayName   *string `json:"display_name"`
	Description   *string `json:"description"`
	IsActive      *bool   `json:"is_active"`
}

// Empty reports whether the update carries no fields at all.
func (in UpdateAccountInput) Empty() bool {
	return in.TwitterHandle == nil && in.DisplayName == nil &&
		in.Description == nil && in.IsActive == nil
}

// Twitter handles are 1-15 characters, alphanumeric plus underscore,
// with an optional leading "@".
var handlePattern = regexp.MustCompile(`^@?[A-Za-z0-9_]{1,15}$`)

// ValidTwitterHandle reports whether handle is an acceptable twitter
// handle, before or after normalization.
func ValidTwitterHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}

// NormalizeTwitterHandle strips a leading "@" so handles are stored in a
// canonical form.
func NormalizeTwitterHandle(handle string) string {
	return strings.TrimPrefix(handle, "@")
}
