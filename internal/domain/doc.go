// Package domain defines the entities the curator API manages, their
// input validation, and the error sentinels handlers translate into
// HTTP status codes.
package domain
