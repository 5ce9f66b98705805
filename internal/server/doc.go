// Package server exposes the admin HTTP API: login, account and bucket
// management, bucket membership, and dashboard aggregates. Responses use
// a uniform JSON envelope and domain errors map onto HTTP status codes
// in one place.
package server
