package domain

import "regexp"

// Vector collections bootstrapped at startup. Each holds embeddings for
// one content kind.
const (
	CollectionTweets    = "tweets"
	CollectionSummaries = "summaries"
	CollectionGlossary  = "glossary"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. The check
// is intentionally loose; real validation happens by using the address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
