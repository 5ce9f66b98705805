package qdrant

import (
	"fmt"
)

// validateSearchInput validates common search parameters.
func validateSearchInput(collection string, vector []float32, limit int) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(vector) == 0 {
		return fmt.Errorf("vector cannot be empty")
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	return nil
}
