package qdrant

import (
	"fmt"
	"sort"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// buildFilter converts exact-match payload constraints into a Qdrant
// filter with AND logic (all conditions go into the Must clause).
//
// Keys are processed in sorted order so the produced filter is
// deterministic. A nil or empty map yields a nil filter, meaning no
// constraint at all.
func buildFilter(filter map[string]any) (*qdrant.Filter, error) {
	if len(filter) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]*qdrant.Condition, 0, len(filter))
	for _, key := range keys {
		cond, err := matchCondition(key, filter[key])
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}

	return &qdrant.Filter{Must: conditions}, nil
}

// matchCondition builds a single exact-match condition for a payload
// field. Float values are matched as integers, mirroring how
// JSON-decoded numbers arrive as float64.
func matchCondition(key string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v), nil
	case bool:
		return qdrant.NewMatchBool(key, v), nil
	case int:
		return qdrant.NewMatchInt(key, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(key, v), nil
	case float64:
		return qdrant.NewMatchInt(key, int64(v)), nil
	default:
		return nil, fmt.Errorf("unsupported filter value type %T for field '%s'", value, key)
	}
}
