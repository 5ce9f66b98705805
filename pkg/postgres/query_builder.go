package postgres

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Filters maps column names to constraints for BuildWhere. A value may be:
//
//   - a scalar: equality ("col = $n")
//   - a slice: membership ("col = ANY($n)")
//   - a Condition: explicit comparison operator
//
// Entries with a nil value are skipped entirely — nil means "no filter",
// not "IS NULL".
type Filters map[string]any

// Condition pairs a comparison operator with a value, for filters beyond
// plain equality.
//
//	Filters{"followers_count": Condition{Op: ">=", Value: 1000}}
type Condition struct {
	Op    string
	Value any
}

// identifierPattern is the allow-list for column names. Identifiers cannot
// be parameterized in SQL, so this is the sole injection defense for
// caller-chosen columns.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_]+$`)

// allowedOperators is the fixed operator allow-list for Condition filters.
var allowedOperators = map[string]struct{}{
	"=": {}, "!=": {}, ">": {}, ">=": {}, "<": {}, "<=": {},
}

// Pagination bounds enforced by BuildPagination.
const (
	MinPageSize = 1
	MaxPageSize = 100
)

// BuildWhere translates filters into a parameterized WHERE clause and the
// matching ordered parameter values. Placeholders are positional, numbered
// from startIndex, so the fragment can be appended to a query that already
// binds parameters.
//
// Columns are emitted in sorted order so the generated SQL is stable for
// logging and tests. Values never appear in the returned clause text.
//
// An invalid column name or operator is a caller programming error and
// fails immediately with ErrInvalidColumn / ErrInvalidOperator.
func BuildWhere(filters Filters, startIndex int) (string, []any, error) {
	if startIndex < 1 {
		startIndex = 1
	}

	columns := make([]string, 0, len(filters))
	for col := range filters {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	conditions := make([]string, 0, len(filters))
	values := make([]any, 0, len(filters))
	paramIndex := startIndex

	for _, col := range columns {
		value := filters[col]
		if value == nil {
			continue
		}

		if !identifierPattern.MatchString(col) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidColumn, col)
		}

		switch v := value.(type) {
		case Condition:
			if _, ok := allowedOperators[v.Op]; !ok {
				return "", nil, fmt.Errorf("%w: %q", ErrInvalidOperator, v.Op)
			}
			conditions = append(conditions, fmt.Sprintf("%s %s $%d", col, v.Op, paramIndex))
			values = append(values, v.Value)
		default:
			kind := reflect.TypeOf(value).Kind()
			switch {
			case kind == reflect.Slice || kind == reflect.Array:
				conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", col, paramIndex))
			case scalarKind(kind, value):
				conditions = append(conditions, fmt.Sprintf("%s = $%d", col, paramIndex))
			default:
				return "", nil, fmt.Errorf("%w: column %q has value of type %T", ErrInvalidValue, col, value)
			}
			values = append(values, value)
		}
		paramIndex++
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), values, nil
}

// BuildPagination converts 1-based page parameters into LIMIT/OFFSET
// values. pageSize is silently clamped to [MinPageSize, MaxPageSize] to
// bound result-set size; page is clamped to a minimum of 1.
func BuildPagination(page, pageSize int) (limit, offset int) {
	limit = pageSize
	if limit < MinPageSize {
		limit = MinPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if page < 1 {
		page = 1
	}

	return limit, (page - 1) * limit
}

// BuildOrderBy produces an ORDER BY fragment for a caller-chosen sort
// column. The column must match the identifier allow-list exactly —
// sort columns cannot be bound as parameters, so the pattern check is the
// sole injection defense here. An empty column yields an empty fragment.
//
// direction accepts "ASC" or "DESC" (case-insensitive) and defaults to
// DESC when empty.
func BuildOrderBy(column, direction string) (string, error) {
	if column == "" {
		return "", nil
	}

	if !identifierPattern.MatchString(column) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColumn, column)
	}

	switch strings.ToUpper(direction) {
	case "", "DESC":
		direction = "DESC"
	case "ASC":
		direction = "ASC"
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	return "ORDER BY " + column + " " + direction, nil
}

// scalarKind reports whether a filter value can bind as a single SQL
// parameter. Maps, structs, funcs, channels, and pointers cannot;
// time.Time is the one struct the driver encodes natively.
func scalarKind(kind reflect.Kind, value any) bool {
	switch kind {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return false
	case reflect.Struct:
		_, ok := value.(time.Time)
		return ok
	default:
		return true
	}
}
