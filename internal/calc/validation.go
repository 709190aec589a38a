package calc

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldErrors maps a JSON field name to what is wrong with it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, k := range slices.Sorted(maps.Keys(e)) {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e FieldErrors) intRange(field string, v, min, max int) {
	if v < min || v > max {
		e[field] = fmt.Sprintf("must be between %d and %d", min, max)
	}
}

// decRange checks min < v <= max, or min <= v <= max when inclusive is set.
func (e FieldErrors) decRange(field string, v, min, max decimal.Decimal, inclusive bool) {
	low := v.LessThan(min) || (!inclusive && v.Equal(min))
	if low || v.GreaterThan(max) {
		op := "greater than"
		if inclusive {
			op = "at least"
		}
		e[field] = fmt.Sprintf("must be %s %s and at most %s", op, min, max)
	}
}
