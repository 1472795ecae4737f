package request

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Form ops edit list-valued fields without persisting anything. The op is the
// value of the submit button: "add-category", "remove-category:2", ...
type Op struct {
	Name  string
	Index int
}

func ParseOp(raw string) (Op, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "save" {
		return Op{}, false
	}
	name, idx, found := strings.Cut(raw, ":")
	op := Op{Name: name, Index: -1}
	if found {
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 {
			return Op{}, false
		}
		op.Index = i
	}
	return op, true
}

func removeAt[T any](items []T, i int) []T {
	if i < 0 || i >= len(items) {
		return items
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func appendUnique(items []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return items
	}
	for _, it := range items {
		if strings.EqualFold(it, v) {
			return items
		}
	}
	return append(items, v)
}

// parseDecimal treats an empty field as zero. Callers validate "numeric" first.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func formBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
