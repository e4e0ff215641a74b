// Package region resolves region-code conventions and aggregates member
// regions into copper-plate transmission groups.
package region

import (
	"fmt"
	"strings"

	"github.com/vanditkanudia/gridgap/core/model"
)

// Normalize maps a region or zone code to its canonical form: trimmed,
// uppercased, with a single trailing digit zero-padded to two ("7" becomes
// "07", "no1" becomes "NO01"). Longer digit runs are kept as written. The
// rule is deterministic so the original spelling can be recovered through a
// CodeMap.
func Normalize(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	i := len(c)
	for i > 0 && c[i-1] >= '0' && c[i-1] <= '9' {
		i--
	}
	if len(c)-i == 1 {
		return c[:i] + "0" + c[i:]
	}
	return c
}

// CodeMap records the original spelling behind every canonical code seen in
// one run. Lookups fail loudly: codes are never dropped or invented.
type CodeMap struct {
	byOriginal  map[string]string
	byCanonical map[string]string
}

// NewCodeMap returns an empty map.
func NewCodeMap() *CodeMap {
	return &CodeMap{
		byOriginal:  make(map[string]string),
		byCanonical: make(map[string]string),
	}
}

// Add registers an original code and returns its canonical form. Two
// different originals normalizing to the same canonical code is an
// AggregationError: the tables would silently double-count under one node.
func (m *CodeMap) Add(original string) (string, error) {
	canonical := Normalize(original)
	if prev, ok := m.byCanonical[canonical]; ok && prev != original {
		return "", &model.AggregationError{
			Code: canonical,
			Msg:  fmt.Sprintf("codes %q and %q normalize to the same canonical form", prev, original),
		}
	}
	m.byOriginal[original] = canonical
	m.byCanonical[canonical] = original
	return canonical, nil
}

// Resolve returns the canonical form for a code that must already be
// registered. Unmapped codes are a ConfigurationError naming the code and
// the table it came from.
func (m *CodeMap) Resolve(table, original string) (string, error) {
	canonical := Normalize(original)
	if _, ok := m.byCanonical[canonical]; !ok {
		return "", &model.ConfigurationError{
			Table: table,
			Key:   original,
			Msg:   "code not present in the region membership table",
		}
	}
	return canonical, nil
}

// Original returns the spelling that produced the canonical code.
func (m *CodeMap) Original(canonical string) (string, bool) {
	orig, ok := m.byCanonical[canonical]
	return orig, ok
}

// Len returns the number of registered codes.
func (m *CodeMap) Len() int {
	return len(m.byCanonical)
}
