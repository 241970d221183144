// Package geocsv loads the two upstream tables: locations (country code
// to name) and blocks (CIDR network to country code). Both plain
// exports and GeoLite2-style exports are recognized by their headers.
package geocsv

import (
	"errors"
	"strings"
)

var ErrMissingColumn = errors.New("required column missing")

// columnIndex maps lower-cased header names to their positions.
// Duplicate names keep the first occurrence.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// firstOf returns the index of the first candidate column present.
func firstOf(cols map[string]int, candidates ...string) (int, bool) {
	for _, name := range candidates {
		if idx, ok := cols[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

func field(record []string, idx int) string {
	return strings.TrimSpace(record[idx])
}
