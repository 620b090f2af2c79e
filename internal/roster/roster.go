// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

// csvHeader is the roster file header row.
var csvHeader = []string{"last_name", "first_name"}

// Dedupe removes every repeat after the first occurrence of a pair,
// preserving the relative order of first occurrences. Pairs are compared
// exactly; callers pass trimmed names.
func Dedupe(names []types.Name) []types.Name {
	seen := make(map[types.Name]struct{}, len(names))
	unique := make([]types.Name, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	return unique
}

// Parse tokenizes a concatenated name blob and deduplicates the result.
// The returned roster contains each name once, in first-seen order.
func Parse(blob string) []types.Name {
	return Dedupe(Tokenize(blob))
}

// WriteCSV writes the roster as a header row followed by one
// (last_name, first_name) row per entry.
func WriteCSV(w io.Writer, names []types.Name) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing roster header: %w", err)
	}
	for _, n := range names {
		if err := cw.Write([]string{n.Last, n.First}); err != nil {
			return fmt.Errorf("writing roster row for %s: %w", n, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a roster file, skipping the header row and trimming
// fields. Rows must have exactly two columns.
func ReadCSV(r io.Reader) ([]types.Name, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster is empty: expected a header row")
	}

	names := make([]types.Name, 0, len(rows)-1)
	for _, row := range rows[1:] {
		n := types.Name{
			Last:  strings.TrimSpace(row[0]),
			First: strings.TrimSpace(row[1]),
		}
		if n.Last == "" && n.First == "" {
			continue
		}
		names = append(names, n)
	}
	return names, nil
}
