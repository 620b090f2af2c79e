// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster extracts a deduplicated, ordered list of investigator
// names from a concatenated text blob and persists it as CSV.
package roster

import (
	"strings"
	"unicode"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

// Tokenize scans a blob that concatenates "Last, First" segments with no
// separator between entries and returns the raw (last, first) pairs in
// input order, duplicates included. Fields are whitespace-trimmed.
//
// The scan is a single left-to-right pass. A last name is a maximal run
// of letters, apostrophes, and hyphens that is immediately followed by a
// comma. The first name then grows one rune at a time (letters, periods,
// hyphens, interior spaces) and ends at the earliest position where the
// remaining input starts a new last name: an uppercase letter, a run of
// lowercase letters/apostrophes/hyphens, then a comma. End of input also
// ends a segment.
//
// The boundary rule is heuristic. A first name containing an
// uppercase-then-lowercase run that abuts the next segment's comma is
// split at the wrong point; this is inherent to the scheme and accepted
// for the inputs this tool handles.
func Tokenize(blob string) []types.Name {
	rs := []rune(blob)
	var names []types.Name

	i := 0
	for i < len(rs) {
		if !isLastRune(rs[i]) {
			i++
			continue
		}

		// Maximal last-name run. If it is not followed directly by a
		// comma, no segment can start inside it either: the comma would
		// have to fall within the run, and run runes are never commas.
		start := i
		for i < len(rs) && isLastRune(rs[i]) {
			i++
		}
		if i >= len(rs) || rs[i] != ',' {
			continue
		}
		last := string(rs[start:i])
		i++

		for i < len(rs) && unicode.IsSpace(rs[i]) {
			i++
		}
		if i >= len(rs) || !isFirstRune(rs[i]) {
			continue
		}

		// Shortest first name that reaches a boundary.
		fstart := i
		i++
		for {
			if i >= len(rs) || nextLastNameAt(rs, i) {
				names = append(names, types.Name{
					Last:  strings.TrimSpace(last),
					First: strings.TrimSpace(string(rs[fstart:i])),
				})
				break
			}
			if !isFirstRune(rs[i]) {
				// Neither a boundary nor extendable: abandon the
				// segment and resume scanning here.
				break
			}
			i++
		}
	}
	return names
}

// nextLastNameAt reports whether a new last name starts at rs[i]: an
// uppercase letter, at least one lowercase letter/apostrophe/hyphen,
// then a comma directly after the run.
func nextLastNameAt(rs []rune, i int) bool {
	if !unicode.IsUpper(rs[i]) {
		return false
	}
	j := i + 1
	for j < len(rs) && isLowerRune(rs[j]) {
		j++
	}
	if j == i+1 {
		return false
	}
	return j < len(rs) && rs[j] == ','
}

func isLastRune(r rune) bool {
	return unicode.IsLetter(r) || isApostrophe(r) || r == '-'
}

func isFirstRune(r rune) bool {
	return unicode.IsLetter(r) || r == '.' || r == '-' || r == ' '
}

func isLowerRune(r rune) bool {
	return unicode.IsLower(r) || isApostrophe(r) || r == '-'
}

// isApostrophe accepts both the ASCII apostrophe and U+2019, which source
// rosters use interchangeably (e.g. "al’Absi" vs "al'Absi").
func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
