package export

import (
	"sort"
	"strconv"
	"strings"
)

// WhitelistMode governs how columns are shortlisted for date processing.
type WhitelistMode int

const (
	// WhitelistAll treats every numeric column as a date candidate.
	WhitelistAll WhitelistMode = iota
	// WhitelistNone disables date processing.
	WhitelistNone
	// WhitelistIndexSet holds zero-based column positions.
	WhitelistIndexSet
	// WhitelistPatternSet holds lowercase substrings matched against header names.
	WhitelistPatternSet
)

// Whitelist is the parsed form of a dates-whitelist specification. The mode
// is decided once, before any row is read.
type Whitelist struct {
	Mode WhitelistMode

	// indices is sorted for binary search; entries are the decimal string
	// forms of the whitelisted column positions.
	indices []string

	// patterns are the lowercase trimmed tokens, in input order.
	patterns []string
}

// ParseWhitelist normalizes and parses a comma-separated whitelist
// specification. "all" and "none" are modes of their own; a list where
// every token is a non-negative integer is an index set; anything else is a
// pattern set.
func ParseWhitelist(raw string) Whitelist {
	lower := strings.ToLower(raw)
	if lower == "all" {
		return Whitelist{Mode: WhitelistAll}
	}
	if lower == "none" {
		return Whitelist{Mode: WhitelistNone}
	}

	tokens := strings.Split(lower, ",")
	allNumbers := true
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		tokens[i] = tok
		if allNumbers {
			if _, err := strconv.ParseUint(tok, 10, 16); err != nil {
				allNumbers = false
			}
		}
	}

	if allNumbers {
		// sorted so membership checks can binary search
		sort.Strings(tokens)
		return Whitelist{Mode: WhitelistIndexSet, indices: tokens}
	}
	return Whitelist{Mode: WhitelistPatternSet, patterns: tokens}
}

// Flags classifies the header row, producing one date flag per column. The
// result is built exactly once from row 0 and never re-derived.
func (w Whitelist) Flags(header []string) []bool {
	flags := make([]bool, len(header))
	switch w.Mode {
	case WhitelistAll:
		for i := range flags {
			flags[i] = true
		}
	case WhitelistNone:
		// all false
	case WhitelistIndexSet:
		for i := range flags {
			key := strconv.Itoa(i)
			n := sort.SearchStrings(w.indices, key)
			flags[i] = n < len(w.indices) && w.indices[n] == key
		}
	case WhitelistPatternSet:
		for i, name := range header {
			lower := strings.ToLower(name)
			for _, pattern := range w.patterns {
				if strings.Contains(lower, pattern) {
					flags[i] = true
					break
				}
			}
		}
	}
	return flags
}
