package sheet

import (
	"fmt"
	"log"
	"strconv"
)

// Resolve maps a user-supplied sheet identifier to a concrete sheet name.
//
// An identifier that exactly matches a sheet name wins. Otherwise an integer
// identifier is a zero-based index; negative indices count from the end
// (-1 is the last sheet) and indices more negative than -len(names) select
// the first sheet. Anything else falls back to the first sheet with a logged
// diagnostic.
func Resolve(identifier string, names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	for _, name := range names {
		if name == identifier {
			return name, nil
		}
	}

	if k, err := strconv.Atoi(identifier); err == nil {
		if k >= 0 {
			if k >= len(names) {
				return "", fmt.Errorf("sheet index %d out of range: workbook has %d sheets", k, len(names))
			}
			return names[k], nil
		}
		pos := len(names) + k // k is negative
		if pos < 0 {
			pos = 0
		}
		return names[pos], nil
	}

	log.Printf("[MKCSV] invalid sheet %q, using the first sheet %q instead", identifier, names[0])
	return names[0], nil
}
