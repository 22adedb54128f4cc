package normalize

import (
	"strconv"
	"strings"
)

// Stat cells are tolerantly coerced: placeholder dashes, blanks, and junk
// text all become null rather than errors.

func coerceStat(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil
		}
		n = int(f)
	}
	return &n
}

// splitPair splits an "X-Y" made-attempted cell; malformed cells yield null
// on both sides.
func splitPair(s string) (*int, *int) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	return coerceStat(parts[0]), coerceStat(parts[1])
}
