package timeseries

import (
	"fmt"
	"strconv"
	"strings"
)

// Range selects the records Start..End of a series, both ends inclusive.
type Range struct {
	Start int
	End   int
}

// Len returns the number of positions covered by the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Validate checks that the range addresses existing positions of a series of
// length n.
func (r Range) Validate(n int) error {
	if r.Start < 0 || r.End >= n || r.Start > r.End {
		return fmt.Errorf("%w: %s for length %d", ErrInvalidRange, r, n)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// ParseRange reads "a:b" or "a..b" (inclusive) and "a...b" (exclusive end).
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	sep, exclusive := "", false
	switch {
	case strings.Contains(s, "..."):
		sep, exclusive = "...", true
	case strings.Contains(s, ".."):
		sep = ".."
	case strings.Contains(s, ":"):
		sep = ":"
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	parts := strings.SplitN(s, sep, 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	if exclusive {
		end--
	}
	if start > end {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return Range{Start: start, End: end}, nil
}
