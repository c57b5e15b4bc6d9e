// Package selection implements the bounded colour choice used by the sell
// form: at most a few colours, oldest evicted first, with one value that
// stands alone.
package selection

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
)

const (
	// DefaultCapacity is how many colours a listing may carry.
	DefaultCapacity = 2

	// DefaultExclusive is the value that replaces every other colour.
	DefaultExclusive = "Multicolor"
)

// ColorSet is an ordered, bounded set of colour labels.
// Values compare case-insensitively and keep the spelling first given.
// The zero value is not usable; call NewColorSet.
type ColorSet struct {
	capacity  int
	exclusive string
	values    []string
}

// NewColorSet returns an empty set. capacity must be at least 1.
// An empty exclusive disables the stand-alone value.
func NewColorSet(capacity int, exclusive string) (*ColorSet, error) {
	if capacity < 1 {
		return nil, apperrors.New(apperrors.ErrCodeSelectionInvalid,
			fmt.Sprintf("colour capacity must be at least 1, got %d", capacity), nil)
	}
	return &ColorSet{capacity: capacity, exclusive: strings.TrimSpace(exclusive)}, nil
}

// Toggle applies one tap on colour c and returns the resulting values.
//
//   - the exclusive value replaces everything (tapping it again clears it)
//   - a colour already present is removed
//   - a new colour while the exclusive value is held replaces it
//   - a new colour when full evicts the oldest
func (s *ColorSet) Toggle(c string) []string {
	c = strings.TrimSpace(c)
	if c == "" {
		return s.Values()
	}

	if i := s.index(c); i >= 0 {
		s.values = slices.Delete(s.values, i, i+1)
		return s.Values()
	}

	switch {
	case s.isExclusive(c):
		s.values = []string{c}
	case len(s.values) == 1 && s.isExclusive(s.values[0]):
		s.values = []string{c}
	default:
		if len(s.values) >= s.capacity {
			s.values = slices.Delete(s.values, 0, len(s.values)-s.capacity+1)
		}
		s.values = append(s.values, c)
	}
	return s.Values()
}

// Values returns the colours in selection order.
func (s *ColorSet) Values() []string {
	return slices.Clone(s.values)
}

// Len returns the number of selected colours.
func (s *ColorSet) Len() int {
	return len(s.values)
}

// Contains reports whether c is selected.
func (s *ColorSet) Contains(c string) bool {
	return s.index(strings.TrimSpace(c)) >= 0
}

// Reset clears the selection.
func (s *ColorSet) Reset() {
	s.values = nil
}

func (s *ColorSet) index(c string) int {
	fold := cases.Fold()
	want := fold.String(c)
	return slices.IndexFunc(s.values, func(v string) bool {
		return fold.String(v) == want
	})
}

func (s *ColorSet) isExclusive(c string) bool {
	return s.exclusive != "" && strings.EqualFold(c, s.exclusive)
}

// Check verifies that values could have been produced by Toggle: within
// capacity, no repeats, and the exclusive value only on its own.
func Check(values []string, capacity int, exclusive string) error {
	if len(values) > capacity {
		return apperrors.New(apperrors.ErrCodeSelectionInvalid,
			fmt.Sprintf("at most %d colours allowed, got %d", capacity, len(values)), nil)
	}
	s, err := NewColorSet(capacity, exclusive)
	if err != nil {
		return err
	}
	for _, v := range values {
		if s.Contains(v) {
			return apperrors.New(apperrors.ErrCodeSelectionInvalid,
				fmt.Sprintf("colour %q selected twice", v), nil)
		}
		if s.isExclusive(v) && len(values) > 1 {
			return apperrors.New(apperrors.ErrCodeSelectionInvalid,
				fmt.Sprintf("%q cannot be combined with other colours", v), nil)
		}
		s.values = append(s.values, strings.TrimSpace(v))
	}
	return nil
}
