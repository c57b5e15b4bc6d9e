package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
)

func newSet(t *testing.T) *ColorSet {
	t.Helper()
	s, err := NewColorSet(DefaultCapacity, DefaultExclusive)
	require.NoError(t, err)
	return s
}

func TestNewColorSet_RejectsZeroCapacity(t *testing.T) {
	_, err := NewColorSet(0, DefaultExclusive)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSelectionInvalid, apperrors.GetCode(err))
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name string
		taps []string
		want []string
	}{
		{"single", []string{"Red"}, []string{"Red"}},
		{"two", []string{"Red", "Blue"}, []string{"Red", "Blue"}},
		{"third evicts oldest", []string{"Red", "Blue", "Green"}, []string{"Blue", "Green"}},
		{"tap again removes", []string{"Red", "Blue", "Red"}, []string{"Blue"}},
		{"remove is case-insensitive", []string{"Red", "red"}, []string{}},
		{"exclusive replaces all", []string{"Red", "Blue", "Multicolor"}, []string{"Multicolor"}},
		{"exclusive matched case-insensitively", []string{"Red", "multicolor"}, []string{"multicolor"}},
		{"exclusive toggles off", []string{"Multicolor", "Multicolor"}, []string{}},
		{"colour replaces exclusive", []string{"Multicolor", "Black"}, []string{"Black"}},
		{"blank ignored", []string{"Red", "  "}, []string{"Red"}},
		{"trims", []string{" Red "}, []string{"Red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSet(t)
			var got []string
			for _, c := range tt.taps {
				got = s.Toggle(c)
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, got, s.Values())
		})
	}
}

func TestToggle_NeverExceedsCapacity(t *testing.T) {
	s, err := NewColorSet(3, "")
	require.NoError(t, err)

	for _, c := range []string{"a", "b", "c", "d", "e", "b", "f", "g"} {
		s.Toggle(c)
		assert.LessOrEqual(t, s.Len(), 3)
	}
	assert.Equal(t, []string{"b", "f", "g"}, s.Values())
}

func TestToggle_NoExclusiveConfigured(t *testing.T) {
	s, err := NewColorSet(2, "")
	require.NoError(t, err)

	s.Toggle("Red")
	assert.Equal(t, []string{"Red", "Multicolor"}, s.Toggle("Multicolor"))
}

func TestValues_ReturnsCopy(t *testing.T) {
	s := newSet(t)
	s.Toggle("Red")

	v := s.Values()
	v[0] = "Mutated"

	assert.True(t, s.Contains("red"))
	assert.False(t, s.Contains("Mutated"))
}

func TestReset(t *testing.T) {
	s := newSet(t)
	s.Toggle("Red")
	s.Reset()

	assert.Equal(t, 0, s.Len())
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"two", []string{"Red", "Blue"}, false},
		{"exclusive alone", []string{"Multicolor"}, false},
		{"too many", []string{"Red", "Blue", "Green"}, true},
		{"duplicate", []string{"Red", "RED"}, true},
		{"exclusive combined", []string{"Multicolor", "Red"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.values, DefaultCapacity, DefaultExclusive)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeSelectionInvalid, apperrors.GetCode(err))
		})
	}
}
