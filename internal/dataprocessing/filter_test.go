package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcli/internal/errors"
)

func TestFilter_Excluded(t *testing.T) {
	f, err := NewFilter(DefaultRules())
	require.NoError(t, err)

	tests := []struct {
		location string
		want     bool
	}{
		{location: "", want: true},
		{location: "   ", want: true},
		{location: "DKDS", want: true},
		{location: " dkds ", want: true},
		{location: "DKDS-2", want: false},
		{location: "MILIR", want: true},
		{location: "milir-03", want: true},
		{location: "Milir-03", want: true},
		{location: "PRE-MILIR YARD", want: true},
		{location: "YARD-A", want: false},
		{location: "BLOK", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Excluded(tt.location))
		})
	}
}

func TestNewFilter_InvalidRules(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{name: "unknown kind", rules: []Rule{{Match: "prefix", Value: "X"}}},
		{name: "blank value", rules: []Rule{{Match: MatchExact, Value: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFilter(tt.rules)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
		})
	}
}

func TestFilter_NoRules(t *testing.T) {
	f, err := NewFilter(nil)
	require.NoError(t, err)
	assert.False(t, f.Excluded("MILIR"))
	assert.True(t, f.Excluded(""), "empty locations are always dropped")
}
