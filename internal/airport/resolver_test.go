package airport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"blank input", "", ""},
		{"whitespace input", "   ", ""},
		{"already a code", "BOG", "BOG"},
		{"already a code unknown to table", "XXJ", "XXJ"},
		{"exact match", "miami", "MIA"},
		{"exact match uppercase", "MIAMI", "MIA"},
		{"exact match with accent", "bogotá", "BOG"},
		{"exact match trimmed", "  medellin  ", "MDE"},
		{"spanish alias", "nueva york", "JFK"},
		{"multi word", "buenos aires", "EZE"},
		{"input contains table key", "ciudad de miami", "MIA"},
		{"table key contains input", "cartagen", "CTG"},
		{"no match round-trips unchanged", "Atlantis", "Atlantis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.input))
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	// Substring scan follows table order, so repeated calls must agree.
	first := Resolve("san")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Resolve("san"))
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"BOG", true},
		{"MIA", true},
		{"bog", false},
		{"BOGO", false},
		{"BO", false},
		{"B1G", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCode(tt.input), "input %q", tt.input)
	}
}
