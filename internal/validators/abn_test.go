package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBusinessNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"fully spaced", "11 222 333 444", true},
		{"no spaces", "11222333444", true},
		{"partial spacing", "11 222333 444", true},
		{"surrounding whitespace", "  11 222 333 444  ", true},
		{"letter in place of digit", "11 222 3a3 444", false},
		{"too few digits", "11 222 333 44", false},
		{"too many digits", "11 222 333 4445", false},
		{"wrong grouping", "112 22 333 444", false},
		{"double space at boundary", "11  222 333 444", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidBusinessNumber(tt.input), "input %q", tt.input)
		})
	}
}
