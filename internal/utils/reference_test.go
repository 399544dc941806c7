package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewReferenceCode()
		require.NoError(t, err)

		assert.Len(t, code, ReferenceLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(referenceCharset, r), "unexpected character %q in %s", r, code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be effectively unique")
}
