package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShortCode(t *testing.T) {
	code, err := GenerateShortCode()

	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

func TestGenerateShortCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateShortCode()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Len(t, seen, 100)
}
