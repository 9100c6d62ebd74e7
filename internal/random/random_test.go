package random_test

import (
	"testing"

	"github.com/RaheesAhmed/growthcompass/internal/random"
	"github.com/stretchr/testify/require"
)

func TestLetters(t *testing.T) {
	s, err := random.Letters(20)
	require.NoError(t, err)
	require.Len(t, s, 20)
	for _, r := range s {
		require.True(t, (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'), "unexpected rune %q", r)
	}

	s2, err := random.Letters(20)
	require.NoError(t, err)
	require.NotEqual(t, s, s2)

	empty, err := random.Letters(0)
	require.NoError(t, err)
	require.Empty(t, empty)
}
