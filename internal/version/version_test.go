package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestShort verifies the short form carries the semantic version.
func TestShort(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Equal(t, Version, Short())
}

// TestFull verifies the long form carries version, commit and build time.
func TestFull(t *testing.T) {
	t.Parallel()

	full := Full()
	require.Contains(t, full, Version)
	require.Contains(t, full, Commit)
	require.Contains(t, full, BuildTime)
}
