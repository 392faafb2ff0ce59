package rill

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPathPreservesEmptySegments(t *testing.T) {
	dirs := SplitPath("/usr/bin::/bin")
	require.Equal(t, []string{"/usr/bin", "", "/bin"}, dirs)
}

func TestJoinPathEntryTrimsTrailingSlash(t *testing.T) {
	require.Equal(t, "/usr/bin/ls", joinPathEntry("/usr/bin/", "ls"))
	require.Equal(t, "/usr/bin/ls", joinPathEntry("/usr/bin", "ls"))
}

func TestJoinPathEntryEmptyDirMeansBareName(t *testing.T) {
	require.Equal(t, "ls", joinPathEntry("", "ls"))
}

func TestExternalCallUnknownCommandAcrossAllPathEntries(t *testing.T) {
	v, err := externalCall([]string{"/nonexistent-dir-1", "/nonexistent-dir-2"}, "definitely-not-a-real-command", nil, nil, true)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestExternalCallCapturesAndConvertsOutput(t *testing.T) {
	v, err := externalCall([]string{"/bin", "/usr/bin"}, "echo", []string{"42"}, nil, true)
	require.NoError(t, err)
	require.True(t, v.IsInteger())
	require.Equal(t, int64(42), v.Int())
}
