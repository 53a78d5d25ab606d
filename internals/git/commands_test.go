package git

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteURL(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	ctx := context.Background()
	dir := t.TempDir()

	_, err := run(ctx, dir, "git", "init", "-q")
	require.NoError(t, err)
	_, err = run(ctx, dir, "git", "remote", "add", "origin", "git@github.com:org/repo.git")
	require.NoError(t, err)

	got, err := RemoteURL(ctx, dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:org/repo.git", got)

	_, err = RemoteURL(ctx, dir, "upstream")
	assert.Error(t, err)
}
