package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RemoteURL returns the fetch URL of the named remote of the working tree at
// dir (the current directory when dir is empty).
func RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	out, err := run(ctx, dir, "git", "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	u := strings.TrimSpace(out)
	if u == "" {
		return "", fmt.Errorf("remote %q has no URL", remote)
	}
	return u, nil
}

func run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %q: %w\nstderr: %s", name+" "+strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}
