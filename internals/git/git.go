package git

import (
	"context"

	"github.com/jadenj13/jirasync/internals/jirasync"
)

// Host is a code host that can label pull (merge) requests.
type Host interface {
	jirasync.CodeHost
	GetPullRequest(ctx context.Context, repo string, number int) (jirasync.PullRequest, error)
}

type Platform int

const (
	PlatformGitHub Platform = iota
	PlatformGitLab
)

func (p Platform) String() string {
	switch p {
	case PlatformGitHub:
		return "github"
	case PlatformGitLab:
		return "gitlab"
	default:
		return "unknown"
	}
}

// labelsPerPage is the largest page size both hosts accept.
const labelsPerPage = 100
