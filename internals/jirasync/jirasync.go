// Package jirasync labels pull requests with the project keys, component
// names and (optionally) labels of the Jira issues they reference.
package jirasync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("jirasync: Configure must be called before Run")
	ErrNoPrefixes    = errors.New("jirasync: at least one issue key prefix is required")
	ErrUnauthorized  = errors.New("jira: unauthorized")
)

// PullRequest is the review context a run operates on.
type PullRequest struct {
	Title  string
	Body   string
	Repo   string // full name, e.g. "org/repo" or "group/sub/repo"
	Number int
}

// Issue is the subset of a Jira issue the sync cares about.
type Issue struct {
	Key        string
	ProjectKey string
	Components []string
	Labels     []string
}

type IssueFinder interface {
	FindIssue(ctx context.Context, key string) (Issue, error)
}

type CodeHost interface {
	ListRepositoryLabels(ctx context.Context, repo string) ([]string, error)
	CreateLabel(ctx context.Context, repo, name, color string) error
	ListPullRequestLabels(ctx context.Context, repo string, number int) ([]string, error)
	AddLabelsToPullRequest(ctx context.Context, repo string, number int, names []string) error
}

// TrackerError is returned by IssueFinder implementations when the tracker
// answered with a non-2xx status or could not be reached (StatusCode 0).
type TrackerError struct {
	Key        string
	StatusCode int
	Message    string
}

func (e *TrackerError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("jira issue %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("jira issue %s: %d %s", e.Key, e.StatusCode, e.Message)
}

// Is reports 401 and 403 responses as ErrUnauthorized.
func (e *TrackerError) Is(target error) bool {
	return target == ErrUnauthorized && e.Unauthorized()
}

func (e *TrackerError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
