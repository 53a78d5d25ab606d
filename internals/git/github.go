package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/jadenj13/jirasync/internals/jirasync"
)

type GitHubHost struct {
	gh *github.Client
}

func NewGitHubHost(ctx context.Context, token string) *GitHubHost {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubHost{gh: github.NewClient(oauth2.NewClient(ctx, ts))}
}

func splitFullName(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("github repo must be owner/name, got %q", repo)
	}
	return owner, name, nil
}

func (h *GitHubHost) GetPullRequest(ctx context.Context, repo string, number int) (jirasync.PullRequest, error) {
	owner, name, err := splitFullName(repo)
	if err != nil {
		return jirasync.PullRequest{}, err
	}
	pr, _, err := h.gh.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return jirasync.PullRequest{}, fmt.Errorf("github get pull request: %w", err)
	}
	return jirasync.PullRequest{
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		Repo:   repo,
		Number: pr.GetNumber(),
	}, nil
}

func (h *GitHubHost) ListRepositoryLabels(ctx context.Context, repo string) ([]string, error) {
	owner, name, err := splitFullName(repo)
	if err != nil {
		return nil, err
	}

	var names []string
	opts := &github.ListOptions{PerPage: labelsPerPage}
	for {
		labels, resp, err := h.gh.Issues.ListLabels(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("github list labels: %w", err)
		}
		names = appendLabelNames(names, labels)
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

func (h *GitHubHost) CreateLabel(ctx context.Context, repo, label, color string) error {
	owner, name, err := splitFullName(repo)
	if err != nil {
		return err
	}
	_, _, err = h.gh.Issues.CreateLabel(ctx, owner, name, &github.Label{
		Name:  github.String(label),
		Color: github.String(color),
	})
	if err != nil {
		return fmt.Errorf("github create label: %w", err)
	}
	return nil
}

func (h *GitHubHost) ListPullRequestLabels(ctx context.Context, repo string, number int) ([]string, error) {
	owner, name, err := splitFullName(repo)
	if err != nil {
		return nil, err
	}

	var names []string
	opts := &github.ListOptions{PerPage: labelsPerPage}
	for {
		labels, resp, err := h.gh.Issues.ListLabelsByIssue(ctx, owner, name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("github list pull request labels: %w", err)
		}
		names = appendLabelNames(names, labels)
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

func (h *GitHubHost) AddLabelsToPullRequest(ctx context.Context, repo string, number int, labels []string) error {
	owner, name, err := splitFullName(repo)
	if err != nil {
		return err
	}
	_, _, err = h.gh.Issues.AddLabelsToIssue(ctx, owner, name, number, labels)
	if err != nil {
		return fmt.Errorf("github add labels: %w", err)
	}
	return nil
}

func appendLabelNames(dst []string, labels []*github.Label) []string {
	for _, l := range labels {
		dst = append(dst, l.GetName())
	}
	return dst
}
