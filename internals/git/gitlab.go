package git

import (
	"context"
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/jadenj13/jirasync/internals/jirasync"
)

// GitLabHost labels merge requests. Repos are project paths such as
// "group/sub/project".
type GitLabHost struct {
	gl *gitlab.Client
}

func NewGitLabHost(token, baseURL string) (*GitLabHost, error) {
	gl, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL+"/api/v4"))
	if err != nil {
		return nil, fmt.Errorf("gitlab client: %w", err)
	}
	return &GitLabHost{gl: gl}, nil
}

func (h *GitLabHost) GetPullRequest(ctx context.Context, repo string, number int) (jirasync.PullRequest, error) {
	mr, _, err := h.gl.MergeRequests.GetMergeRequest(repo, int64(number), nil, gitlab.WithContext(ctx))
	if err != nil {
		return jirasync.PullRequest{}, fmt.Errorf("gitlab get merge request: %w", err)
	}
	return jirasync.PullRequest{
		Title:  mr.Title,
		Body:   mr.Description,
		Repo:   repo,
		Number: number,
	}, nil
}

func (h *GitLabHost) ListRepositoryLabels(ctx context.Context, repo string) ([]string, error) {
	var names []string
	opts := &gitlab.ListLabelsOptions{ListOptions: gitlab.ListOptions{PerPage: labelsPerPage}}
	for {
		labels, resp, err := h.gl.Labels.ListLabels(repo, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("gitlab list labels: %w", err)
		}
		for _, l := range labels {
			names = append(names, l.Name)
		}
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateLabel expects color as six hex digits; GitLab wants the leading '#'.
func (h *GitLabHost) CreateLabel(ctx context.Context, repo, name, color string) error {
	opts := &gitlab.CreateLabelOptions{
		Name:  gitlab.Ptr(name),
		Color: gitlab.Ptr("#" + color),
	}
	if _, _, err := h.gl.Labels.CreateLabel(repo, opts, gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("gitlab create label: %w", err)
	}
	return nil
}

func (h *GitLabHost) ListPullRequestLabels(ctx context.Context, repo string, number int) ([]string, error) {
	mr, _, err := h.gl.MergeRequests.GetMergeRequest(repo, int64(number), nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("gitlab get merge request: %w", err)
	}
	return append([]string(nil), mr.Labels...), nil
}

func (h *GitLabHost) AddLabelsToPullRequest(ctx context.Context, repo string, number int, labels []string) error {
	opts := &gitlab.UpdateMergeRequestOptions{
		AddLabels: (*gitlab.LabelOptions)(&labels),
	}
	_, _, err := h.gl.MergeRequests.UpdateMergeRequest(repo, int64(number), opts, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("gitlab add labels: %w", err)
	}
	return nil
}
