package jirasync

import (
	"context"
	"errors"
)

type fakeFinder struct {
	issues map[string]Issue
	errs   map[string]error
	calls  []string
}

func (f *fakeFinder) FindIssue(_ context.Context, key string) (Issue, error) {
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return Issue{}, err
	}
	if issue, ok := f.issues[key]; ok {
		return issue, nil
	}
	return Issue{}, &TrackerError{Key: key, StatusCode: 404, Message: "Issue does not exist"}
}

type createCall struct {
	Repo, Name, Color string
}

type fakeHost struct {
	repoLabels []string
	prLabels   []string

	listRepoErr error
	createErr   map[string]error
	listPRErr   error
	addErr      error

	created []createCall
	added   [][]string
	calls   int
}

func (h *fakeHost) ListRepositoryLabels(context.Context, string) ([]string, error) {
	h.calls++
	if h.listRepoErr != nil {
		return nil, h.listRepoErr
	}
	return h.repoLabels, nil
}

func (h *fakeHost) CreateLabel(_ context.Context, repo, name, color string) error {
	h.calls++
	h.created = append(h.created, createCall{repo, name, color})
	return h.createErr[name]
}

func (h *fakeHost) ListPullRequestLabels(context.Context, string, int) ([]string, error) {
	h.calls++
	if h.listPRErr != nil {
		return nil, h.listPRErr
	}
	return h.prLabels, nil
}

func (h *fakeHost) AddLabelsToPullRequest(_ context.Context, _ string, _ int, names []string) error {
	h.calls++
	h.added = append(h.added, names)
	return h.addErr
}

func (h *fakeHost) createdNames() []string {
	var out []string
	for _, c := range h.created {
		out = append(out, c.Name)
	}
	return out
}

var errBoom = errors.New("boom")
