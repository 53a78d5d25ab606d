package jirasync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ConnectFunc builds an authenticated IssueFinder.
type ConnectFunc func(url, username, apiToken string) (IssueFinder, error)

type Workflow struct {
	connect ConnectFunc
	tracker IssueFinder
	warn    Warner
	log     *slog.Logger
}

type Option func(*Workflow)

func WithLogger(log *slog.Logger) Option {
	return func(w *Workflow) { w.log = log }
}

func New(connect ConnectFunc, warn Warner, opts ...Option) *Workflow {
	w := &Workflow{
		connect: connect,
		warn:    warn,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Configure warns about every blank credential and then builds the tracker
// client anyway, so a misconfigured run degrades into lookup warnings.
func (w *Workflow) Configure(url, username, apiToken string) (IssueFinder, error) {
	for _, f := range []struct{ name, value string }{
		{"jira_url", url},
		{"jira_username", username},
		{"jira_api_token", apiToken},
	} {
		if strings.TrimSpace(f.value) == "" {
			w.warn.Warn("jira sync configuration is missing " + f.name)
		}
	}

	tracker, err := w.connect(url, username, apiToken)
	if err != nil {
		return nil, fmt.Errorf("jira client: %w", err)
	}
	w.tracker = tracker
	return tracker, nil
}

type runConfig struct {
	include Include
	warn    Warner
}

type RunOption func(*runConfig)

func WithProjectKeys(on bool) RunOption {
	return func(c *runConfig) { c.include.Project = on }
}

func WithComponents(on bool) RunOption {
	return func(c *runConfig) { c.include.Components = on }
}

func WithIssueLabels(on bool) RunOption {
	return func(c *runConfig) { c.include.Labels = on }
}

// WithInclude replaces the default field selection.
func WithInclude(include Include) RunOption {
	return func(c *runConfig) { c.include = include }
}

// WithWarner sends the warnings of this run to warn instead of the
// Workflow's Warner.
func WithWarner(warn Warner) RunOption {
	return func(c *runConfig) { c.warn = warn }
}

// Run labels pr with the metadata of the Jira issues it references and
// returns the labels it determined should apply. A nil result means there was
// nothing to do. Only ErrNotConfigured and ErrNoPrefixes are returned; remote
// failures go to the Warner.
func (w *Workflow) Run(ctx context.Context, host CodeHost, pr PullRequest, prefixes []string, opts ...RunOption) ([]string, error) {
	if w.tracker == nil {
		return nil, ErrNotConfigured
	}
	if len(prefixes) == 0 {
		return nil, ErrNoPrefixes
	}

	keys := ExtractKeys(pr, prefixes)
	if len(keys) == 0 {
		w.log.Debug("no issue keys found", "repo", pr.Repo, "pr", pr.Number)
		return nil, nil
	}

	rc := runConfig{include: DefaultInclude, warn: w.warn}
	for _, o := range opts {
		o(&rc)
	}

	labels := FetchLabels(ctx, w.tracker, keys, rc.include, rc.warn)
	if len(labels) == 0 {
		w.log.Debug("no labels fetched", "repo", pr.Repo, "pr", pr.Number, "keys", keys)
		return nil, nil
	}

	Reconcile(ctx, host, pr.Repo, pr.Number, labels, rc.warn)
	w.log.Info("pull request labelled", "repo", pr.Repo, "pr", pr.Number, "labels", labels)

	return labels, nil
}
