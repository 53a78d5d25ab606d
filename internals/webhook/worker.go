package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jadenj13/jirasync/internals/git"
	"github.com/jadenj13/jirasync/internals/jirasync"
	"github.com/jadenj13/jirasync/internals/slack"
)

type HostFactory interface {
	HostFor(ctx context.Context, repoURL string) (git.Host, git.RepoInfo, error)
}

type Notifier interface {
	NotifyWarnings(ctx context.Context, report slack.RunReport) error
}

// Worker runs the label sync for one pull request at a time.
type Worker struct {
	wf       *jirasync.Workflow
	factory  HostFactory
	notifier Notifier
	prefixes []string
	runOpts  []jirasync.RunOption
	log      *slog.Logger

	mu sync.Mutex
}

type WorkerOption func(*Worker)

// WithNotifier reports the warnings of every run.
func WithNotifier(n Notifier) WorkerOption {
	return func(w *Worker) { w.notifier = n }
}

func WithRunOptions(opts ...jirasync.RunOption) WorkerOption {
	return func(w *Worker) { w.runOpts = append(w.runOpts, opts...) }
}

func NewWorker(wf *jirasync.Workflow, factory HostFactory, prefixes []string, log *slog.Logger, opts ...WorkerOption) *Worker {
	w := &Worker{wf: wf, factory: factory, prefixes: prefixes, log: log}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Result is the outcome of one run.
type Result struct {
	Labels   []string
	Warnings []string
}

// HandlePR labels pr, whose title and body came with the event. pr.Repo and
// pr.Number are overwritten from repoURL and number.
func (w *Worker) HandlePR(ctx context.Context, repoURL string, pr jirasync.PullRequest) (Result, error) {
	host, info, err := w.factory.HostFor(ctx, repoURL)
	if err != nil {
		return Result{}, fmt.Errorf("build host: %w", err)
	}
	pr.Repo = info.FullName()
	return w.run(ctx, host, pr)
}

// Sync fetches the pull request from the code host and labels it.
func (w *Worker) Sync(ctx context.Context, repoURL string, number int) (Result, error) {
	host, info, err := w.factory.HostFor(ctx, repoURL)
	if err != nil {
		return Result{}, fmt.Errorf("build host: %w", err)
	}
	pr, err := host.GetPullRequest(ctx, info.FullName(), number)
	if err != nil {
		return Result{}, fmt.Errorf("get pull request: %w", err)
	}
	pr.Repo = info.FullName()
	pr.Number = number
	return w.run(ctx, host, pr)
}

func (w *Worker) run(ctx context.Context, host git.Host, pr jirasync.PullRequest) (Result, error) {
	// The workflow is not safe for concurrent runs.
	w.mu.Lock()
	defer w.mu.Unlock()

	log := w.log.With("run", uuid.NewString(), "repo", pr.Repo, "pr", pr.Number)
	log.Info("syncing jira labels")

	var warnings jirasync.Collector
	opts := append([]jirasync.RunOption{}, w.runOpts...)
	opts = append(opts, jirasync.WithWarner(jirasync.Tee(&warnings, jirasync.LogWarner{Log: log})))

	labels, err := w.wf.Run(ctx, host, pr, w.prefixes, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("jira sync: %w", err)
	}

	res := Result{Labels: labels, Warnings: warnings.Messages()}
	log.Info("jira labels synced", "labels", len(res.Labels), "warnings", len(res.Warnings))

	if w.notifier != nil {
		if err := w.notifier.NotifyWarnings(ctx, slack.RunReport{
			Repo:     pr.Repo,
			Number:   pr.Number,
			Labels:   res.Labels,
			Warnings: res.Warnings,
		}); err != nil {
			log.Warn("failed to send Slack notification", "err", err)
		}
	}
	return res, nil
}
