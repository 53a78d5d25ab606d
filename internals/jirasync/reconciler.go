package jirasync

import (
	"context"
	"fmt"
)

// Reconcile creates the labels missing from the repository and applies the
// ones the pull request lacks. Remote failures are reported to warn; none of
// them stop the remaining steps.
func Reconcile(ctx context.Context, host CodeHost, repo string, number int, labels []string, warn Warner) {
	ensureRepositoryLabels(ctx, host, repo, labels, warn)
	applyPullRequestLabels(ctx, host, repo, number, labels, warn)
}

func ensureRepositoryLabels(ctx context.Context, host CodeHost, repo string, labels []string, warn Warner) {
	catalog, err := host.ListRepositoryLabels(ctx, repo)
	if err != nil {
		warn.Warn(fmt.Sprintf("Error while fetching labels for %s: %v", repo, err))
	}

	// A failed create is still applied below: the label may exist already.
	for _, name := range difference(labels, catalog) {
		if err := host.CreateLabel(ctx, repo, name, RandomColor()); err != nil {
			warn.Warn(fmt.Sprintf("Error while creating label %q on %s: %v", name, repo, err))
		}
	}
}

func applyPullRequestLabels(ctx context.Context, host CodeHost, repo string, number int, labels []string, warn Warner) {
	current, err := host.ListPullRequestLabels(ctx, repo, number)
	if err != nil {
		warn.Warn(fmt.Sprintf("Error while fetching labels for %s#%d: %v", repo, number, err))
	}

	toAdd := difference(labels, current)
	if len(toAdd) == 0 {
		return
	}
	if err := host.AddLabelsToPullRequest(ctx, repo, number, toAdd); err != nil {
		warn.Warn(fmt.Sprintf("Error while adding labels to %s#%d: %v", repo, number, err))
	}
}
