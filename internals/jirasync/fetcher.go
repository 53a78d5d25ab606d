package jirasync

import (
	"context"
	"errors"
	"fmt"
)

// Include selects which issue fields become labels.
type Include struct {
	Project    bool
	Components bool
	Labels     bool
}

var DefaultInclude = Include{Project: true, Components: true}

// FetchLabels looks up every key and returns the union of the selected
// fields. A failed lookup is reported to warn and skipped; an authorization
// failure ends the batch since every further lookup would fail the same way.
func FetchLabels(ctx context.Context, finder IssueFinder, keys []string, include Include, warn Warner) []string {
	var labels orderedSet
	for _, key := range keys {
		issue, err := finder.FindIssue(ctx, key)
		if err != nil {
			warn.Warn(fetchWarning(key, err))
			if errors.Is(err, ErrUnauthorized) {
				break
			}
			continue
		}

		if include.Project {
			labels.add(issue.ProjectKey)
		}
		if include.Components {
			for _, c := range issue.Components {
				labels.add(c)
			}
		}
		if include.Labels {
			for _, l := range issue.Labels {
				labels.add(l)
			}
		}
	}
	return labels.items
}

func fetchWarning(key string, err error) string {
	var te *TrackerError
	if errors.As(err, &te) {
		if te.StatusCode != 0 {
			return fmt.Sprintf("%d Error while retrieving Jira issue %q: %s", te.StatusCode, key, te.Message)
		}
		return fmt.Sprintf("Error while retrieving Jira issue %q: %s", key, te.Message)
	}
	return fmt.Sprintf("Error while retrieving Jira issue %q: %v", key, err)
}
