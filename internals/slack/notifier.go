package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// RunReport summarises one labelling run for a pull request.
type RunReport struct {
	Repo     string
	Number   int
	Labels   []string
	Warnings []string
}

type Notifier struct {
	client    *slack.Client
	channelID string
}

type Option func(*notifierConfig)

type notifierConfig struct {
	apiURL string
}

// WithAPIURL points the client at another Slack API endpoint.
func WithAPIURL(u string) Option {
	return func(c *notifierConfig) { c.apiURL = u }
}

func NewNotifier(botToken, channelID string, opts ...Option) *Notifier {
	var cfg notifierConfig
	for _, o := range opts {
		o(&cfg)
	}
	var clientOpts []slack.Option
	if cfg.apiURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(cfg.apiURL))
	}
	return &Notifier{
		client:    slack.New(botToken, clientOpts...),
		channelID: channelID,
	}
}

// NotifyWarnings posts the warnings of a run. Runs without warnings post
// nothing.
func (n *Notifier) NotifyWarnings(ctx context.Context, report RunReport) error {
	if len(report.Warnings) == 0 {
		return nil
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(formatReport(report), false),
	)
	if err != nil {
		return fmt.Errorf("slack notify: %w", err)
	}
	return nil
}

func formatReport(r RunReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ":warning: *Jira label sync for %s#%d*\n", r.Repo, r.Number)
	if len(r.Labels) > 0 {
		fmt.Fprintf(&sb, "Labels: %s\n", strings.Join(r.Labels, ", "))
	}
	for _, w := range r.Warnings {
		sb.WriteString("• ")
		sb.WriteString(w)
		sb.WriteString("\n")
	}
	return sb.String()
}
