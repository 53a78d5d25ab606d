package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jadenj13/jirasync/internals/config"
	"github.com/jadenj13/jirasync/internals/git"
	"github.com/jadenj13/jirasync/internals/jira"
	"github.com/jadenj13/jirasync/internals/jirasync"
	"github.com/jadenj13/jirasync/internals/slack"
	"github.com/jadenj13/jirasync/internals/webhook"
)

var cfgFile string

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jirasync",
		Short: "Label pull requests with the Jira projects and components they reference",
		Long: `jirasync finds Jira issue keys (e.g. DEV-123) in a pull request title, or
in its description when the title has none, and labels the pull request with
each issue's project key and component names. Missing labels are created on
the repository first.

Example:
  jirasync serve --addr :8080
  jirasync sync --repo https://github.com/org/app --number 42`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .jirasync.yaml)")
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentFlags().StringSlice("prefixes", nil, "issue key prefixes, e.g. DEV,OPS")
	root.PersistentFlags().Bool("labels", false, "also apply the issues' own Jira labels")
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("prefixes", root.PersistentFlags().Lookup("prefixes"))
	_ = viper.BindPFlag("include.labels", root.PersistentFlags().Lookup("labels"))

	root.AddCommand(newServeCmd(), newSyncCmd())
	return root
}

func initConfig() error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jirasync")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// buildWorker wires config into a configured workflow and worker.
func buildWorker(log *slog.Logger) (*webhook.Worker, *config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	wf := jirasync.New(jira.Connect, jirasync.LogWarner{Log: log}, jirasync.WithLogger(log))
	if _, err := wf.Configure(cfg.Jira.URL, cfg.Jira.Username, cfg.Jira.APIToken); err != nil {
		return nil, nil, err
	}

	factory := git.NewFactory(cfg.GitHub.Token, cfg.GitLab.Token, git.WithGitLabBaseURL(cfg.GitLab.BaseURL))

	opts := []webhook.WorkerOption{
		webhook.WithRunOptions(jirasync.WithInclude(jirasync.Include{
			Project:    cfg.Include.Project,
			Components: cfg.Include.Components,
			Labels:     cfg.Include.Labels,
		})),
	}
	if cfg.Slack.Enabled() {
		opts = append(opts, webhook.WithNotifier(slack.NewNotifier(cfg.Slack.Token, cfg.Slack.Channel)))
	}

	return webhook.NewWorker(wf, factory, cfg.Prefixes, log, opts...), cfg, nil
}
