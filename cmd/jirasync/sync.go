package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jadenj13/jirasync/internals/git"
)

func newSyncCmd() *cobra.Command {
	var (
		repoURL string
		number  int
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Label a single pull request and exit",
		Long: `Label a single pull request and exit. When --repo is omitted the URL of the
"origin" remote of the current working tree is used, which suits CI jobs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := newLogger()

			if repoURL == "" {
				u, err := git.RemoteURL(ctx, "", "origin")
				if err != nil {
					return fmt.Errorf("--repo not set and no origin remote: %w", err)
				}
				repoURL = u
			}

			worker, _, err := buildWorker(log)
			if err != nil {
				return err
			}

			res, err := worker.Sync(ctx, repoURL, number)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(res.Labels) == 0 {
				fmt.Fprintln(out, "no labels to apply")
			} else {
				fmt.Fprintf(out, "labels: %s\n", strings.Join(res.Labels, ", "))
			}
			for _, w := range res.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&repoURL, "repo", "", "repository URL, e.g. https://github.com/org/app")
	cmd.Flags().IntVar(&number, "number", 0, "pull request (merge request) number")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}
