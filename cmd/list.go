package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/gli/pkg/models"
)

const createdAtLayout = "2006-01-02 15:04"

func newListCmd(a *app) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the issues of the project",
		Long: `List the issues of the project of the current repository, one per line:

  #<number> <state> <title> <created at> <url>

GitLab issues that were reopened are listed as open issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := models.ParseIssueFilter(state)
			if err != nil {
				return err
			}

			d, err := a.dispatcher(cmd)
			if err != nil {
				return err
			}

			issues, err := d.ListIssues(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintf(out, "#%d %s %s %s %s\n",
					issue.Number,
					issue.State,
					issue.Title,
					issue.CreatedAt.UTC().Format(createdAtLayout),
					issue.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&state, "state", "s", models.Open.String(), "Issue state: open or closed")

	return cmd
}
