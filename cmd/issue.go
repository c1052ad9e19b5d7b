package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/gli/pkg/models"
)

func newIssueCmd(a *app) *cobra.Command {
	var (
		text     string
		labels   []string
		assignee string
		open     bool
	)

	cmd := &cobra.Command{
		Use:   "issue TITLE",
		Short: "Create an issue",
		Long: `Create an issue on the project of the current repository.

Words of the title are joined with spaces, so quoting is optional.

Example:
  gli issue "Login page is blank" -t "Since the last deploy" -l bug -a jdoe`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher(cmd)
			if err != nil {
				return err
			}

			created, err := d.CreateIssue(cmd.Context(), models.NewIssue{
				Title:    strings.Join(args, " "),
				Body:     text,
				Labels:   labels,
				Assignee: assignee,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created issue #%d: %s\n", created.Number, created.URL)

			if open {
				return a.browser(cmd).Open(created.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Issue description")
	cmd.Flags().StringArrayVarP(&labels, "label", "l", nil, "Label to add, can be repeated")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Username of the assignee")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the created issue in the browser")

	return cmd
}
