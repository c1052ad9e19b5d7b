package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open [NUMBER]",
		Short: "Open the project or one of its issues in the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher(cmd)
			if err != nil {
				return err
			}

			var url string
			if len(args) == 1 {
				number, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil || number == 0 {
					return fmt.Errorf("invalid issue number %q", args[0])
				}
				url, err = d.IssueURL(cmd.Context(), number)
				if err != nil {
					return err
				}
			} else {
				url, err = d.ProjectURL(cmd.Context())
				if err != nil {
					return err
				}
			}

			return a.browser(cmd).Open(url)
		},
	}
}
