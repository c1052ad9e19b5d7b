package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Show the project the current repository belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher(cmd)
			if err != nil {
				return err
			}

			id, url, err := d.Project(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "provider: %s\n", id.Provider)
			fmt.Fprintf(out, "project:  %s\n", id.Name())
			fmt.Fprintf(out, "url:      %s\n", url)
			return nil
		},
	}
}
