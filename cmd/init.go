package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/gli/internal/config"
	"github.com/danielolaszy/gli/internal/logging"
	"github.com/danielolaszy/gli/internal/prompt"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Store the GitLab domain and access tokens",
		Long: `Ask for the domain of your GitLab instance, a GitLab personal access
token and a GitHub personal access token, then save them to the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(a.configPath)
			if err != nil {
				return err
			}

			cfg, err := prompt.AskConfig(prompt.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}

			logging.Info("configuration saved",
				"path", path,
				"gitlab_domain", cfg.GitLabDomain,
				"gitlab_token", logging.MaskSensitive(cfg.GitLabToken),
				"github_token", logging.MaskSensitive(cfg.GitHubToken))
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}
}
