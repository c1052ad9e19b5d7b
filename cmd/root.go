// Package cmd provides the command-line interface of gli.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/gli/internal/browser"
	"github.com/danielolaszy/gli/internal/config"
	"github.com/danielolaszy/gli/internal/git"
	"github.com/danielolaszy/gli/internal/issues"
	"github.com/danielolaszy/gli/internal/logging"
)

// app holds global flags and the collaborators commands reach out to. Nil
// backends and open select the real API backends and system browser.
type app struct {
	configPath string
	logLevel   string

	remote   issues.RemoteSource
	backends issues.BackendFactory
	open     browser.Opener
}

func defaultApp() *app {
	return &app{
		remote: git.NewClient("."),
	}
}

// Execute runs the gli command line.
func Execute() error {
	return newRootCmd(defaultApp()).ExecuteContext(context.Background())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gli",
		Short: "Create and list issues of the current repository",
		Long: `gli works on the issues of the repository in the current directory.

The project is read from the 'origin' remote. Remotes on github.com go to
GitHub, remotes on the configured GitLab domain go to that GitLab instance.

Run 'gli init' once to store the GitLab domain and the access tokens.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelFromEnv()
			if cmd.Flags().Changed("log-level") {
				level = logging.LogLevel(a.logLevel)
			}
			logging.SetupLogger(cmd.ErrOrStderr(), level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the configuration file (default: <user config dir>/issues-helper/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", string(logging.DefaultLevel), "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newInitCmd(a),
		newIssueCmd(a),
		newListCmd(a),
		newOpenCmd(a),
		newProjectCmd(a),
	)

	return rootCmd
}

// dispatcher loads the configuration and returns a dispatcher for the
// repository in the working directory.
func (a *app) dispatcher(cmd *cobra.Command) (*issues.Dispatcher, error) {
	path, err := config.ResolvePath(a.configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	backends := a.backends
	if backends == nil {
		backends = issues.DefaultBackends(cmd.ErrOrStderr())
	}
	return issues.NewDispatcher(a.remote, cfg, issues.WithBackends(backends)), nil
}

func (a *app) browser(cmd *cobra.Command) *browser.Browser {
	if a.open == nil {
		return browser.New(cmd.OutOrStdout())
	}
	return browser.NewWithOpener(cmd.OutOrStdout(), a.open)
}
