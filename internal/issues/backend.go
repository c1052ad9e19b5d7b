// Package issues routes issue operations to the backend owning the project
// of the current repository.
package issues

import (
	"context"
	"fmt"
	"io"

	"github.com/danielolaszy/gli/internal/config"
	"github.com/danielolaszy/gli/internal/github"
	"github.com/danielolaszy/gli/internal/gitlab"
	"github.com/danielolaszy/gli/internal/project"
	"github.com/danielolaszy/gli/pkg/models"
)

// Backend is the contract every issue tracker implements.
type Backend interface {
	// CreateIssue opens an issue and returns its number and web URL.
	CreateIssue(ctx context.Context, creds models.Credentials, owner, repo string, issue models.NewIssue) (models.CreatedIssue, error)

	// ListIssues returns the issues matching filter.
	ListIssues(ctx context.Context, creds models.Credentials, owner, repo string, filter models.IssueFilter) ([]models.IssueSummary, error)

	// IssueURL formats the web page of issue number of project name.
	IssueURL(domain, name string, number uint64) string

	// ProjectURL formats the web page of project name.
	ProjectURL(domain, name string) string
}

var (
	_ Backend = (*github.Backend)(nil)
	_ Backend = (*gitlab.Backend)(nil)
)

// BackendFactory returns the backend for a provider and the credentials to
// hand it.
type BackendFactory func(provider project.Provider, cfg *config.Config) (Backend, models.Credentials, error)

// DefaultBackends builds the GitHub and GitLab API backends. GitHub warnings
// are written to warnings.
func DefaultBackends(warnings io.Writer) BackendFactory {
	return func(provider project.Provider, cfg *config.Config) (Backend, models.Credentials, error) {
		switch p := provider.(type) {
		case project.GitHub:
			return github.NewBackend(github.WithWarnings(warnings)), models.Credentials{Token: cfg.GitHubToken}, nil
		case project.GitLab:
			return gitlab.NewBackend(p.Host), models.Credentials{Token: cfg.GitLabToken}, nil
		default:
			return nil, models.Credentials{}, fmt.Errorf("no backend for provider %v", provider)
		}
	}
}
