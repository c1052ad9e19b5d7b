package issues

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/danielolaszy/gli/internal/config"
	"github.com/danielolaszy/gli/internal/logging"
	"github.com/danielolaszy/gli/internal/project"
	"github.com/danielolaszy/gli/pkg/models"
)

// RemoteSource supplies the remote URL the project is inferred from.
type RemoteSource interface {
	OriginURL(ctx context.Context) (string, error)
}

// Dispatcher resolves the current project and forwards calls to its backend.
type Dispatcher struct {
	remote   RemoteSource
	config   *config.Config
	backends BackendFactory
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBackends replaces the API backends.
func WithBackends(f BackendFactory) Option {
	return func(d *Dispatcher) {
		d.backends = f
	}
}

// NewDispatcher returns a dispatcher reading the remote from remote.
func NewDispatcher(remote RemoteSource, cfg *config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		remote:   remote,
		config:   cfg,
		backends: DefaultBackends(os.Stderr),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Identify parses the remote URL and resolves its provider.
func (d *Dispatcher) Identify(ctx context.Context) (project.Identity, error) {
	remoteURL, err := d.remote.OriginURL(ctx)
	if err != nil {
		return project.Identity{}, err
	}

	id, err := project.Identify(remoteURL, d.config.GitLabDomain)
	if err != nil {
		return project.Identity{}, err
	}

	logging.Debug("resolved project",
		"remote", remoteURL,
		"provider", id.Provider.String(),
		"project", id.Name())
	return id, nil
}

// target is a resolved project together with its backend.
type target struct {
	id      project.Identity
	backend Backend
	creds   models.Credentials
}

func (d *Dispatcher) resolve(ctx context.Context) (target, error) {
	id, err := d.Identify(ctx)
	if err != nil {
		return target{}, err
	}

	backend, creds, err := d.backends(id.Provider, d.config)
	if err != nil {
		return target{}, err
	}
	return target{id: id, backend: backend, creds: creds}, nil
}

// CreateIssue creates issue on the current project.
func (d *Dispatcher) CreateIssue(ctx context.Context, issue models.NewIssue) (models.CreatedIssue, error) {
	if strings.TrimSpace(issue.Title) == "" {
		return models.CreatedIssue{}, fmt.Errorf("issue title is required")
	}

	t, err := d.resolve(ctx)
	if err != nil {
		return models.CreatedIssue{}, err
	}
	return t.backend.CreateIssue(ctx, t.creds, t.id.Owner, t.id.Repository, issue)
}

// ListIssues lists the issues of the current project matching filter.
func (d *Dispatcher) ListIssues(ctx context.Context, filter models.IssueFilter) ([]models.IssueSummary, error) {
	t, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return t.backend.ListIssues(ctx, t.creds, t.id.Owner, t.id.Repository, filter)
}

// Project returns the identity of the current project and its web page.
func (d *Dispatcher) Project(ctx context.Context) (project.Identity, string, error) {
	t, err := d.resolve(ctx)
	if err != nil {
		return project.Identity{}, "", err
	}
	return t.id, t.backend.ProjectURL(t.id.Provider.Domain(), t.id.Name()), nil
}

// ProjectURL returns the web page of the current project.
func (d *Dispatcher) ProjectURL(ctx context.Context) (string, error) {
	t, err := d.resolve(ctx)
	if err != nil {
		return "", err
	}
	return t.backend.ProjectURL(t.id.Provider.Domain(), t.id.Name()), nil
}

// IssueURL returns the web page of issue number of the current project.
func (d *Dispatcher) IssueURL(ctx context.Context, number uint64) (string, error) {
	t, err := d.resolve(ctx)
	if err != nil {
		return "", err
	}
	return t.backend.IssueURL(t.id.Provider.Domain(), t.id.Name(), number), nil
}
