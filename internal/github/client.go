// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/gli/internal/logging"
	"github.com/danielolaszy/gli/pkg/models"
)

const (
	backendName = "github"
	webURL      = "https://github.com"
	perPage     = 100
)

// Backend creates and lists issues on github.com.
type Backend struct {
	baseURL    *url.URL
	httpClient *http.Client
	warnings   io.Writer
}

// Option configures a Backend.
type Option func(*Backend)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(b *Backend) {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		if u, err := url.Parse(raw); err == nil {
			b.baseURL = u
		} else {
			logging.Warn("ignoring invalid github api url", "url", raw, "error", err)
		}
	}
}

// WithHTTPClient sets the client used underneath the token transport.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.httpClient = c
	}
}

// WithWarnings sets where user facing warnings are written. Defaults to stderr.
func WithWarnings(w io.Writer) Option {
	return func(b *Backend) {
		b.warnings = w
	}
}

// NewBackend returns a GitHub backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{warnings: os.Stderr}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// newClient authenticates with the token in creds.
func (b *Backend) newClient(ctx context.Context, creds models.Credentials) *github.Client {
	if b.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: creds.Token},
	)
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if b.baseURL != nil {
		client.BaseURL = b.baseURL
	}

	logging.Debug("github client configured",
		"api_url", client.BaseURL.String(),
		"token", logging.MaskSensitive(creds.Token))
	return client
}

// CreateIssue opens an issue on owner/repo. The assignee is sent as a login.
func (b *Backend) CreateIssue(ctx context.Context, creds models.Credentials, owner, repo string, issue models.NewIssue) (models.CreatedIssue, error) {
	request := &github.IssueRequest{
		Title: github.String(issue.Title),
	}
	if issue.Body != "" {
		request.Body = github.String(issue.Body)
	}
	if len(issue.Labels) > 0 {
		labels := append([]string(nil), issue.Labels...)
		request.Labels = &labels
	}
	if issue.Assignee != "" {
		request.Assignees = &[]string{issue.Assignee}
	}

	logging.Debug("creating github issue",
		"repository", project(owner, repo),
		"labels", issue.Labels,
		"assignee", issue.Assignee)

	created, _, err := b.newClient(ctx, creds).Issues.Create(ctx, owner, repo, request)
	if err != nil {
		logging.Error("failed to create github issue", "repository", project(owner, repo), "error", err)
		return models.CreatedIssue{}, models.RequestFailed(backendName, "create issue", err)
	}
	if created.Number == nil {
		return models.CreatedIssue{}, models.MalformedResponse(backendName, "create issue", "response has no issue number")
	}

	number := uint64(created.GetNumber())
	htmlURL := created.GetHTMLURL()
	if htmlURL == "" {
		htmlURL = b.IssueURL(webURL, project(owner, repo), number)
	}

	return models.CreatedIssue{Number: number, URL: htmlURL}, nil
}

// ListIssues returns the issues of owner/repo matching filter. Only open
// issues are fetched, so asking for closed ones prints a warning.
func (b *Backend) ListIssues(ctx context.Context, creds models.Credentials, owner, repo string, filter models.IssueFilter) ([]models.IssueSummary, error) {
	if filter != models.Open {
		logging.Warn("github api only returns open issues", "filter", filter.String())
		fmt.Fprintln(b.warnings, "WARNING: Only open issues are currently returned by the GitHub API")
	}

	client := b.newClient(ctx, creds)
	opts := &github.IssueListByRepoOptions{
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var allIssues []*github.Issue
	for {
		issues, resp, err := client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch github issues", "repository", project(owner, repo), "error", err)
			return nil, models.RequestFailed(backendName, "list issues", err)
		}

		allIssues = append(allIssues, issues...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	result := make([]models.IssueSummary, 0, len(allIssues))
	for _, issue := range allIssues {
		// Pull requests are also returned by the issues endpoint.
		if issue.PullRequestLinks != nil {
			continue
		}
		if issue.GetState() != filter.String() {
			continue
		}

		result = append(result, models.IssueSummary{
			Number:    uint64(issue.GetNumber()),
			State:     issue.GetState(),
			Title:     issue.GetTitle(),
			CreatedAt: issue.GetCreatedAt(),
			URL:       issue.GetHTMLURL(),
		})
	}

	logging.Debug("fetched github issues",
		"repository", project(owner, repo),
		"fetched", len(allIssues),
		"kept", len(result))
	return result, nil
}

// IssueURL formats the web page of an issue. GitHub is always github.com, so
// domain is ignored.
func (b *Backend) IssueURL(_ string, name string, number uint64) string {
	return fmt.Sprintf("%s/%s/issues/%d", webURL, name, number)
}

// ProjectURL formats the web page of a repository, ignoring domain.
func (b *Backend) ProjectURL(_ string, name string) string {
	return fmt.Sprintf("%s/%s", webURL, name)
}

func project(owner, repo string) string {
	return owner + "/" + repo
}
