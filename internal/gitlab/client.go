// Package gitlab creates and lists issues on a GitLab instance.
package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/time/rate"

	"github.com/danielolaszy/gli/internal/logging"
	"github.com/danielolaszy/gli/pkg/models"
)

const (
	backendName = "gitlab"
	perPage     = 100
)

// GitLab issue states as returned by the API.
const (
	stateOpened   = "opened"
	stateReopened = "reopened"
	stateClosed   = "closed"
)

// apiIssue holds the issue fields gli reads; other fields may be absent.
type apiIssue struct {
	IID       int        `json:"iid"`
	State     string     `json:"state"`
	Title     string     `json:"title"`
	CreatedAt *time.Time `json:"created_at"`
	WebURL    string     `json:"web_url"`
}

// Backend talks to the GitLab instance on host.
type Backend struct {
	host       string
	apiURL     string
	httpClient *http.Client
}

// Option configures a Backend.
type Option func(*Backend)

// WithAPIURL overrides https://<host>/api/v4, e.g. for a test server.
func WithAPIURL(apiURL string) Option {
	return func(b *Backend) {
		b.apiURL = apiURL
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.httpClient = c
	}
}

// NewBackend returns a backend for the GitLab instance on host.
func NewBackend(host string, opts ...Option) *Backend {
	b := &Backend{
		host:   host,
		apiURL: fmt.Sprintf("https://%s/api/v4", host),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// newClient builds an API client authenticating with the PRIVATE-TOKEN header.
// Requests are neither retried nor throttled, a failure surfaces at once.
func (b *Backend) newClient(creds models.Credentials) (*gitlab.Client, error) {
	options := []gitlab.ClientOptionFunc{
		gitlab.WithBaseURL(b.apiURL),
		gitlab.WithoutRetries(),
		gitlab.WithCustomLimiter(rate.NewLimiter(rate.Inf, 0)),
	}
	if b.httpClient != nil {
		options = append(options, gitlab.WithHTTPClient(b.httpClient))
	}

	logging.Debug("gitlab client configured",
		"api_url", b.apiURL,
		"token", logging.MaskSensitive(creds.Token))

	client, err := gitlab.NewClient(creds.Token, options...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return client, nil
}

// CreateIssue opens an issue on the project owner/repo. A non-empty assignee
// is first resolved to a user id.
func (b *Backend) CreateIssue(ctx context.Context, creds models.Credentials, owner, repo string, issue models.NewIssue) (models.CreatedIssue, error) {
	client, err := b.newClient(creds)
	if err != nil {
		return models.CreatedIssue{}, models.RequestFailed(backendName, "create issue", err)
	}

	opts := &gitlab.CreateIssueOptions{
		Title: gitlab.Ptr(issue.Title),
	}
	if issue.Body != "" {
		opts.Description = gitlab.Ptr(issue.Body)
	}
	if len(issue.Labels) > 0 {
		labels := gitlab.LabelOptions(append([]string(nil), issue.Labels...))
		opts.Labels = &labels
	}
	if issue.Assignee != "" {
		user, err := b.findUser(ctx, client, issue.Assignee)
		if err != nil {
			return models.CreatedIssue{}, err
		}
		opts.AssigneeIDs = single(user.ID)
	}

	name := project(owner, repo)
	logging.Debug("creating gitlab issue",
		"project", name,
		"labels", issue.Labels,
		"assignee", issue.Assignee)

	req, err := client.NewRequest(http.MethodPost, issuesPath(name), opts, []gitlab.RequestOptionFunc{gitlab.WithContext(ctx)})
	if err != nil {
		return models.CreatedIssue{}, models.RequestFailed(backendName, "create issue", err)
	}

	var created apiIssue
	if _, err := client.Do(req, &created); err != nil {
		logging.Error("failed to create gitlab issue", "project", name, "error", err)
		return models.CreatedIssue{}, models.RequestFailed(backendName, "create issue", err)
	}
	if created.IID <= 0 {
		return models.CreatedIssue{}, models.MalformedResponse(backendName, "create issue", "response has no iid")
	}

	number := uint64(created.IID)
	webURL := created.WebURL
	if webURL == "" {
		webURL = b.IssueURL(b.host, name, number)
	}

	return models.CreatedIssue{Number: number, URL: webURL}, nil
}

// findUser looks a user up by exact username.
func (b *Backend) findUser(ctx context.Context, client *gitlab.Client, username string) (*gitlab.User, error) {
	users, _, err := client.Users.ListUsers(&gitlab.ListUsersOptions{
		Username: gitlab.Ptr(username),
	}, gitlab.WithContext(ctx))
	if err != nil {
		logging.Error("failed to look up gitlab user", "username", username, "error", err)
		return nil, models.AssigneeLookupFailed(backendName, username, err)
	}

	for _, u := range users {
		if u != nil && u.Username == username {
			logging.Debug("resolved gitlab assignee", "username", username, "user_id", u.ID)
			return u, nil
		}
	}
	return nil, models.AssigneeLookupFailed(backendName, username, nil)
}

// ListIssues returns every issue of owner/repo matching filter. Reopened
// issues count as open.
func (b *Backend) ListIssues(ctx context.Context, creds models.Credentials, owner, repo string, filter models.IssueFilter) ([]models.IssueSummary, error) {
	client, err := b.newClient(creds)
	if err != nil {
		return nil, models.RequestFailed(backendName, "list issues", err)
	}

	name := project(owner, repo)
	opts := &gitlab.ListProjectIssuesOptions{
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	var allIssues []apiIssue
	for {
		req, err := client.NewRequest(http.MethodGet, issuesPath(name), opts, []gitlab.RequestOptionFunc{gitlab.WithContext(ctx)})
		if err != nil {
			return nil, models.RequestFailed(backendName, "list issues", err)
		}

		var issues []apiIssue
		resp, err := client.Do(req, &issues)
		if err != nil {
			logging.Error("failed to fetch gitlab issues", "project", name, "error", err)
			return nil, models.RequestFailed(backendName, "list issues", err)
		}

		allIssues = append(allIssues, issues...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	result := make([]models.IssueSummary, 0, len(allIssues))
	for _, i := range allIssues {
		if i.IID <= 0 {
			return nil, models.MalformedResponse(backendName, "list issues", "issue has no iid")
		}
		if !matches(i.State, filter) {
			continue
		}

		summary := models.IssueSummary{
			Number: uint64(i.IID),
			State:  displayState(i.State),
			Title:  i.Title,
			URL:    b.IssueURL(b.host, name, uint64(i.IID)),
		}
		if i.CreatedAt != nil {
			summary.CreatedAt = *i.CreatedAt
		}
		result = append(result, summary)
	}

	logging.Debug("fetched gitlab issues",
		"project", name,
		"fetched", len(allIssues),
		"kept", len(result))
	return result, nil
}

func matches(state string, filter models.IssueFilter) bool {
	switch filter {
	case models.Open:
		return state == stateOpened || state == stateReopened
	case models.Closed:
		return state == stateClosed
	default:
		return false
	}
}

// displayState maps API states onto the names shown to users.
func displayState(state string) string {
	if state == stateOpened {
		return "open"
	}
	return state
}

// IssueURL formats https://<domain>/<name>/issues/<number>.
func (b *Backend) IssueURL(domain, name string, number uint64) string {
	return fmt.Sprintf("https://%s/%s/issues/%d", domain, name, number)
}

// ProjectURL formats https://<domain>/<name>.
func (b *Backend) ProjectURL(domain, name string) string {
	return fmt.Sprintf("https://%s/%s", domain, name)
}

// single returns a pointer to a one element slice of the id's own type.
func single[T any](id T) *[]T {
	return &[]T{id}
}

// issuesPath is the issues endpoint of project name, relative to the API URL.
func issuesPath(name string) string {
	return "projects/" + url.PathEscape(name) + "/issues"
}

func project(owner, repo string) string {
	return owner + "/" + repo
}
