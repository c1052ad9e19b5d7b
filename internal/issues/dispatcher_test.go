package issues

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/gli/internal/config"
	"github.com/danielolaszy/gli/internal/github"
	"github.com/danielolaszy/gli/internal/gitlab"
	"github.com/danielolaszy/gli/internal/project"
	"github.com/danielolaszy/gli/pkg/models"
)

type staticRemote struct {
	url string
	err error
}

func (r staticRemote) OriginURL(context.Context) (string, error) {
	return r.url, r.err
}

// recordingBackend captures the arguments it is called with.
type recordingBackend struct {
	name string

	creds  models.Credentials
	owner  string
	repo   string
	issue  models.NewIssue
	filter models.IssueFilter

	createResult models.CreatedIssue
	listResult   []models.IssueSummary
	err          error
}

func (b *recordingBackend) CreateIssue(_ context.Context, creds models.Credentials, owner, repo string, issue models.NewIssue) (models.CreatedIssue, error) {
	b.creds, b.owner, b.repo, b.issue = creds, owner, repo, issue
	return b.createResult, b.err
}

func (b *recordingBackend) ListIssues(_ context.Context, creds models.Credentials, owner, repo string, filter models.IssueFilter) ([]models.IssueSummary, error) {
	b.creds, b.owner, b.repo, b.filter = creds, owner, repo, filter
	return b.listResult, b.err
}

func (b *recordingBackend) IssueURL(domain, name string, number uint64) string {
	return b.name + "|" + domain + "|" + name + "|" + strconv.FormatUint(number, 10)
}

func (b *recordingBackend) ProjectURL(domain, name string) string {
	return b.name + "|" + domain + "|" + name
}

var testConfig = &config.Config{
	GitLabDomain: "gitlab.example.org",
	GitLabToken:  "gl-token",
	GitHubToken:  "gh-token",
}

// fakeBackends hands out one recording backend per provider.
func fakeBackends(gh, gl *recordingBackend) BackendFactory {
	return func(provider project.Provider, cfg *config.Config) (Backend, models.Credentials, error) {
		switch provider.(type) {
		case project.GitHub:
			return gh, models.Credentials{Token: cfg.GitHubToken}, nil
		case project.GitLab:
			return gl, models.Credentials{Token: cfg.GitLabToken}, nil
		default:
			return nil, models.Credentials{}, errors.New("unexpected provider")
		}
	}
}

func TestDispatcherCreateIssue(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		wantGH    bool
		wantToken string
		wantOwner string
		wantRepo  string
	}{
		{
			name:      "GitLab remote",
			remote:    "git@gitlab.example.org:acme/widgets.git",
			wantToken: "gl-token",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "GitHub remote",
			remote:    "https://github.com/CleverCloud/issues-helper.git",
			wantGH:    true,
			wantToken: "gh-token",
			wantOwner: "CleverCloud",
			wantRepo:  "issues-helper",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := &recordingBackend{name: "gh", createResult: models.CreatedIssue{Number: 1, URL: "gh-url"}}
			gl := &recordingBackend{name: "gl", createResult: models.CreatedIssue{Number: 2, URL: "gl-url"}}
			d := NewDispatcher(staticRemote{url: tt.remote}, testConfig, WithBackends(fakeBackends(gh, gl)))

			issue := models.NewIssue{Title: "Broken", Body: "details", Labels: []string{"bug"}, Assignee: "jdoe"}
			created, err := d.CreateIssue(context.Background(), issue)
			require.NoError(t, err)

			called, other := gl, gh
			if tt.wantGH {
				called, other = gh, gl
			}
			assert.Equal(t, called.createResult, created)
			assert.Equal(t, tt.wantToken, called.creds.Token)
			assert.Equal(t, tt.wantOwner, called.owner)
			assert.Equal(t, tt.wantRepo, called.repo)
			assert.Equal(t, issue, called.issue)
			assert.Empty(t, other.owner, "other backend must not be called")
		})
	}
}

func TestDispatcherCreateIssueRequiresTitle(t *testing.T) {
	gh := &recordingBackend{}
	d := NewDispatcher(staticRemote{url: "git@github.com:a/b"}, testConfig, WithBackends(fakeBackends(gh, gh)))

	_, err := d.CreateIssue(context.Background(), models.NewIssue{Title: "  "})
	assert.Error(t, err)
	assert.Empty(t, gh.owner)
}

func TestDispatcherListIssues(t *testing.T) {
	want := []models.IssueSummary{{Number: 4, State: "closed", Title: "Old"}}
	gl := &recordingBackend{listResult: want}
	d := NewDispatcher(staticRemote{url: "https://gitlab.example.org/acme/widgets"}, testConfig, WithBackends(fakeBackends(&recordingBackend{}, gl)))

	got, err := d.ListIssues(context.Background(), models.Closed)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, models.Closed, gl.filter)
	assert.Equal(t, "acme", gl.owner)
}

func TestDispatcherURLs(t *testing.T) {
	gh := &recordingBackend{name: "gh"}
	gl := &recordingBackend{name: "gl"}

	d := NewDispatcher(staticRemote{url: "git+ssh://git@gitlab.example.org/acme/widgets.git"}, testConfig, WithBackends(fakeBackends(gh, gl)))
	url, err := d.ProjectURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gl|gitlab.example.org|acme/widgets", url)

	url, err = d.IssueURL(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "gl|gitlab.example.org|acme/widgets|12", url)

	d = NewDispatcher(staticRemote{url: "git@github.com:acme/widgets"}, testConfig, WithBackends(fakeBackends(gh, gl)))
	url, err = d.ProjectURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gh|github.com|acme/widgets", url)
}

func TestDispatcherErrorsPropagate(t *testing.T) {
	remoteErr := errors.New("no origin")
	backendErr := models.RequestFailed("gitlab", "list issues", errors.New("timeout"))

	tests := []struct {
		name    string
		remote  staticRemote
		backend *recordingBackend
		wantErr error
	}{
		{name: "Remote unavailable", remote: staticRemote{err: remoteErr}, backend: &recordingBackend{}, wantErr: remoteErr},
		{name: "Unparseable remote", remote: staticRemote{url: "not a remote url"}, backend: &recordingBackend{}, wantErr: project.ErrUnrecognizedFormat},
		{name: "Unsupported domain", remote: staticRemote{url: "git@bitbucket.org:a/b"}, backend: &recordingBackend{}, wantErr: project.ErrUnsupportedDomain},
		{name: "Backend failure", remote: staticRemote{url: "git@gitlab.example.org:a/b"}, backend: &recordingBackend{err: backendErr}, wantErr: models.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.remote, testConfig, WithBackends(fakeBackends(tt.backend, tt.backend)))

			_, err := d.ListIssues(context.Background(), models.Open)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			_, err = d.CreateIssue(context.Background(), models.NewIssue{Title: "t"})
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			_, err = d.ProjectURL(context.Background())
			if tt.backend.err == nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDispatcherProjectResolvesOnce(t *testing.T) {
	remote := &countingRemote{url: "git@gitlab.example.org:acme/widgets.git"}
	gl := &recordingBackend{name: "gl"}
	d := NewDispatcher(remote, testConfig, WithBackends(fakeBackends(&recordingBackend{}, gl)))

	id, url, err := d.Project(context.Background())
	require.NoError(t, err)
	assert.Equal(t, project.GitLab{Host: "gitlab.example.org"}, id.Provider)
	assert.Equal(t, "acme/widgets", id.Name())
	assert.Equal(t, "gl|gitlab.example.org|acme/widgets", url)
	assert.Equal(t, 1, remote.calls)
}

type countingRemote struct {
	url   string
	calls int
}

func (r *countingRemote) OriginURL(context.Context) (string, error) {
	r.calls++
	return r.url, nil
}

func TestDefaultBackends(t *testing.T) {
	var warnings bytes.Buffer
	backends := DefaultBackends(&warnings)

	backend, creds, err := backends(project.GitHub{}, testConfig)
	require.NoError(t, err)
	assert.IsType(t, &github.Backend{}, backend)
	assert.Equal(t, "gh-token", creds.Token)

	// The warning is written before any request is made.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = backend.ListIssues(ctx, creds, "acme", "widgets", models.Closed)
	assert.Error(t, err)
	assert.Contains(t, warnings.String(), "Only open issues")

	backend, creds, err = backends(project.GitLab{Host: "gitlab.example.org"}, testConfig)
	require.NoError(t, err)
	assert.IsType(t, &gitlab.Backend{}, backend)
	assert.Equal(t, "gl-token", creds.Token)
	assert.Equal(t, "https://gitlab.example.org/acme/widgets", backend.ProjectURL("gitlab.example.org", "acme/widgets"))

	_, _, err = backends(nil, testConfig)
	assert.Error(t, err)
}
