package project

// GitHubDomain is the only GitHub host supported.
const GitHubDomain = "github.com"

// Provider is the issue tracking backend owning a domain. It is a closed set:
// GitHub or GitLab. Code switching on a Provider must handle both.
type Provider interface {
	// Domain returns the host the provider serves.
	Domain() string
	String() string
	provider()
}

// GitHub is github.com.
type GitHub struct{}

// GitLab is a GitLab instance reachable on Host.
type GitLab struct {
	Host string
}

func (GitHub) Domain() string { return GitHubDomain }
func (GitHub) String() string { return "github" }
func (GitHub) provider()      {}

func (g GitLab) Domain() string { return g.Host }
func (g GitLab) String() string { return "gitlab(" + g.Host + ")" }
func (GitLab) provider()        {}

// Resolve decides which provider owns domain. The configured GitLab domain is
// checked first, so it wins even when it is set to github.com.
func Resolve(domain, gitlabDomain string) (Provider, error) {
	if domain == gitlabDomain {
		return GitLab{Host: domain}, nil
	}
	if domain == GitHubDomain {
		return GitHub{}, nil
	}
	return nil, &UnsupportedDomainError{Domain: domain, Expected: gitlabDomain}
}
