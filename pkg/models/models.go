// Package models defines data structures shared across the application.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Credentials carries the token forwarded to an issue backend. Its content
// is never interpreted outside the backend that receives it.
type Credentials struct {
	// Token is a personal access token for the backend's API
	Token string
}

// IssueFilter selects which issues a list operation returns.
type IssueFilter int

const (
	// Open keeps issues that are open (GitLab's "reopened" counts as open).
	Open IssueFilter = iota
	// Closed keeps issues that are closed.
	Closed
)

// String returns the lowercase state name used by the backends.
func (f IssueFilter) String() string {
	switch f {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("IssueFilter(%d)", int(f))
	}
}

// ParseIssueFilter converts a user supplied state name into an IssueFilter.
func ParseIssueFilter(s string) (IssueFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "opened", "":
		return Open, nil
	case "closed":
		return Closed, nil
	default:
		return Open, fmt.Errorf("unknown state: %s", s)
	}
}

// NewIssue holds the fields of an issue to create.
type NewIssue struct {
	// Title is the issue's title, required
	Title string

	// Body is the description text, empty when absent
	Body string

	// Labels are sent in the given order
	Labels []string

	// Assignee is a username, empty when absent
	Assignee string
}

// CreatedIssue is what a backend returns after creating an issue.
type CreatedIssue struct {
	// Number is the project-scoped issue number (GitHub number, GitLab iid)
	Number uint64

	// URL is the web page of the issue
	URL string
}

// IssueSummary is one line of an issue listing.
type IssueSummary struct {
	Number    uint64
	State     string
	Title     string
	CreatedAt time.Time
	URL       string
}
