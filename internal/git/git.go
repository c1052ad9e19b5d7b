// Package git reads repository information from the local git client.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultRemote is the remote a project identity is read from.
const DefaultRemote = "origin"

// Runner executes git with args in dir and returns its combined output.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Client reads remotes of the repository in Dir.
type Client struct {
	Dir string
	run Runner
}

// NewClient returns a client for the repository in dir, running the git binary.
func NewClient(dir string) *Client {
	return &Client{Dir: dir, run: execGit}
}

// NewClientWithRunner returns a client using run instead of the git binary.
func NewClientWithRunner(dir string, run Runner) *Client {
	return &Client{Dir: dir, run: run}
}

func execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// RemoteURL returns the URL of the named remote.
func (c *Client) RemoteURL(ctx context.Context, name string) (string, error) {
	output, err := c.run(ctx, c.Dir, "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("git remote get-url failed: %w (command: git remote get-url %s, output: %s)",
			err, name, strings.TrimSpace(string(output)))
	}

	url := strings.TrimSpace(string(output))
	if url == "" {
		return "", fmt.Errorf("remote %s has no url", name)
	}
	return url, nil
}

// OriginURL returns the URL of the origin remote.
func (c *Client) OriginURL(ctx context.Context) (string, error) {
	return c.RemoteURL(ctx, DefaultRemote)
}
