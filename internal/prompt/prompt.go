// Package prompt asks the first-run questions of `gli init`.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielolaszy/gli/internal/config"
)

// ErrNoAnswer is returned when input ends before a question is answered.
var ErrNoAnswer = errors.New("no answer given")

// Prompter reads answers from a terminal.
type Prompter interface {
	// Ask prints label and returns the trimmed reply. Empty replies are asked
	// again.
	Ask(label string) (string, error)

	// Say prints a line of guidance.
	Say(format string, args ...any)
}

type realPrompt struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompt returns a Prompter reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) Prompter {
	return &realPrompt{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *realPrompt) Say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *realPrompt) Ask(label string) (string, error) {
	for {
		fmt.Fprint(p.out, label)

		input, err := p.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			return input, nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w to %q", ErrNoAnswer, strings.TrimSuffix(strings.TrimSpace(label), ":"))
		}
		if err != nil {
			return "", fmt.Errorf("failed to read user input: %w", err)
		}
	}
}

// AskConfig walks the user through the GitLab domain and both tokens.
func AskConfig(p Prompter) (*config.Config, error) {
	p.Say("Hi! First I need to know the domain name of your gitlab instance (eg gitlab.example.org)")
	domain, err := p.Ask("Gitlab domain name: ")
	if err != nil {
		return nil, err
	}

	p.Say("Thanks, now I need a personal access token to authenticate calls.")
	p.Say("You can generate one here: https://%s/profile/personal_access_tokens", domain)
	gitlabToken, err := p.Ask("Gitlab personal access token: ")
	if err != nil {
		return nil, err
	}

	p.Say("Wonderful! Now I'll need a *github* personal access token.")
	p.Say("You can generate one here: https://github.com/settings/tokens/new")
	p.Say("You only need to check the `Repo` scope")
	githubToken, err := p.Ask("Github personal access token: ")
	if err != nil {
		return nil, err
	}

	return &config.Config{
		GitLabDomain: domain,
		GitLabToken:  gitlabToken,
		GitHubToken:  githubToken,
	}, nil
}
