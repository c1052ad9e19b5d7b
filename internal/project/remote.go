// Package project turns a git remote URL into the identity of a hosted
// project: which provider owns it, and the owner and repository names.
package project

import (
	"bytes"
	"unicode/utf8"
)

// Remote is the (domain, owner, repository) triple extracted from a remote URL.
type Remote struct {
	Domain     string
	Owner      string
	Repository string
}

// shape describes one accepted remote address form.
type shape struct {
	prefix string
	// domainEnd terminates the domain segment; the delimiter is consumed.
	domainEnd byte
}

// shapes are tried in order and the first matching prefix decides the shape.
// "git+ssh://git@" must come before the bare "git+ssh://" form.
var shapes = []shape{
	{prefix: "git@", domainEnd: ':'},
	{prefix: "git+ssh://git@", domainEnd: '/'},
	{prefix: "git+ssh://", domainEnd: '/'},
	{prefix: "https://", domainEnd: '/'},
}

const gitSuffix = ".git"

// ParseRemote extracts the domain, owner and repository from a remote URL of
// one of the forms:
//
//	git@<domain>:<owner>/<repository>[.git]
//	git+ssh://git@<domain>/<owner>/<repository>[.git]
//	https://<domain>/<owner>/<repository>[.git]
func ParseRemote(raw string) (Remote, error) {
	input := []byte(raw)
	for _, s := range shapes {
		if !bytes.HasPrefix(input, []byte(s.prefix)) {
			continue
		}
		return s.parse(raw, input[len(s.prefix):])
	}
	return Remote{}, &ParseError{Kind: ErrUnrecognizedFormat, Input: raw}
}

func (s shape) parse(raw string, rest []byte) (Remote, error) {
	unrecognized := &ParseError{Kind: ErrUnrecognizedFormat, Input: raw}

	i := bytes.IndexByte(rest, s.domainEnd)
	if i < 0 {
		return Remote{}, unrecognized
	}
	domain, rest := rest[:i], rest[i+1:]

	i = bytes.IndexByte(rest, '/')
	if i < 0 {
		return Remote{}, unrecognized
	}
	owner, repo := rest[:i], rest[i+1:]

	// Only a trailing ".git" is stripped; "widgets.gitx" stays as is.
	repo = bytes.TrimSuffix(repo, []byte(gitSuffix))
	if bytes.IndexByte(repo, '/') >= 0 {
		return Remote{}, unrecognized
	}

	fields := []struct {
		name  string
		value []byte
	}{
		{"domain", domain},
		{"owner", owner},
		{"repository", repo},
	}
	for _, f := range fields {
		if !utf8.Valid(f.value) {
			return Remote{}, &ParseError{Kind: ErrInvalidUTF8, Input: raw, Field: f.name}
		}
		if len(f.value) == 0 {
			return Remote{}, &ParseError{Kind: ErrEmptyField, Input: raw, Field: f.name}
		}
	}

	return Remote{
		Domain:     string(domain),
		Owner:      string(owner),
		Repository: string(repo),
	}, nil
}
