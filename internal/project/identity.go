package project

// Identity addresses a hosted project for every subsequent API call.
type Identity struct {
	Provider   Provider
	Owner      string
	Repository string
}

// Name returns "owner/repository".
func (id Identity) Name() string {
	return id.Owner + "/" + id.Repository
}

// Identify parses a remote URL and resolves its provider.
func Identify(remoteURL, gitlabDomain string) (Identity, error) {
	remote, err := ParseRemote(remoteURL)
	if err != nil {
		return Identity{}, err
	}

	provider, err := Resolve(remote.Domain, gitlabDomain)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Provider:   provider,
		Owner:      remote.Owner,
		Repository: remote.Repository,
	}, nil
}
