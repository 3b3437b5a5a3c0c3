package extract

import "github.com/fwojciec/pageflat"

// Environment variables consulted when credentials are not passed
// explicitly.
const (
	EnvEmail    = "CONFLUENCE_EMAIL"
	EnvAPIToken = "CONFLUENCE_API_TOKEN"
)

// Credentials authenticate against one Confluence site.
type Credentials struct {
	Email    string
	APIToken string
}

// ResolveCredentials resolves credentials with explicit parameters winning
// over environment values. getenv is injected so resolution is testable
// without touching the process environment; pass os.Getenv in production.
// A missing credential fails with a message naming exactly which one.
func ResolveCredentials(email, apiToken string, getenv func(string) string) (*Credentials, error) {
	if email == "" {
		email = getenv(EnvEmail)
	}
	if apiToken == "" {
		apiToken = getenv(EnvAPIToken)
	}

	if email == "" {
		return nil, pageflat.Errorf(pageflat.EINVALID, "%s not provided in params or environment variables", EnvEmail)
	}
	if apiToken == "" {
		return nil, pageflat.Errorf(pageflat.EINVALID, "%s not provided in params or environment variables", EnvAPIToken)
	}

	return &Credentials{Email: email, APIToken: apiToken}, nil
}
