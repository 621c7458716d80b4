package auth

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/Aiionteam/app.aiion.site/internal/core"

	"golang.org/x/oauth2"
)

// ProviderConfig contains the OAuth client registration for a provider
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// oauthBase carries what every provider shares: the oauth2 client config
// and the outbound HTTP client used for token and profile calls.
type oauthBase struct {
	config     *oauth2.Config
	httpClient *http.Client
}

func (b *oauthBase) withClient(ctx context.Context) context.Context {
	if b.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
}

// AuthCodeURL returns the provider consent URL carrying state.
func (b *oauthBase) AuthCodeURL(state string) string {
	return b.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode trades the authorization code for provider tokens.
func (b *oauthBase) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := b.config.Exchange(b.withClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	if tok.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	return tok, nil
}

// Registry maps provider names to configured providers.
type Registry map[string]core.IdentityProvider

// Get returns the provider registered under name.
func (r Registry) Get(name string) (core.IdentityProvider, bool) {
	p, ok := r[name]
	return p, ok
}

// Names returns the registered provider names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
