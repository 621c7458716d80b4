package core

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile is the subset of an identity provider's user info the login
// pipeline consumes.
type Profile struct {
	ProviderID string
	Email      string
	Name       string
	Nickname   string
	AvatarURL  string
}

// IdentityProvider is implemented by every external OAuth login backend
// (Google, GitHub).
type IdentityProvider interface {
	// Name is the provider tag stored on user records, e.g. "google".
	Name() string
	DisplayName() string
	AuthCodeURL(state string) string
	// ExchangeCode trades an authorization code for provider tokens. A
	// response without an access token is an error.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}
