package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

var _ core.IdentityProvider = (*GoogleProvider)(nil)

// GoogleEndpoints are the Google OAuth/OIDC endpoints. They are explicit
// so tests can point the provider at a fake server without discovery.
type GoogleEndpoints struct {
	IssuerURL   string
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// GoogleProvider logs users in with Google and reads their profile from the
// OIDC userinfo endpoint.
type GoogleProvider struct {
	oauthBase
	oidc *oidc.Provider
}

// NewGoogleProvider creates a Google provider. No network call is made.
func NewGoogleProvider(
	cfg ProviderConfig,
	endpoints GoogleEndpoints,
	httpClient *http.Client,
) *GoogleProvider {
	providerCfg := &oidc.ProviderConfig{
		IssuerURL:   endpoints.IssuerURL,
		AuthURL:     endpoints.AuthURL,
		TokenURL:    endpoints.TokenURL,
		UserInfoURL: endpoints.UserInfoURL,
		Algorithms:  []string{oidc.RS256},
	}
	op := providerCfg.NewProvider(oidc.ClientContext(context.Background(), httpClient))

	return &GoogleProvider{
		oauthBase: oauthBase{
			httpClient: httpClient,
			config: &oauth2.Config{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURL:  cfg.RedirectURL,
				Scopes:       cfg.Scopes,
				Endpoint:     op.Endpoint(),
			},
		},
		oidc: op,
	}
}

func (p *GoogleProvider) Name() string { return models.ProviderGoogle }

func (p *GoogleProvider) DisplayName() string { return "Google" }

type googleClaims struct {
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// FetchProfile reads sub, email, name and picture from userinfo.
func (p *GoogleProvider) FetchProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*core.Profile, error) {
	info, err := p.oidc.UserInfo(p.withClient(ctx), oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}

	var claims googleClaims
	if err := info.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", ErrUserInfo, err)
	}

	if info.Email == "" {
		return nil, ErrMissingEmail
	}

	name := claims.Name
	if name == "" {
		name = claims.GivenName
	}
	if name == "" {
		name = info.Email
	}

	return &core.Profile{
		ProviderID: info.Subject,
		Email:      info.Email,
		Name:       name,
		Nickname:   name,
		AvatarURL:  claims.Picture,
	}, nil
}
