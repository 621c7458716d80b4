package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var _ core.IdentityProvider = (*GitHubProvider)(nil)

// GitHubProvider handles GitHub OAuth login
type GitHubProvider struct {
	oauthBase
	apiURL string
}

// NewGitHubProvider creates a new GitHub OAuth provider. apiURL is the REST
// API base, https://api.github.com unless overridden.
func NewGitHubProvider(cfg ProviderConfig, apiURL string, httpClient *http.Client) *GitHubProvider {
	return &GitHubProvider{
		apiURL: apiURL,
		oauthBase: oauthBase{
			httpClient: httpClient,
			config: &oauth2.Config{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURL:  cfg.RedirectURL,
				Scopes:       cfg.Scopes,
				Endpoint:     github.Endpoint,
			},
		},
	}
}

// WithEndpoint overrides the OAuth endpoint (GitHub Enterprise, tests).
func (p *GitHubProvider) WithEndpoint(ep oauth2.Endpoint) *GitHubProvider {
	p.config.Endpoint = ep
	return p
}

func (p *GitHubProvider) Name() string { return models.ProviderGitHub }

func (p *GitHubProvider) DisplayName() string { return "GitHub" }

// GitHub user info structures
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchProfile reads /user, falling back to /user/emails when the
// account keeps its email private.
func (p *GitHubProvider) FetchProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*core.Profile, error) {
	client := p.config.Client(p.withClient(ctx), token)

	var user githubUser
	if err := p.getJSON(ctx, client, "/user", &user); err != nil {
		return nil, err
	}

	if user.Email == "" {
		email, err := p.primaryEmail(ctx, client)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if user.Email == "" {
		return nil, ErrMissingEmail
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &core.Profile{
		ProviderID: strconv.FormatInt(user.ID, 10),
		Email:      user.Email,
		Name:       name,
		Nickname:   user.Login,
		AvatarURL:  user.AvatarURL,
	}, nil
}

func (p *GitHubProvider) primaryEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []githubEmail
	if err := p.getJSON(ctx, client, "/user/emails", &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", ErrMissingEmail
}

func (p *GitHubProvider) getJSON(ctx context.Context, client *http.Client, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: GitHub API %s: %s", ErrUserInfo, resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUserInfo, path, err)
	}
	return nil
}
