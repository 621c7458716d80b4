package handlers

import (
	"errors"
	"net/http"

	"github.com/Aiionteam/app.aiion.site/internal/middleware"
	"github.com/Aiionteam/app.aiion.site/internal/services"
	"github.com/Aiionteam/app.aiion.site/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Session keys holding the pending OAuth state.
const (
	SessionOAuthState    = "oauth_state"
	SessionOAuthProvider = "oauth_provider"
)

// stateLength is the number of hex characters in a generated OAuth state.
const stateLength = 32

// OAuthHandler serves the /api/auth/:provider endpoints.
type OAuthHandler struct {
	login     *services.LoginService
	sessions  *services.SessionService
	handshake *services.HandshakeService
	logger    zerolog.Logger
}

func NewOAuthHandler(
	login *services.LoginService,
	sessions *services.SessionService,
	handshake *services.HandshakeService,
	logger zerolog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		login:     login,
		sessions:  sessions,
		handshake: handshake,
		logger:    logger.With().Str("component", "oauth_handler").Logger(),
	}
}

type codeRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func jsonError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": msg})
}

// RequireProvider rejects JSON requests for a provider that is not
// configured.
func (h *OAuthHandler) RequireProvider(c *gin.Context) {
	if _, err := h.login.Provider(c.Param("provider")); err != nil {
		jsonError(c, http.StatusNotFound, err.Error())
		return
	}
	c.Next()
}

// startLogin creates a new state, keeps it in the cookie session and
// returns the provider's authorization URL.
func (h *OAuthHandler) startLogin(c *gin.Context) (authURL, state string, ok bool) {
	provider := c.Param("provider")
	idp, err := h.login.Provider(provider)
	if err != nil {
		jsonError(c, http.StatusNotFound, err.Error())
		return "", "", false
	}

	state, err = util.CryptoRandomString(stateLength)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate oauth state")
		jsonError(c, http.StatusInternalServerError, "failed to start login")
		return "", "", false
	}
	session := sessions.Default(c)
	session.Set(SessionOAuthState, state)
	session.Set(SessionOAuthProvider, provider)
	if err := session.Save(); err != nil {
		h.logger.Error().Err(err).Msg("failed to save oauth session")
		jsonError(c, http.StatusInternalServerError, "failed to save session")
		return "", "", false
	}
	return idp.AuthCodeURL(state), state, true
}

// AuthURL godoc
//
//	@Summary		Get authorization URL
//	@Description	Returns the provider's authorization URL and the state bound to it
//	@Tags			Auth
//	@Produce		json
//	@Param			provider	path		string													true	"Provider name (google, github)"
//	@Success		200			{object}	object{success=bool,auth_url=string,state=string}	"Authorization URL"
//	@Failure		404			{object}	object{success=bool,message=string}					"Provider not configured"
//	@Router			/api/auth/{provider}/auth-url [get]
func (h *OAuthHandler) AuthURL(c *gin.Context) {
	authURL, state, ok := h.startLogin(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"auth_url": authURL,
		"state":    state,
	})
}

// Login godoc
//
//	@Summary	Start login
//	@Tags		Auth
//	@Param		provider	path	string	true	"Provider name (google, github)"
//	@Success	307			"Redirect to the provider"
//	@Router		/api/auth/{provider}/login [get]
func (h *OAuthHandler) Login(c *gin.Context) {
	authURL, _, ok := h.startLogin(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback completes a login and always redirects to the frontend.
//
//	@Summary	OAuth callback
//	@Tags		Auth
//	@Param		provider			path	string	true	"Provider name (google, github)"
//	@Param		code				query	string	false	"Authorization code"
//	@Param		state				query	string	false	"State issued with the authorization URL"
//	@Param		error				query	string	false	"Provider error"
//	@Param		error_description	query	string	false	"Provider error description"
//	@Success	302					"Redirect to the frontend"
//	@Router		/api/auth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")
	params := services.CallbackParams{
		Code:             c.Query("code"),
		State:            c.Query("state"),
		Error:            c.Query("error"),
		ErrorDescription: c.Query("error_description"),
	}

	// A state is only enforced when this browser started the login here.
	session := sessions.Default(c)
	saved, _ := session.Get(SessionOAuthState).(string)
	if saved != "" {
		session.Delete(SessionOAuthState)
		session.Delete(SessionOAuthProvider)
		if err := session.Save(); err != nil {
			h.logger.Warn().Err(err).Msg("failed to clear oauth session")
		}
		if (params.Code != "" || params.Error == "") && saved != params.State {
			h.logger.Warn().
				Str("provider", provider).
				Str("ip", util.ClientIP(c)).
				Msg("oauth state mismatch")
			c.Redirect(http.StatusFound, h.login.ErrorRedirectURL(provider, "invalid state", ""))
			return
		}
	}

	out := h.login.HandleCallback(c.Request.Context(), provider, params)
	c.Redirect(http.StatusFound, out.RedirectURL)
}

// RegisterAuthorizationCode stores a code -> state handshake.
//
//	@Summary	Register authorization code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		provider	path		string								true	"Provider name"
//	@Param		request		body		object{code=string,state=string}	true	"Code and state"
//	@Success	200			{object}	object{success=bool,message=string}
//	@Failure	400			{object}	object{success=bool,message=string}
//	@Router		/api/auth/{provider}/authorization-code [post]
func (h *OAuthHandler) RegisterAuthorizationCode(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "authorization code is required")
		return
	}

	if err := h.handshake.Register(c.Request.Context(), c.Param("provider"), req.Code, req.State); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("failed to register authorization code")
		jsonError(c, http.StatusInternalServerError, "failed to register authorization code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "authorization code registered"})
}

// Token godoc
//
//	@Summary		Exchange authorization code
//	@Description	Redeems a registered code and runs the login pipeline, answering with JSON instead of a redirect
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			provider	path		string																								true	"Provider name"
//	@Param			request		body		object{code=string,state=string}																	true	"Code and state"
//	@Success		200			{object}	object{success=bool,access_token=string,refresh_token=string,token_type=string,expires_in=int}	"Login succeeded"
//	@Failure		400			{object}	object{success=bool,message=string}																	"Invalid or expired code"
//	@Failure		401			{object}	object{success=bool,message=string}																	"Provider rejected the code"
//	@Failure		409			{object}	object{success=bool,message=string}																	"User conflict"
//	@Router			/api/auth/{provider}/token [post]
func (h *OAuthHandler) Token(c *gin.Context) {
	provider := c.Param("provider")
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "authorization code is required")
		return
	}

	ctx := c.Request.Context()
	if err := h.handshake.Redeem(ctx, provider, req.Code, req.State); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFoundOrExpired):
			jsonError(c, http.StatusBadRequest, "invalid or expired authorization code")
		case errors.Is(err, services.ErrInvalidInput):
			jsonError(c, http.StatusBadRequest, "state mismatch")
		default:
			h.logger.Error().Err(err).Msg("authorization code lookup failed")
			jsonError(c, http.StatusInternalServerError, "failed to verify authorization code")
		}
		return
	}

	out := &services.LoginOutcome{Provider: provider, State: services.StateAwaitingCode}
	if err := h.login.Complete(ctx, provider, req.Code, out); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrUpstreamAuth):
			status = http.StatusUnauthorized
		case errors.Is(err, services.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, services.ErrInvalidInput):
			status = http.StatusBadRequest
		}
		jsonError(c, status, "authentication failed: "+err.Error())
		return
	}

	creds := out.Credentials
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "login succeeded",
		"access_token":  creds.AccessToken,
		"refresh_token": creds.RefreshToken,
		"token_type":    creds.TokenType,
		"expires_in":    creds.ExpiresIn,
		"user":          out.User,
	})
}

// Refresh godoc
//
//	@Summary	Refresh access token
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		provider	path		string																				true	"Provider name"
//	@Param		request		body		object{refresh_token=string}														true	"Refresh token"
//	@Success	200			{object}	object{success=bool,access_token=string,refresh_token=string,expires_in=int}
//	@Failure	401			{object}	object{success=bool,message=string}
//	@Router		/api/auth/{provider}/refresh [post]
func (h *OAuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	creds, err := h.sessions.Refresh(c.Request.Context(), c.Param("provider"), req.RefreshToken)
	if err != nil {
		if services.IsInvalidCredentials(err) {
			jsonError(c, http.StatusUnauthorized, "invalid or expired refresh token")
			return
		}
		h.logger.Error().Err(err).Msg("token refresh failed")
		jsonError(c, http.StatusInternalServerError, "token refresh failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  creds.AccessToken,
		"refresh_token": creds.RefreshToken,
		"token_type":    creds.TokenType,
		"expires_in":    creds.ExpiresIn,
	})
}

// Logout revokes the caller's stored tokens. Requires RequireAccessToken.
//
//	@Summary	Logout
//	@Tags		Auth
//	@Produce	json
//	@Security	BearerAuth
//	@Param		provider	path		string	true	"Provider name"
//	@Success	200			{object}	object{success=bool,message=string}
//	@Failure	401			{object}	object{success=bool,message=string}
//	@Router		/api/auth/{provider}/logout [post]
func (h *OAuthHandler) Logout(c *gin.Context) {
	err := h.sessions.Revoke(c.Request.Context(), c.Param("provider"), middleware.GetAccessToken(c))
	if err != nil {
		if services.IsInvalidCredentials(err) {
			jsonError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		h.logger.Error().Err(err).Msg("logout failed")
		jsonError(c, http.StatusInternalServerError, "logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

// User returns the claims of the caller's access token. Requires
// RequireAccessToken.
//
//	@Summary	Current user
//	@Tags		Auth
//	@Produce	json
//	@Security	BearerAuth
//	@Param		provider	path		string	true	"Provider name"
//	@Success	200			{object}	object{success=bool,user=object}
//	@Failure	401			{object}	object{success=bool,message=string}
//	@Router		/api/auth/{provider}/user [get]
func (h *OAuthHandler) User(c *gin.Context) {
	claims := middleware.GetTokenClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":          claims.Subject,
			"provider":    claims.Provider,
			"app_user_id": claims.Claims["app_user_id"],
			"email":       claims.Claims["email"],
			"nickname":    claims.Claims["nickname"],
			"name":        claims.Claims["name"],
		},
	})
}
