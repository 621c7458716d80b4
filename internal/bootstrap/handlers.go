package bootstrap

import (
	"github.com/Aiionteam/app.aiion.site/internal/handlers"

	"github.com/rs/zerolog"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	oauth *handlers.OAuthHandler
	user  *handlers.UserHandler
	diary *handlers.DiaryHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(s serviceSet, logger zerolog.Logger) handlerSet {
	return handlerSet{
		oauth: handlers.NewOAuthHandler(s.login, s.sessions, s.handshake, logger),
		user:  handlers.NewUserHandler(s.users),
		diary: handlers.NewDiaryHandler(s.diaries),
	}
}
