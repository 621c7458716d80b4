package core

import (
	"context"

	"github.com/Aiionteam/app.aiion.site/internal/models"
)

// UserDirectory resolves the canonical user for an (email, provider) pair.
// The in-process UserService and the remote directory client both
// implement it.
type UserDirectory interface {
	FindByEmailAndProvider(ctx context.Context, email, provider string) (*models.User, error)
	UpsertOnLogin(ctx context.Context, candidate *models.User) (*models.User, error)
}
