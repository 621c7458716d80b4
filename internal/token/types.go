package token

import "github.com/Aiionteam/app.aiion.site/internal/core"

// Token type constants
const (
	TokenTypeBearer = "Bearer"

	UseAccess  = "access"
	UseRefresh = "refresh"
)

// Result is an alias for core.TokenResult.
type Result = core.TokenResult

// ValidationResult is an alias for core.TokenValidationResult.
type ValidationResult = core.TokenValidationResult
