package services

import (
	"context"
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user ID and role claim.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
