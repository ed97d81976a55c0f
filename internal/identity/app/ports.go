package app

import (
	"context"

	"github.com/storelane/shopcore/internal/identity/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// TokenStore mirrors issued tokens so sessions can be inspected or
// revoked out of band. Optional.
type TokenStore interface {
	Save(ctx context.Context, username, token string) error
}
