package service

import (
	"context"

	"github.com/codingstreams/userhub/internal/domain/user"
)

// Keep these interfaces small and consumer-side so tests can fake them
// without reaching for the real postgres/jwt/bcrypt implementations.

type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
}

type TokenIssuer interface {
	Issue(email string) (token string, expiresIn int64, err error)
	Validate(token string) bool
	ExtractEmail(token string) (string, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, hash string) bool
}

// ProfileCache sits in front of profile reads. Implementations must treat
// misses and backend failures identically (return ok=false).
type ProfileCache interface {
	Get(ctx context.Context, id string) (user.Profile, bool)
	Set(ctx context.Context, id string, p user.Profile)
	Delete(ctx context.Context, id string)
}
