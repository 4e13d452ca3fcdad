package ports

import (
	"context"

	"github.com/librarium/library-api/internal/core/domain"
)

// PasswordHasher is the credential hasher used at registration, update and login.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(subject, email string) (string, domain.Identity, error)
}

// TokenVerifier recovers the identity from an access token.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// RegisterInput carries the fields of a new account. Password is plaintext and
// must not outlive the call.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
