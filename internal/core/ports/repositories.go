package ports

import (
	"context"

	"github.com/librarium/library-api/internal/core/domain"
)

// UserRepository persists credential records. Lookups of absent users return
// domain.ErrUserNotFound; a duplicate email or username returns
// domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// BookRepository persists books. Absent records return domain.ErrNotFound.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
}

// AuthorRepository persists authors. Absent records return domain.ErrNotFound.
type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) error
	FindByID(ctx context.Context, id string) (*domain.Author, error)
	List(ctx context.Context) ([]*domain.Author, error)
	Update(ctx context.Context, author *domain.Author) error
	Delete(ctx context.Context, id string) error
}

// BorrowerRepository persists borrowers. Absent records return domain.ErrNotFound.
type BorrowerRepository interface {
	Create(ctx context.Context, borrower *domain.Borrower) error
	FindByID(ctx context.Context, id string) (*domain.Borrower, error)
	List(ctx context.Context) ([]*domain.Borrower, error)
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore remembers which record a client-supplied Idempotency-Key
// produced.
//
// Reserve claims key atomically. When reserved is false, id holds the record
// created earlier with key, or is empty while another request still holds the
// claim. The holder finishes with Complete on success or Release on failure.
type IdempotencyStore interface {
	Reserve(ctx context.Context, entity, key string) (id string, reserved bool, err error)
	Complete(ctx context.Context, entity, key, id string) error
	Release(ctx context.Context, entity, key string) error
}
