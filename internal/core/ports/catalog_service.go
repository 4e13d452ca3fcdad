package ports

import (
	"context"
	"time"

	"github.com/librarium/library-api/internal/core/domain"
)

// UpdateUserInput replaces every mutable field of a user; the password is re-hashed.
type UpdateUserInput = RegisterInput

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type BookInput struct {
	Title       string
	Description string
	Author      string
	ISBN        string
	Price       float64
	Status      bool
	AuthorID    string
}

type BookService interface {
	Create(ctx context.Context, in BookInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, id string, in BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

type AuthorInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

type AuthorService interface {
	Create(ctx context.Context, in AuthorInput) (*domain.Author, error)
	Get(ctx context.Context, id string) (*domain.Author, error)
	List(ctx context.Context) ([]*domain.Author, error)
	Update(ctx context.Context, id string, in AuthorInput) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
}

type BorrowerInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	IssueDate   time.Time
	DueDate     time.Time
}

type BorrowerService interface {
	Create(ctx context.Context, in BorrowerInput) (*domain.Borrower, error)
	Get(ctx context.Context, id string) (*domain.Borrower, error)
	List(ctx context.Context) ([]*domain.Borrower, error)
	Delete(ctx context.Context, id string) error
}
