package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

func (s *BookService) Create(ctx context.Context, in ports.BookInput) (*domain.Book, error) {
	now := time.Now().UTC()
	book := &domain.Book{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	applyBookInput(book, in)

	if err := s.repo.Create(ctx, book); err != nil {
		s.logger.Error().Err(err).Str("isbn", in.ISBN).Msg("failed to create book")
		return nil, err
	}

	s.logger.Info().Str("book_id", book.ID).Str("isbn", book.ISBN).Msg("book created")
	return book, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) Update(ctx context.Context, id string, in ports.BookInput) (*domain.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyBookInput(book, in)
	book.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", id).Msg("book updated")
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

func applyBookInput(b *domain.Book, in ports.BookInput) {
	b.Title = in.Title
	b.Description = in.Description
	b.Author = in.Author
	b.ISBN = in.ISBN
	b.Price = in.Price
	b.Status = in.Status
	b.AuthorID = in.AuthorID
}
