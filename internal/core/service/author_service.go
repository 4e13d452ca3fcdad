package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type AuthorService struct {
	repo   ports.AuthorRepository
	logger zerolog.Logger
}

func NewAuthorService(repo ports.AuthorRepository, logger zerolog.Logger) *AuthorService {
	return &AuthorService{repo: repo, logger: logger}
}

func (s *AuthorService) Create(ctx context.Context, in ports.AuthorInput) (*domain.Author, error) {
	now := time.Now().UTC()
	author := &domain.Author{
		ID:          uuid.NewString(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, author); err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create author")
		return nil, err
	}

	s.logger.Info().Str("author_id", author.ID).Msg("author created")
	return author, nil
}

func (s *AuthorService) Get(ctx context.Context, id string) (*domain.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	return s.repo.List(ctx)
}

func (s *AuthorService) Update(ctx context.Context, id string, in ports.AuthorInput) (*domain.Author, error) {
	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.FirstName = in.FirstName
	author.LastName = in.LastName
	author.Email = in.Email
	author.PhoneNumber = in.PhoneNumber
	author.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}

	s.logger.Info().Str("author_id", id).Msg("author updated")
	return author, nil
}

func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("author_id", id).Msg("author deleted")
	return nil
}
