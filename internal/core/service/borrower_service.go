package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type BorrowerService struct {
	repo   ports.BorrowerRepository
	logger zerolog.Logger
}

func NewBorrowerService(repo ports.BorrowerRepository, logger zerolog.Logger) *BorrowerService {
	return &BorrowerService{repo: repo, logger: logger}
}

func (s *BorrowerService) Create(ctx context.Context, in ports.BorrowerInput) (*domain.Borrower, error) {
	now := time.Now().UTC()
	borrower := &domain.Borrower{
		ID:          uuid.NewString(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		IssueDate:   in.IssueDate.UTC(),
		DueDate:     in.DueDate.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, borrower); err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create borrower")
		return nil, err
	}

	s.logger.Info().Str("borrower_id", borrower.ID).Time("due_date", borrower.DueDate).Msg("borrower created")
	return borrower, nil
}

func (s *BorrowerService) Get(ctx context.Context, id string) (*domain.Borrower, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BorrowerService) List(ctx context.Context) ([]*domain.Borrower, error) {
	return s.repo.List(ctx)
}

func (s *BorrowerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("borrower_id", id).Msg("borrower deleted")
	return nil
}
