package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianmag/meridian-backend/internal/domain"
)

// StagingRepository persists staging submissions. SetReviewStatus is the
// compare-and-set that guards the single review transition: it must only
// write the terminal state when the stored status still equals from, and
// must report sql.ErrNoRows otherwise.
type StagingRepository interface {
	Create(ctx context.Context, submission *domain.StagingSubmission) (*domain.StagingSubmission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StagingSubmission, error)
	List(ctx context.Context, filter domain.StagingFilter) ([]domain.StagingSummary, error)
	SetReviewStatus(ctx context.Context, id uuid.UUID, from, to domain.ReviewStatus, reviewedBy uuid.UUID, notes *string, finalArticleID *uuid.UUID) (*domain.StagingSubmission, error)
}

type StagingImageRepository interface {
	CreateMany(ctx context.Context, images []domain.StagingImage) error
	ListBySubmissionIDs(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID][]domain.StagingImage, error)
}
