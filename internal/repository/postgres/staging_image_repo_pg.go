package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
)

type StagingImageRepository struct {
	db *sqlx.DB
}

func NewStagingImageRepo(db *sqlx.DB) *StagingImageRepository {
	return &StagingImageRepository{db: db}
}

func (r *StagingImageRepository) CreateMany(ctx context.Context, images []domain.StagingImage) error {
	if len(images) == 0 {
		return nil
	}

	const query = `
		INSERT INTO staging_image (submission_id, filename, object_key, url, role, ordering)
		VALUES (:submission_id, :filename, :object_key, :url, :role, :ordering)
	`
	_, err := r.db.NamedExecContext(ctx, query, images)
	return err
}

func (r *StagingImageRepository) ListBySubmissionIDs(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID][]domain.StagingImage, error) {
	result := make(map[uuid.UUID][]domain.StagingImage)
	if len(submissionIDs) == 0 {
		return result, nil
	}

	const query = `
		SELECT id, submission_id, filename, object_key, url, role, ordering, created_at
		FROM staging_image
		WHERE submission_id = ANY($1)
		ORDER BY submission_id, ordering, created_at
	`

	ids := make([]string, 0, len(submissionIDs))
	for _, id := range submissionIDs {
		ids = append(ids, id.String())
	}

	var rows []domain.StagingImage
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.SubmissionID] = append(result[row.SubmissionID], row)
	}
	return result, nil
}

var _ ports.StagingImageRepository = (*StagingImageRepository)(nil)
