package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
)

type StagingRepository struct {
	db *sqlx.DB
}

func NewStagingRepo(db *sqlx.DB) *StagingRepository {
	return &StagingRepository{db: db}
}

const stagingColumns = `id, title, slug, folder_name, body, desired_status, review_status,
	       review_notes, reviewed_by, reviewed_at, final_article_id, created_at, updated_at`

func (r *StagingRepository) Create(ctx context.Context, submission *domain.StagingSubmission) (*domain.StagingSubmission, error) {
	const query = `
		INSERT INTO staging_submission (title, slug, folder_name, body, desired_status, review_status)
		VALUES (:title, :slug, :folder_name, :body, :desired_status, 'pending')
		RETURNING ` + stagingColumns

	args := map[string]any{
		"title":          submission.Title,
		"slug":           submission.Slug,
		"folder_name":    submission.FolderName,
		"body":           submission.Body,
		"desired_status": submission.DesiredStatus,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var inserted domain.StagingSubmission
		if err := rows.StructScan(&inserted); err != nil {
			return nil, err
		}
		return &inserted, nil
	}
	return nil, sql.ErrNoRows
}

func (r *StagingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StagingSubmission, error) {
	const query = `
		SELECT ` + stagingColumns + `
		FROM staging_submission
		WHERE id = $1
	`
	var submission domain.StagingSubmission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *StagingRepository) List(ctx context.Context, filter domain.StagingFilter) ([]domain.StagingSummary, error) {
	where := ""
	args := []any{}
	idx := 1

	if filter.Status != nil {
		where = fmt.Sprintf("WHERE s.review_status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}

	// Recency first; seq is the insertion counter, so rows created in the
	// same instant still come back newest intake first.
	query := fmt.Sprintf(`
		SELECT s.id, s.title, s.slug, s.review_status, s.created_at,
		       COUNT(i.id) AS image_count
		FROM staging_submission s
		LEFT JOIN staging_image i ON i.submission_id = s.id
		%s
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.seq DESC
		LIMIT $%d OFFSET $%d
	`, where, idx, idx+1)

	args = append(args, filter.Limit, filter.Offset)

	summaries := make([]domain.StagingSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, err
	}
	return summaries, nil
}

// SetReviewStatus commits the review decision with a conditional update. The
// WHERE clause is the compare-and-set: when a concurrent reviewer already
// moved the row out of `from`, no row matches and sql.ErrNoRows comes back.
func (r *StagingRepository) SetReviewStatus(ctx context.Context, id uuid.UUID, from, to domain.ReviewStatus, reviewedBy uuid.UUID, notes *string, finalArticleID *uuid.UUID) (*domain.StagingSubmission, error) {
	const query = `
		UPDATE staging_submission
		SET review_status = $3,
		    reviewed_by = $4,
		    reviewed_at = NOW(),
		    review_notes = $5,
		    final_article_id = $6,
		    updated_at = NOW()
		WHERE id = $1 AND review_status = $2
		RETURNING ` + stagingColumns

	var updated domain.StagingSubmission
	if err := r.db.GetContext(ctx, &updated, query, id, from, to, reviewedBy, nullString(notes), nullableUUID(finalArticleID)); err != nil {
		return nil, err
	}
	return &updated, nil
}

func nullString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

var _ ports.StagingRepository = (*StagingRepository)(nil)
