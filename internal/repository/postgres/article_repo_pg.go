package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
)

type ArticleRepository struct {
	db *sqlx.DB
}

func NewArticleRepo(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	const query = `
		INSERT INTO article (title, slug, body, status)
		VALUES (:title, :slug, :body, :status)
		RETURNING id, title, slug, body, status, created_at, updated_at
	`

	args := map[string]any{
		"title":  article.Title,
		"slug":   article.Slug,
		"body":   article.Body,
		"status": article.Status,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var inserted domain.Article
		if err := rows.StructScan(&inserted); err != nil {
			return nil, err
		}
		return &inserted, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	const query = `
		SELECT id, title, slug, body, status, created_at, updated_at
		FROM article
		WHERE id = $1
	`
	var article domain.Article
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM article WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.ArticleRepository = (*ArticleRepository)(nil)

type ArticleImageRepository struct {
	db *sqlx.DB
}

func NewArticleImageRepo(db *sqlx.DB) *ArticleImageRepository {
	return &ArticleImageRepository{db: db}
}

func (r *ArticleImageRepository) CreateMany(ctx context.Context, images []domain.ArticleImage) error {
	if len(images) == 0 {
		return nil
	}

	const query = `
		INSERT INTO article_image (article_id, filename, object_key, url, role, ordering)
		VALUES (:article_id, :filename, :object_key, :url, :role, :ordering)
	`
	_, err := r.db.NamedExecContext(ctx, query, images)
	return err
}

func (r *ArticleImageRepository) ListByArticleID(ctx context.Context, articleID uuid.UUID) ([]domain.ArticleImage, error) {
	const query = `
		SELECT id, article_id, filename, object_key, url, role, ordering, created_at
		FROM article_image
		WHERE article_id = $1
		ORDER BY ordering, created_at
	`
	images := make([]domain.ArticleImage, 0)
	if err := r.db.SelectContext(ctx, &images, query, articleID); err != nil {
		return nil, err
	}
	return images, nil
}

var _ ports.ArticleImageRepository = (*ArticleImageRepository)(nil)
