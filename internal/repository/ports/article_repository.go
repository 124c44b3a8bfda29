package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianmag/meridian-backend/internal/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ArticleImageRepository interface {
	CreateMany(ctx context.Context, images []domain.ArticleImage) error
	ListByArticleID(ctx context.Context, articleID uuid.UUID) ([]domain.ArticleImage, error)
}
