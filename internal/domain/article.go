package domain

import (
	"time"

	"github.com/google/uuid"
)

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

func ValidArticleStatus(status ArticleStatus) bool {
	return status == ArticleStatusDraft || status == ArticleStatusPublished
}

// Article is the published (or draft) form of a reviewed submission.
type Article struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Title     string        `db:"title" json:"title"`
	Slug      string        `db:"slug" json:"slug"`
	Body      string        `db:"body" json:"body"`
	Status    ArticleStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`

	Images []ArticleImage `db:"-" json:"images,omitempty"`
}

type ImageRole string

const (
	ImageRoleHero    ImageRole = "hero"
	ImageRoleGallery ImageRole = "gallery"
	ImageRoleSection ImageRole = "section"
	ImageRoleCover   ImageRole = "cover"
)

func ValidImageRole(role ImageRole) bool {
	switch role {
	case ImageRoleHero, ImageRoleGallery, ImageRoleSection, ImageRoleCover:
		return true
	}
	return false
}

type ArticleImage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ArticleID uuid.UUID `db:"article_id" json:"article_id"`
	Filename  string    `db:"filename" json:"filename"`
	ObjectKey string    `db:"object_key" json:"-"`
	URL       string    `db:"url" json:"url"`
	Role      ImageRole `db:"role" json:"role"`
	Ordering  int       `db:"ordering" json:"ordering"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
