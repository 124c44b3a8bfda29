package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the one-way lifecycle state of a staging submission.
// It starts at pending and moves at most once to approved or rejected.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusApproved || s == ReviewStatusRejected
}

func ValidReviewStatus(status ReviewStatus) bool {
	switch status {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// StagingSubmission is an uploaded-but-unpublished content bundle awaiting
// human review. FinalArticleID is set only after a successful approve+publish.
type StagingSubmission struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	Title          string        `db:"title" json:"title"`
	Slug           string        `db:"slug" json:"slug"`
	FolderName     string        `db:"folder_name" json:"folder_name"`
	Body           string        `db:"body" json:"body"`
	DesiredStatus  ArticleStatus `db:"desired_status" json:"desired_status"`
	ReviewStatus   ReviewStatus  `db:"review_status" json:"review_status"`
	ReviewNotes    *string       `db:"review_notes" json:"review_notes,omitempty"`
	ReviewedBy     *uuid.UUID    `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time    `db:"reviewed_at" json:"reviewed_at,omitempty"`
	FinalArticleID *uuid.UUID    `db:"final_article_id" json:"final_article_id,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`

	Images []StagingImage `db:"-" json:"images,omitempty"`
}

type StagingImage struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SubmissionID uuid.UUID `db:"submission_id" json:"submission_id"`
	Filename     string    `db:"filename" json:"filename"`
	ObjectKey    string    `db:"object_key" json:"-"`
	URL          string    `db:"url" json:"url"`
	Role         ImageRole `db:"role" json:"role"`
	Ordering     int       `db:"ordering" json:"ordering"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// StagingSummary is the listing projection returned by the review queue.
type StagingSummary struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Title        string       `db:"title" json:"title"`
	Slug         string       `db:"slug" json:"slug"`
	ReviewStatus ReviewStatus `db:"review_status" json:"review_status"`
	ImageCount   int          `db:"image_count" json:"image_count"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// StagingFilter narrows the review queue listing. A nil Status means all.
type StagingFilter struct {
	Status *ReviewStatus
	Limit  int
	Offset int
}
