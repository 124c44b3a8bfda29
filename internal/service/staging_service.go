package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/media"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
)

var (
	ErrSubmissionNotFound = errors.New("staging submission not found")
	// ErrInvalidReviewTransition is returned when approve or reject hits a
	// submission that is no longer pending. Re-approving is never silently
	// accepted: publishing is not safely repeatable.
	ErrInvalidReviewTransition = errors.New("submission is not pending review")
	ErrStagingValidation       = errors.New("staging validation failed")
	ErrDuplicateSlug           = errors.New("slug already staged")
	// ErrPublishFailed wraps failures of the publish side effect during
	// approve. The submission stays pending and can be re-attempted.
	ErrPublishFailed = errors.New("publish failed")
)

const (
	defaultMaxStagingImages = 20
	defaultMaxImageBytes    = int64(10 * 1024 * 1024)
	defaultListLimit        = 50
	maxListLimit            = 200
)

var defaultAllowedMIMEs = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

type StagingServiceConfig struct {
	Bucket            string
	MaxImages         int
	MaxImageBytes     int64
	AllowedMIMETypes  []string
	ImageProcessor    media.Processor
	ImageMaxDimension int
}

type StagingImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
	Role        domain.ImageRole
	Ordering    int
}

type IntakeInput struct {
	Title         string
	Slug          string
	FolderName    string
	Body          string
	DesiredStatus domain.ArticleStatus
	Images        []StagingImageUpload
}

// SubmissionDetail is the full review view: the submission, its staged
// images, and (after approval) the images carried over to the published
// article.
type SubmissionDetail struct {
	Submission    domain.StagingSubmission
	ArticleImages []domain.ArticleImage
}

// StagingService governs the one-way review lifecycle of staged content:
// pending at intake, then at most one transition to approved or rejected.
// The terminal write is a compare-and-set at the repository, so concurrent
// reviewers cannot both win.
type StagingService struct {
	submissions   ports.StagingRepository
	images        ports.StagingImageRepository
	articles      ports.ArticleRepository
	articleImages ports.ArticleImageRepository
	storage       ports.ObjectStorage

	bucket            string
	maxImages         int
	maxImageBytes     int64
	allowedMIMEs      map[string]struct{}
	now               func() time.Time
	imageProcessor    media.Processor
	imageMaxDimension int
}

func NewStagingService(
	submissions ports.StagingRepository,
	images ports.StagingImageRepository,
	articles ports.ArticleRepository,
	articleImages ports.ArticleImageRepository,
	storage ports.ObjectStorage,
	cfg StagingServiceConfig,
) *StagingService {
	maxImages := cfg.MaxImages
	if maxImages <= 0 {
		maxImages = defaultMaxStagingImages
	}
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}
	allowedMIMEs := cfg.AllowedMIMETypes
	if len(allowedMIMEs) == 0 {
		allowedMIMEs = defaultAllowedMIMEs
	}
	mimeSet := make(map[string]struct{}, len(allowedMIMEs))
	for _, mt := range allowedMIMEs {
		mimeSet[strings.ToLower(strings.TrimSpace(mt))] = struct{}{}
	}

	maxDimension := cfg.ImageMaxDimension
	if maxDimension <= 0 {
		maxDimension = media.DefaultMaxDimension
	}

	return &StagingService{
		submissions:       submissions,
		images:            images,
		articles:          articles,
		articleImages:     articleImages,
		storage:           storage,
		bucket:            strings.TrimSpace(cfg.Bucket),
		maxImages:         maxImages,
		maxImageBytes:     maxBytes,
		allowedMIMEs:      mimeSet,
		now:               time.Now,
		imageProcessor:    cfg.ImageProcessor,
		imageMaxDimension: maxDimension,
	}
}

// SetClock overrides the time source used for object naming. Tests inject a
// fixed clock here.
func (s *StagingService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Intake registers an uploaded content bundle as a pending submission and
// stores its images.
func (s *StagingService) Intake(ctx context.Context, input IntakeInput) (*domain.StagingSubmission, error) {
	title := strings.TrimSpace(input.Title)
	slug := strings.TrimSpace(input.Slug)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrStagingValidation)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug required", ErrStagingValidation)
	}
	desired := input.DesiredStatus
	if desired == "" {
		desired = domain.ArticleStatusDraft
	}
	if !domain.ValidArticleStatus(desired) {
		return nil, fmt.Errorf("%w: desired status must be draft or published", ErrStagingValidation)
	}
	if err := s.validateImages(input.Images); err != nil {
		return nil, err
	}

	folder := strings.TrimSpace(input.FolderName)
	if folder == "" {
		folder = slug
	}

	submission, err := s.submissions.Create(ctx, &domain.StagingSubmission{
		Title:         title,
		Slug:          slug,
		FolderName:    folder,
		Body:          input.Body,
		DesiredStatus: desired,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	if len(input.Images) > 0 {
		records, uploadErr := s.uploadImages(ctx, submission.ID, folder, input.Images)
		if uploadErr != nil {
			return nil, uploadErr
		}
		if err := s.images.CreateMany(ctx, records); err != nil {
			return nil, err
		}
		submission.Images = records
	}

	return submission, nil
}

// ListSubmissions returns review-queue summaries, most recent intake first.
func (s *StagingService) ListSubmissions(ctx context.Context, filter domain.StagingFilter) ([]domain.StagingSummary, error) {
	if filter.Status != nil && !domain.ValidReviewStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown review status %q", ErrStagingValidation, *filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.submissions.List(ctx, filter)
}

// GetSubmission loads the full detail. Reads never mutate state and may be
// retried freely, including to discover the outcome of an interrupted
// approve call.
func (s *StagingService) GetSubmission(ctx context.Context, id uuid.UUID) (*SubmissionDetail, error) {
	submission, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	imageMap, err := s.images.ListBySubmissionIDs(ctx, []uuid.UUID{submission.ID})
	if err != nil {
		return nil, err
	}
	submission.Images = imageMap[submission.ID]

	detail := &SubmissionDetail{Submission: *submission}
	if submission.ReviewStatus == domain.ReviewStatusApproved && submission.FinalArticleID != nil {
		linked, err := s.articleImages.ListByArticleID(ctx, *submission.FinalArticleID)
		if err != nil {
			return nil, err
		}
		detail.ArticleImages = linked
	}
	return detail, nil
}

// Approve publishes the submission's content and commits the pending →
// approved transition. The publish side effect runs first: if it fails, the
// submission is left pending and no partial approved state is observable.
// The terminal write itself is the repository compare-and-set; losing that
// race unwinds the freshly published article.
func (s *StagingService) Approve(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, publishStatus domain.ArticleStatus, reviewNotes string) (*domain.StagingSubmission, *domain.Article, error) {
	if !domain.ValidArticleStatus(publishStatus) {
		return nil, nil, fmt.Errorf("%w: publish status must be draft or published", ErrStagingValidation)
	}

	submission, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrSubmissionNotFound
		}
		return nil, nil, err
	}
	if submission.ReviewStatus != domain.ReviewStatusPending {
		return nil, nil, ErrInvalidReviewTransition
	}

	staged, err := s.images.ListBySubmissionIDs(ctx, []uuid.UUID{submission.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load staged images: %v", ErrPublishFailed, err)
	}

	article, err := s.articles.Create(ctx, &domain.Article{
		Title:  submission.Title,
		Slug:   submission.Slug,
		Body:   submission.Body,
		Status: publishStatus,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create article: %v", ErrPublishFailed, err)
	}

	if images := staged[submission.ID]; len(images) > 0 {
		linked := make([]domain.ArticleImage, 0, len(images))
		for _, img := range images {
			linked = append(linked, domain.ArticleImage{
				ArticleID: article.ID,
				Filename:  img.Filename,
				ObjectKey: img.ObjectKey,
				URL:       img.URL,
				Role:      img.Role,
				Ordering:  img.Ordering,
			})
		}
		if err := s.articleImages.CreateMany(ctx, linked); err != nil {
			s.unwindArticle(ctx, article.ID)
			return nil, nil, fmt.Errorf("%w: link images: %v", ErrPublishFailed, err)
		}
	}

	notes := stringPtr(strings.TrimSpace(reviewNotes))
	updated, err := s.submissions.SetReviewStatus(ctx, submission.ID, domain.ReviewStatusPending, domain.ReviewStatusApproved, reviewerID, notes, &article.ID)
	if err != nil {
		// Either a concurrent reviewer won the compare-and-set or the write
		// itself failed; in both cases the article must not outlive the
		// transition.
		s.unwindArticle(ctx, article.ID)
		if isNotFound(err) {
			return nil, nil, ErrInvalidReviewTransition
		}
		return nil, nil, fmt.Errorf("%w: commit review status: %v", ErrPublishFailed, err)
	}

	updated.Images = staged[submission.ID]
	return updated, article, nil
}

// Reject commits the pending → rejected transition. No publish side effect
// occurs; staged images stay on the staging record only.
func (s *StagingService) Reject(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, reviewNotes string) (*domain.StagingSubmission, error) {
	submission, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.ReviewStatus != domain.ReviewStatusPending {
		return nil, ErrInvalidReviewTransition
	}

	notes := stringPtr(strings.TrimSpace(reviewNotes))
	updated, err := s.submissions.SetReviewStatus(ctx, submission.ID, domain.ReviewStatusPending, domain.ReviewStatusRejected, reviewerID, notes, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidReviewTransition
		}
		return nil, err
	}
	return updated, nil
}

// unwindArticle removes an article published by an approve attempt that did
// not commit. A failed delete leaves an orphan, so it is logged for manual
// reconciliation.
func (s *StagingService) unwindArticle(ctx context.Context, articleID uuid.UUID) {
	if err := s.articles.Delete(ctx, articleID); err != nil {
		log.Printf("staging: unwind article %s: %v", articleID, err)
	}
}

func (s *StagingService) validateImages(images []StagingImageUpload) error {
	if len(images) > s.maxImages {
		return fmt.Errorf("%w: maximum %d images allowed", ErrStagingValidation, s.maxImages)
	}
	for idx, image := range images {
		if image.Size <= 0 {
			return fmt.Errorf("%w: image %d is empty", ErrStagingValidation, idx+1)
		}
		if s.maxImageBytes > 0 && image.Size > s.maxImageBytes {
			return fmt.Errorf("%w: image %d exceeds size limit (%d bytes)", ErrStagingValidation, idx+1, s.maxImageBytes)
		}
		contentType := strings.ToLower(strings.TrimSpace(image.ContentType))
		if _, ok := s.allowedMIMEs[contentType]; !ok {
			return fmt.Errorf("%w: image %d has unsupported content type %s", ErrStagingValidation, idx+1, image.ContentType)
		}
		if image.Role != "" && !domain.ValidImageRole(image.Role) {
			return fmt.Errorf("%w: image %d has unknown role %s", ErrStagingValidation, idx+1, image.Role)
		}
	}
	return nil
}

func (s *StagingService) uploadImages(ctx context.Context, submissionID uuid.UUID, folder string, uploads []StagingImageUpload) ([]domain.StagingImage, error) {
	now := s.now()
	records := make([]domain.StagingImage, 0, len(uploads))

	for idx, upload := range uploads {
		role := upload.Role
		if role == "" {
			role = domain.ImageRoleGallery
		}
		ordering := upload.Ordering
		if ordering <= 0 {
			ordering = idx
		}

		reader, size, contentType, err := s.prepareImage(ctx, upload)
		if err != nil {
			return nil, err
		}

		ext := imageExtension(contentType, upload.FileName)
		objectKey := fmt.Sprintf("staging/%s/%s/%s_%d%s", folder, submissionID.String(), now.UTC().Format("20060102T150405Z0700"), idx, ext)

		url, err := s.storage.Upload(ctx, s.bucket, objectKey, contentType, reader, size)
		if err != nil {
			return nil, err
		}

		records = append(records, domain.StagingImage{
			SubmissionID: submissionID,
			Filename:     upload.FileName,
			ObjectKey:    objectKey,
			URL:          url,
			Role:         role,
			Ordering:     ordering,
		})
	}
	return records, nil
}

func (s *StagingService) prepareImage(ctx context.Context, upload StagingImageUpload) (io.Reader, int64, string, error) {
	contentType := media.NormalizeContentType(upload.ContentType, upload.FileName)
	if s.imageProcessor == nil {
		return upload.Reader, upload.Size, contentType, nil
	}

	result, err := s.imageProcessor.Process(ctx, media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	}, s.imageMaxDimension)
	if err != nil {
		return nil, 0, "", fmt.Errorf("%w: process image %s: %v", ErrStagingValidation, upload.FileName, err)
	}
	return bytes.NewReader(result.Bytes), int64(len(result.Bytes)), result.ContentType, nil
}

func imageExtension(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName))); ext != "" {
		return ext
	}
	return ".bin"
}
