package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meridianmag/meridian-backend/internal/domain"
)

type memoryStagingRepo struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*domain.StagingSubmission
	seqs    map[uuid.UUID]int64
	nextSeq int64
	slugs   map[string]bool
	casErr  error
	now     func() time.Time
}

func newMemoryStagingRepo() *memoryStagingRepo {
	return &memoryStagingRepo{
		items: make(map[uuid.UUID]*domain.StagingSubmission),
		seqs:  make(map[uuid.UUID]int64),
		slugs: make(map[string]bool),
		now:   time.Now,
	}
}

func (r *memoryStagingRepo) Create(_ context.Context, submission *domain.StagingSubmission) (*domain.StagingSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugs[submission.Slug] {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	stored := *submission
	stored.ID = uuid.New()
	stored.ReviewStatus = domain.ReviewStatusPending
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextSeq++
	r.items[stored.ID] = &stored
	r.seqs[stored.ID] = r.nextSeq
	r.slugs[stored.Slug] = true
	out := stored
	return &out, nil
}

func (r *memoryStagingRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.StagingSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *item
	return &out, nil
}

func (r *memoryStagingRepo) List(_ context.Context, filter domain.StagingFilter) ([]domain.StagingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StagingSummary
	for _, item := range r.items {
		if filter.Status != nil && item.ReviewStatus != *filter.Status {
			continue
		}
		out = append(out, domain.StagingSummary{
			ID:           item.ID,
			Title:        item.Title,
			Slug:         item.Slug,
			ReviewStatus: item.ReviewStatus,
			ImageCount:   len(item.Images),
			CreatedAt:    item.CreatedAt,
		})
	}
	// Mirror the SQL ordering: created_at DESC, then the insertion counter.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seqs[out[i].ID] > r.seqs[out[j].ID]
	})
	if filter.Offset > 0 && filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else if filter.Offset >= len(out) {
		out = nil
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memoryStagingRepo) SetReviewStatus(_ context.Context, id uuid.UUID, from, to domain.ReviewStatus, reviewedBy uuid.UUID, notes *string, finalArticleID *uuid.UUID) (*domain.StagingSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.casErr != nil {
		return nil, r.casErr
	}
	item, ok := r.items[id]
	if !ok || item.ReviewStatus != from {
		return nil, sql.ErrNoRows
	}
	now := time.Now()
	item.ReviewStatus = to
	item.ReviewedBy = &reviewedBy
	item.ReviewedAt = &now
	item.ReviewNotes = notes
	item.FinalArticleID = finalArticleID
	item.UpdatedAt = now
	out := *item
	return &out, nil
}

type memoryStagingImageRepo struct {
	mu     sync.Mutex
	images map[uuid.UUID][]domain.StagingImage
}

func newMemoryStagingImageRepo() *memoryStagingImageRepo {
	return &memoryStagingImageRepo{images: make(map[uuid.UUID][]domain.StagingImage)}
}

func (r *memoryStagingImageRepo) CreateMany(_ context.Context, images []domain.StagingImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range images {
		img.ID = uuid.New()
		r.images[img.SubmissionID] = append(r.images[img.SubmissionID], img)
	}
	return nil
}

func (r *memoryStagingImageRepo) ListBySubmissionIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.StagingImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID][]domain.StagingImage)
	for _, id := range ids {
		if imgs, ok := r.images[id]; ok {
			out[id] = append([]domain.StagingImage(nil), imgs...)
		}
	}
	return out, nil
}

type memoryArticleRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*domain.Article
	deleted   []uuid.UUID
	createErr error
	deleteErr error
	createCnt int
}

func newMemoryArticleRepo() *memoryArticleRepo {
	return &memoryArticleRepo{items: make(map[uuid.UUID]*domain.Article)}
}

func (r *memoryArticleRepo) Create(_ context.Context, article *domain.Article) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCnt++
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *article
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryArticleRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *item
	return &out, nil
}

func (r *memoryArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type memoryArticleImageRepo struct {
	mu        sync.Mutex
	images    map[uuid.UUID][]domain.ArticleImage
	createErr error
}

func newMemoryArticleImageRepo() *memoryArticleImageRepo {
	return &memoryArticleImageRepo{images: make(map[uuid.UUID][]domain.ArticleImage)}
}

func (r *memoryArticleImageRepo) CreateMany(_ context.Context, images []domain.ArticleImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, img := range images {
		img.ID = uuid.New()
		r.images[img.ArticleID] = append(r.images[img.ArticleID], img)
	}
	return nil
}

func (r *memoryArticleImageRepo) ListByArticleID(_ context.Context, articleID uuid.UUID) ([]domain.ArticleImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ArticleImage(nil), r.images[articleID]...), nil
}

type stubStorage struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (s *stubStorage) Upload(_ context.Context, _, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, objectName)
	return "https://cdn.test/" + objectName, nil
}

type stagingFixture struct {
	svc         *StagingService
	submissions *memoryStagingRepo
	images      *memoryStagingImageRepo
	articles    *memoryArticleRepo
	artImages   *memoryArticleImageRepo
	storage     *stubStorage
}

func newStagingFixture() *stagingFixture {
	f := &stagingFixture{
		submissions: newMemoryStagingRepo(),
		images:      newMemoryStagingImageRepo(),
		articles:    newMemoryArticleRepo(),
		artImages:   newMemoryArticleImageRepo(),
		storage:     &stubStorage{},
	}
	f.svc = NewStagingService(f.submissions, f.images, f.articles, f.artImages, f.storage, StagingServiceConfig{
		Bucket: "meridian-staging",
	})
	f.svc.SetClock(func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	})
	return f
}

func (f *stagingFixture) intake(t *testing.T, slug string, images ...StagingImageUpload) *domain.StagingSubmission {
	t.Helper()
	sub, err := f.svc.Intake(context.Background(), IntakeInput{
		Title:         "Title for " + slug,
		Slug:          slug,
		Body:          "body",
		DesiredStatus: domain.ArticleStatusPublished,
		Images:        images,
	})
	if err != nil {
		t.Fatalf("Intake returned error: %v", err)
	}
	return sub
}

func testUpload(name string) StagingImageUpload {
	data := []byte("jpegdata-" + name)
	return StagingImageUpload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    name,
		ContentType: "image/jpeg",
		Role:        domain.ImageRoleGallery,
	}
}

func TestStagingService_IntakeStoresImagesAndStartsPending(t *testing.T) {
	f := newStagingFixture()

	sub := f.intake(t, "lisbon-in-june", testUpload("hero.jpg"), testUpload("alley.jpg"))

	if sub.ReviewStatus != domain.ReviewStatusPending {
		t.Fatalf("expected pending review status, got %s", sub.ReviewStatus)
	}
	if len(sub.Images) != 2 {
		t.Fatalf("expected 2 staged images, got %d", len(sub.Images))
	}
	for _, img := range sub.Images {
		if img.URL == "" || img.ObjectKey == "" {
			t.Fatalf("expected image url and object key to be set, got %+v", img)
		}
	}
	if len(f.storage.uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(f.storage.uploads))
	}
}

func TestStagingService_IntakeValidation(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	_, err := f.svc.Intake(ctx, IntakeInput{Slug: "no-title"})
	if !errors.Is(err, ErrStagingValidation) {
		t.Fatalf("expected ErrStagingValidation for missing title, got %v", err)
	}

	_, err = f.svc.Intake(ctx, IntakeInput{Title: "No slug"})
	if !errors.Is(err, ErrStagingValidation) {
		t.Fatalf("expected ErrStagingValidation for missing slug, got %v", err)
	}

	gif := StagingImageUpload{
		Reader:      bytes.NewReader([]byte("gifdata")),
		Size:        7,
		FileName:    "anim.gif",
		ContentType: "image/gif",
	}
	_, err = f.svc.Intake(ctx, IntakeInput{Title: "t", Slug: "s", Images: []StagingImageUpload{gif}})
	if !errors.Is(err, ErrStagingValidation) {
		t.Fatalf("expected ErrStagingValidation for unsupported image type, got %v", err)
	}

	_, err = f.svc.Intake(ctx, IntakeInput{Title: "t", Slug: "s", DesiredStatus: "archived"})
	if !errors.Is(err, ErrStagingValidation) {
		t.Fatalf("expected ErrStagingValidation for bad desired status, got %v", err)
	}
}

func TestStagingService_IntakeDuplicateSlug(t *testing.T) {
	f := newStagingFixture()
	f.intake(t, "porto-wine-lodges")

	_, err := f.svc.Intake(context.Background(), IntakeInput{Title: "again", Slug: "porto-wine-lodges"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestStagingService_ApproveHappyPath(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()
	reviewer := uuid.New()

	sub := f.intake(t, "kyoto-lantern-nights", testUpload("lanterns.jpg"))

	updated, article, err := f.svc.Approve(ctx, sub.ID, reviewer, domain.ArticleStatusPublished, "looks great")
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if updated.ReviewStatus != domain.ReviewStatusApproved {
		t.Fatalf("expected approved status, got %s", updated.ReviewStatus)
	}
	if updated.FinalArticleID == nil || *updated.FinalArticleID != article.ID {
		t.Fatalf("expected final article id %s, got %v", article.ID, updated.FinalArticleID)
	}
	if updated.ReviewedBy == nil || *updated.ReviewedBy != reviewer {
		t.Fatalf("expected reviewed_by %s, got %v", reviewer, updated.ReviewedBy)
	}
	if updated.ReviewNotes == nil || *updated.ReviewNotes != "looks great" {
		t.Fatalf("expected review notes to be stored, got %v", updated.ReviewNotes)
	}
	if article.Status != domain.ArticleStatusPublished {
		t.Fatalf("expected published article, got %s", article.Status)
	}
	if article.Slug != sub.Slug || article.Title != sub.Title {
		t.Fatalf("expected article to carry submission content, got %+v", article)
	}

	linked, err := f.artImages.ListByArticleID(ctx, article.ID)
	if err != nil {
		t.Fatalf("ListByArticleID returned error: %v", err)
	}
	if len(linked) != 1 {
		t.Fatalf("expected 1 linked article image, got %d", len(linked))
	}
	if linked[0].ObjectKey != sub.Images[0].ObjectKey {
		t.Fatalf("expected article image to reuse staged object key")
	}
}

func TestStagingService_ApproveTwiceFails(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()
	reviewer := uuid.New()

	sub := f.intake(t, "patagonia-ice-trek")

	if _, _, err := f.svc.Approve(ctx, sub.ID, reviewer, domain.ArticleStatusDraft, ""); err != nil {
		t.Fatalf("first Approve returned error: %v", err)
	}
	_, _, err := f.svc.Approve(ctx, sub.ID, reviewer, domain.ArticleStatusDraft, "")
	if !errors.Is(err, ErrInvalidReviewTransition) {
		t.Fatalf("expected ErrInvalidReviewTransition on second approve, got %v", err)
	}
	if f.articles.createCnt != 1 {
		t.Fatalf("expected exactly one article create attempt, got %d", f.articles.createCnt)
	}
}

func TestStagingService_RejectThenApproveFails(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()
	reviewer := uuid.New()

	sub := f.intake(t, "over-touristed-listicle")

	rejected, err := f.svc.Reject(ctx, sub.ID, reviewer, "thin content")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.ReviewStatus != domain.ReviewStatusRejected {
		t.Fatalf("expected rejected status, got %s", rejected.ReviewStatus)
	}
	if rejected.FinalArticleID != nil {
		t.Fatalf("expected no final article on reject")
	}

	_, _, err = f.svc.Approve(ctx, sub.ID, reviewer, domain.ArticleStatusPublished, "")
	if !errors.Is(err, ErrInvalidReviewTransition) {
		t.Fatalf("expected ErrInvalidReviewTransition after reject, got %v", err)
	}
	if f.articles.createCnt != 0 {
		t.Fatalf("expected no article create after reject, got %d", f.articles.createCnt)
	}

	if _, err := f.svc.Reject(ctx, sub.ID, reviewer, "again"); !errors.Is(err, ErrInvalidReviewTransition) {
		t.Fatalf("expected ErrInvalidReviewTransition on second reject, got %v", err)
	}
}

func TestStagingService_ApprovePublishFailureLeavesPending(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	sub := f.intake(t, "sahara-dune-camps")
	f.articles.createErr = fmt.Errorf("connection refused")

	_, _, err := f.svc.Approve(ctx, sub.ID, uuid.New(), domain.ArticleStatusPublished, "")
	if !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}

	after, findErr := f.submissions.FindByID(ctx, sub.ID)
	if findErr != nil {
		t.Fatalf("FindByID returned error: %v", findErr)
	}
	if after.ReviewStatus != domain.ReviewStatusPending {
		t.Fatalf("expected submission to stay pending after publish failure, got %s", after.ReviewStatus)
	}
	if after.FinalArticleID != nil {
		t.Fatalf("expected no final article id after publish failure")
	}

	// The submission is still reviewable once the upstream recovers.
	f.articles.createErr = nil
	if _, _, err := f.svc.Approve(ctx, sub.ID, uuid.New(), domain.ArticleStatusPublished, ""); err != nil {
		t.Fatalf("retry Approve returned error: %v", err)
	}
}

func TestStagingService_ApproveLostRaceUnwindsArticle(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	sub := f.intake(t, "faroe-islands-ferries")
	// Simulate a concurrent reviewer winning between the pending check and
	// the terminal write.
	f.submissions.casErr = sql.ErrNoRows

	_, _, err := f.svc.Approve(ctx, sub.ID, uuid.New(), domain.ArticleStatusPublished, "")
	if !errors.Is(err, ErrInvalidReviewTransition) {
		t.Fatalf("expected ErrInvalidReviewTransition on lost race, got %v", err)
	}
	if len(f.articles.deleted) != 1 {
		t.Fatalf("expected the published article to be unwound, got %d deletions", len(f.articles.deleted))
	}
	if len(f.articles.items) != 0 {
		t.Fatalf("expected no surviving article after compensation")
	}
}

func TestStagingService_ApproveLogsFailedUnwind(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	sub := f.intake(t, "silk-road-railways")
	f.submissions.casErr = sql.ErrNoRows
	f.articles.deleteErr = fmt.Errorf("connection reset")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	_, _, err := f.svc.Approve(ctx, sub.ID, uuid.New(), domain.ArticleStatusPublished, "")
	if !errors.Is(err, ErrInvalidReviewTransition) {
		t.Fatalf("expected ErrInvalidReviewTransition despite failed unwind, got %v", err)
	}
	if !strings.Contains(buf.String(), "unwind article") {
		t.Fatalf("expected failed unwind to be logged, got %q", buf.String())
	}
	if len(f.articles.items) != 1 {
		t.Fatalf("expected the orphaned article to remain for reconciliation")
	}
}

func TestStagingService_ApproveImageLinkFailureUnwindsArticle(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	sub := f.intake(t, "amalfi-shoulder-season", testUpload("coast.jpg"))
	f.artImages.createErr = fmt.Errorf("insert failed")

	_, _, err := f.svc.Approve(ctx, sub.ID, uuid.New(), domain.ArticleStatusPublished, "")
	if !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
	if len(f.articles.deleted) != 1 {
		t.Fatalf("expected article compensation delete, got %d", len(f.articles.deleted))
	}

	after, findErr := f.submissions.FindByID(ctx, sub.ID)
	if findErr != nil {
		t.Fatalf("FindByID returned error: %v", findErr)
	}
	if after.ReviewStatus != domain.ReviewStatusPending {
		t.Fatalf("expected submission to stay pending, got %s", after.ReviewStatus)
	}
}

func TestStagingService_ApproveUnknownSubmission(t *testing.T) {
	f := newStagingFixture()

	_, _, err := f.svc.Approve(context.Background(), uuid.New(), uuid.New(), domain.ArticleStatusDraft, "")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestStagingService_ListSubmissionsFiltersAndOrders(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()
	reviewer := uuid.New()

	first := f.intake(t, "first")
	second := f.intake(t, "second")
	third := f.intake(t, "third")

	if _, _, err := f.svc.Approve(ctx, second.ID, reviewer, domain.ArticleStatusDraft, ""); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	all, err := f.svc.ListSubmissions(ctx, domain.StagingFilter{})
	if err != nil {
		t.Fatalf("ListSubmissions returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(all))
	}
	if all[0].ID != third.ID || all[2].ID != first.ID {
		t.Fatalf("expected newest-first ordering")
	}

	pending := domain.ReviewStatusPending
	queue, err := f.svc.ListSubmissions(ctx, domain.StagingFilter{Status: &pending})
	if err != nil {
		t.Fatalf("ListSubmissions returned error: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 pending summaries, got %d", len(queue))
	}
	for _, summary := range queue {
		if summary.ReviewStatus != domain.ReviewStatusPending {
			t.Fatalf("expected only pending summaries, got %s", summary.ReviewStatus)
		}
	}

	bogus := domain.ReviewStatus("archived")
	if _, err := f.svc.ListSubmissions(ctx, domain.StagingFilter{Status: &bogus}); !errors.Is(err, ErrStagingValidation) {
		t.Fatalf("expected ErrStagingValidation for unknown status filter, got %v", err)
	}
}

func TestStagingService_ListSubmissionsBreaksTimestampTiesByInsertion(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	// All three intakes land on the same created_at instant; newest intake
	// must still come back first.
	frozen := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	f.submissions.now = func() time.Time { return frozen }

	first := f.intake(t, "tied-first")
	second := f.intake(t, "tied-second")
	third := f.intake(t, "tied-third")

	summaries, err := f.svc.ListSubmissions(ctx, domain.StagingFilter{})
	if err != nil {
		t.Fatalf("ListSubmissions returned error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != third.ID || summaries[1].ID != second.ID || summaries[2].ID != first.ID {
		t.Fatalf("expected insertion-order tie-break (third, second, first), got %s, %s, %s",
			summaries[0].Slug, summaries[1].Slug, summaries[2].Slug)
	}
}

func TestStagingService_GetSubmissionIncludesArticleImagesAfterApprove(t *testing.T) {
	f := newStagingFixture()
	ctx := context.Background()

	sub := f.intake(t, "iceland-ring-road", testUpload("glacier.jpg"))

	detail, err := f.svc.GetSubmission(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetSubmission returned error: %v", err)
	}
	if len(detail.Submission.Images) != 1 {
		t.Fatalf("expected 1 staged image, got %d", len(detail.Submission.Images))
	}
	if len(detail.ArticleImages) != 0 {
		t.Fatalf("expected no article images before approval")
	}

	if _, _, err := f.svc.Approve(ctx, sub.ID, uuid.New(), domain.ArticleStatusPublished, ""); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	detail, err = f.svc.GetSubmission(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetSubmission returned error: %v", err)
	}
	if detail.Submission.ReviewStatus != domain.ReviewStatusApproved {
		t.Fatalf("expected approved submission, got %s", detail.Submission.ReviewStatus)
	}
	if len(detail.ArticleImages) != 1 {
		t.Fatalf("expected 1 article image after approval, got %d", len(detail.ArticleImages))
	}

	if _, err := f.svc.GetSubmission(ctx, uuid.New()); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}
