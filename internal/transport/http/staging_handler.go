package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/service"
	"github.com/meridianmag/meridian-backend/internal/util"
)

type StagingHandler struct {
	staging *service.StagingService
	search  *service.SearchService
	intake  bool
}

type StagingImageResponse struct {
	ID       uuid.UUID        `json:"id"`
	Filename string           `json:"filename"`
	URL      string           `json:"url"`
	Role     domain.ImageRole `json:"role"`
	Ordering int              `json:"ordering"`
}

type StagingSummaryResponse struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	ReviewStatus domain.ReviewStatus `json:"review_status"`
	ImageCount   int                 `json:"image_count"`
	CreatedAt    time.Time           `json:"created_at"`
}

type StagingDetailResponse struct {
	ID             uuid.UUID              `json:"id"`
	Title          string                 `json:"title"`
	Slug           string                 `json:"slug"`
	Body           string                 `json:"body"`
	DesiredStatus  domain.ArticleStatus   `json:"desired_status"`
	ReviewStatus   domain.ReviewStatus    `json:"review_status"`
	ReviewNotes    *string                `json:"review_notes,omitempty"`
	ReviewedBy     *uuid.UUID             `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time             `json:"reviewed_at,omitempty"`
	FinalArticleID *uuid.UUID             `json:"final_article_id,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	Images         []StagingImageResponse `json:"images"`
	ArticleImages  []StagingImageResponse `json:"article_images,omitempty"`
}

type StagingListResponse struct {
	Submissions []StagingSummaryResponse `json:"submissions"`
	Limit       int                      `json:"limit"`
	Offset      int                      `json:"offset"`
}

type ReviewDecisionRequest struct {
	Status      domain.ArticleStatus `json:"status"`
	ReviewNotes string               `json:"review_notes"`
}

type ReviewDecisionResponse struct {
	Submission StagingDetailResponse `json:"submission"`
	ArticleID  *uuid.UUID            `json:"article_id,omitempty"`
}

func RegisterStaging(e *echo.Echo, auth *service.AuthService, staging *service.StagingService, search *service.SearchService, intakeEnabled bool) {
	handler := &StagingHandler{staging: staging, search: search, intake: intakeEnabled}

	editors := e.Group("/api/v1/staging", RequireAuth(auth), RequireEditor(auth))
	editors.GET("", handler.listSubmissions)
	editors.GET("/:id", handler.getSubmission)
	editors.POST("/:id/approve", handler.approveSubmission)
	editors.POST("/:id/reject", handler.rejectSubmission)

	authors := e.Group("/api/v1/staging", RequireAuth(auth))
	authors.POST("", handler.intakeSubmission)
}

// intakeSubmission handles POST /api/v1/staging
func (h *StagingHandler) intakeSubmission(c echo.Context) error {
	if !h.intake {
		return c.JSON(http.StatusForbidden, util.Error("staging intake is disabled"))
	}

	if err := c.Request().ParseMultipartForm(64 << 20); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid multipart payload"))
	}

	input := service.IntakeInput{
		Title:         c.FormValue("title"),
		Slug:          c.FormValue("slug"),
		FolderName:    c.FormValue("folder_name"),
		Body:          c.FormValue("body"),
		DesiredStatus: domain.ArticleStatus(strings.TrimSpace(c.FormValue("desired_status"))),
	}

	uploads, closers, err := buildStagingUploads(c.Request().MultipartForm)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	defer func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}()
	input.Images = uploads

	submission, err := h.staging.Intake(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStagingValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrDuplicateSlug):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to stage submission"))
		}
	}

	return c.JSON(http.StatusCreated, toStagingDetailResponse(submission, nil))
}

// listSubmissions handles GET /api/v1/staging
func (h *StagingHandler) listSubmissions(c echo.Context) error {
	filter, err := parseStagingFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	summaries, err := h.staging.ListSubmissions(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrStagingValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list submissions"))
	}

	out := make([]StagingSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, StagingSummaryResponse{
			ID:           summary.ID,
			Title:        summary.Title,
			Slug:         summary.Slug,
			ReviewStatus: summary.ReviewStatus,
			ImageCount:   summary.ImageCount,
			CreatedAt:    summary.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, StagingListResponse{
		Submissions: out,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
}

// getSubmission handles GET /api/v1/staging/{id}
func (h *StagingHandler) getSubmission(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid submission id"))
	}

	detail, err := h.staging.GetSubmission(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load submission"))
	}

	return c.JSON(http.StatusOK, toStagingDetailResponse(&detail.Submission, detail.ArticleImages))
}

// approveSubmission handles POST /api/v1/staging/{id}/approve
func (h *StagingHandler) approveSubmission(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid submission id"))
	}

	var req ReviewDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Status == "" {
		req.Status = domain.ArticleStatusPublished
	}

	submission, article, err := h.staging.Approve(c.Request().Context(), id, user.ID, req.Status, req.ReviewNotes)
	if err != nil {
		return h.reviewError(c, err, "unable to approve submission")
	}

	if h.search != nil {
		h.search.IndexArticle(c.Request().Context(), article.ID.String(), article.Title, article.Slug, string(article.Status))
	}

	return c.JSON(http.StatusOK, ReviewDecisionResponse{
		Submission: toStagingDetailResponse(submission, nil),
		ArticleID:  &article.ID,
	})
}

// rejectSubmission handles POST /api/v1/staging/{id}/reject
func (h *StagingHandler) rejectSubmission(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid submission id"))
	}

	var req ReviewDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	submission, err := h.staging.Reject(c.Request().Context(), id, user.ID, req.ReviewNotes)
	if err != nil {
		return h.reviewError(c, err, "unable to reject submission")
	}

	return c.JSON(http.StatusOK, ReviewDecisionResponse{
		Submission: toStagingDetailResponse(submission, nil),
	})
}

func (h *StagingHandler) reviewError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidReviewTransition):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrStagingValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrPublishFailed):
		return c.JSON(http.StatusBadGateway, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}

func parseStagingFilter(c echo.Context) (domain.StagingFilter, error) {
	filter := domain.StagingFilter{}

	if statusStr := strings.ToLower(strings.TrimSpace(c.QueryParam("review_status"))); statusStr != "" && statusStr != "all" {
		status := domain.ReviewStatus(statusStr)
		if !domain.ValidReviewStatus(status) {
			return domain.StagingFilter{}, errors.New("review_status must be pending, approved, rejected, or all")
		}
		filter.Status = &status
	}
	if limitStr := strings.TrimSpace(c.QueryParam("limit")); limitStr != "" {
		val, err := strconv.Atoi(limitStr)
		if err != nil {
			return domain.StagingFilter{}, errors.New("limit must be an integer")
		}
		filter.Limit = val
	}
	if offsetStr := strings.TrimSpace(c.QueryParam("offset")); offsetStr != "" {
		val, err := strconv.Atoi(offsetStr)
		if err != nil {
			return domain.StagingFilter{}, errors.New("offset must be an integer")
		}
		filter.Offset = val
	}
	return filter, nil
}

func buildStagingUploads(form *multipart.Form) ([]service.StagingImageUpload, []io.ReadCloser, error) {
	if form == nil {
		return nil, nil, nil
	}

	var headers []*multipart.FileHeader
	if files := form.File["images"]; files != nil {
		headers = append(headers, files...)
	}
	if files := form.File["images[]"]; files != nil {
		headers = append(headers, files...)
	}

	roles := form.Value["image_roles"]

	uploads := make([]service.StagingImageUpload, 0, len(headers))
	closers := make([]io.ReadCloser, 0, len(headers))
	for idx, header := range headers {
		file, err := header.Open()
		if err != nil {
			for _, closer := range closers {
				_ = closer.Close()
			}
			return nil, nil, err
		}
		closers = append(closers, file)

		var role domain.ImageRole
		if idx < len(roles) {
			role = domain.ImageRole(strings.ToLower(strings.TrimSpace(roles[idx])))
		}

		uploads = append(uploads, service.StagingImageUpload{
			Reader:      file,
			Size:        header.Size,
			FileName:    header.Filename,
			ContentType: header.Header.Get(echo.HeaderContentType),
			Role:        role,
			Ordering:    idx,
		})
	}
	return uploads, closers, nil
}

func toStagingDetailResponse(submission *domain.StagingSubmission, articleImages []domain.ArticleImage) StagingDetailResponse {
	images := make([]StagingImageResponse, 0, len(submission.Images))
	for _, img := range submission.Images {
		images = append(images, StagingImageResponse{
			ID:       img.ID,
			Filename: img.Filename,
			URL:      img.URL,
			Role:     img.Role,
			Ordering: img.Ordering,
		})
	}

	resp := StagingDetailResponse{
		ID:             submission.ID,
		Title:          submission.Title,
		Slug:           submission.Slug,
		Body:           submission.Body,
		DesiredStatus:  submission.DesiredStatus,
		ReviewStatus:   submission.ReviewStatus,
		ReviewNotes:    submission.ReviewNotes,
		ReviewedBy:     submission.ReviewedBy,
		ReviewedAt:     submission.ReviewedAt,
		FinalArticleID: submission.FinalArticleID,
		CreatedAt:      submission.CreatedAt,
		Images:         images,
	}

	if len(articleImages) > 0 {
		resp.ArticleImages = make([]StagingImageResponse, 0, len(articleImages))
		for _, img := range articleImages {
			resp.ArticleImages = append(resp.ArticleImages, StagingImageResponse{
				ID:       img.ID,
				Filename: img.Filename,
				URL:      img.URL,
				Role:     img.Role,
				Ordering: img.Ordering,
			})
		}
	}
	return resp
}
