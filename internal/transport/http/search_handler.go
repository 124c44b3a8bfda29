package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meridianmag/meridian-backend/internal/service"
)

type SearchHandler struct {
	search *service.SearchService
}

type SuggestResponse struct {
	Query       string                      `json:"query"`
	Suggestions []service.ArticleSuggestion `json:"suggestions"`
}

func RegisterSearch(e *echo.Echo, search *service.SearchService) {
	handler := &SearchHandler{search: search}
	e.GET("/api/v1/articles/search", handler.suggest)
}

// suggest handles GET /api/v1/articles/search. The search backend is
// best-effort: a missing or slow cluster yields an empty suggestion list.
func (h *SearchHandler) suggest(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))

	limit := 10
	if limitStr := strings.TrimSpace(c.QueryParam("limit")); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil {
			limit = val
		}
	}

	suggestions := h.search.SuggestArticles(c.Request().Context(), query, limit)
	return c.JSON(http.StatusOK, SuggestResponse{Query: query, Suggestions: suggestions})
}
