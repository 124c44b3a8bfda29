package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meridianmag/meridian-backend/internal/service"
	"github.com/meridianmag/meridian-backend/internal/util"
)

type EventHandler struct {
	events *service.EventService
}

type EventResponse struct {
	ID            uuid.UUID  `json:"id"`
	DestinationID uuid.UUID  `json:"destination_id"`
	Slug          *string    `json:"slug,omitempty"`
	Title         string     `json:"title"`
	Summary       *string    `json:"summary,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Season        *string    `json:"season,omitempty"`
	Featured      bool       `json:"featured"`
	Timeliness    string     `json:"timeliness"`
	DaysUntil     *int       `json:"days_until,omitempty"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

type DestinationEventsResponse struct {
	ID        uuid.UUID       `json:"id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Country   *string         `json:"country,omitempty"`
	Summary   *string         `json:"summary,omitempty"`
	HeroImage *string         `json:"hero_image,omitempty"`
	Events    []EventResponse `json:"events"`
}

func RegisterEvents(e *echo.Echo, events *service.EventService) {
	handler := &EventHandler{events: events}

	e.GET("/api/v1/events/timely", handler.listTimely)
	e.GET("/api/v1/events/timely/featured", handler.listFeatured)
	e.GET("/api/v1/destinations/:slug/events", handler.listDestinationEvents)
}

// listTimely handles GET /api/v1/events/timely
func (h *EventHandler) listTimely(c echo.Context) error {
	timely, err := h.events.TimelyEvents(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list timely events"))
	}
	return c.JSON(http.StatusOK, EventListResponse{Events: toEventResponses(timely)})
}

// listFeatured handles GET /api/v1/events/timely/featured
func (h *EventHandler) listFeatured(c echo.Context) error {
	featured, err := h.events.FeaturedTimelyEvents(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list featured events"))
	}
	return c.JSON(http.StatusOK, EventListResponse{Events: toEventResponses(featured)})
}

// listDestinationEvents handles GET /api/v1/destinations/{slug}/events
func (h *EventHandler) listDestinationEvents(c echo.Context) error {
	slug := c.Param("slug")

	destination, events, err := h.events.DestinationEvents(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load destination events"))
	}

	return c.JSON(http.StatusOK, DestinationEventsResponse{
		ID:        destination.ID,
		Slug:      destination.Slug,
		Name:      destination.Name,
		Country:   destination.Country,
		Summary:   destination.Summary,
		HeroImage: destination.HeroImage,
		Events:    toEventResponses(events),
	})
}

func toEventResponses(timely []service.TimelyEvent) []EventResponse {
	out := make([]EventResponse, 0, len(timely))
	for _, item := range timely {
		out = append(out, EventResponse{
			ID:            item.Event.ID,
			DestinationID: item.Event.DestinationID,
			Slug:          item.Event.Slug,
			Title:         item.Event.Title,
			Summary:       item.Event.Summary,
			StartDate:     item.Event.StartDate,
			EndDate:       item.Event.EndDate,
			Season:        item.Event.Season,
			Featured:      item.Event.Featured,
			Timeliness:    item.Status.String(),
			DaysUntil:     item.DaysUntil,
		})
	}
	return out
}
