package service

import (
	"context"
	"errors"
	"time"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
	"github.com/meridianmag/meridian-backend/internal/timeliness"
)

var ErrDestinationNotFound = errors.New("destination not found")

// TimelyEvent pairs an event with its timeliness classification so handlers
// can render badges and countdowns without recomputing them.
type TimelyEvent struct {
	Event     domain.Event
	Status    timeliness.Status
	DaysUntil *int
}

// EventService exposes the timeliness views of the event catalog. All
// classification happens against the service clock so results are stable
// within a request.
type EventService struct {
	events ports.EventRepository
	now    func() time.Time
}

func NewEventService(events ports.EventRepository) *EventService {
	return &EventService{events: events, now: time.Now}
}

// SetClock overrides the time source used for classification. Tests inject a
// fixed clock here.
func (s *EventService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// TimelyEvents returns every currently relevant event: happening now first,
// then happening soon, then in season. Events with no timely status are
// omitted.
func (s *EventService) TimelyEvents(ctx context.Context) ([]TimelyEvent, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return s.annotate(timeliness.RankTimely(events, now), now), nil
}

// FeaturedTimelyEvents narrows the timely ranking to events worth a homepage
// slot: editorially featured, happening now, or happening soon. In-season
// events only qualify when featured.
func (s *EventService) FeaturedTimelyEvents(ctx context.Context) ([]TimelyEvent, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return s.annotate(timeliness.FeaturedTimely(events, now), now), nil
}

// DestinationEvents returns a destination with its full event list ordered
// by timeliness score, most relevant first. Unlike the timely feeds, events
// with no current status are kept so the page shows the whole calendar.
func (s *EventService) DestinationEvents(ctx context.Context, slug string) (*domain.Destination, []TimelyEvent, error) {
	destination, err := s.events.FindDestinationBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrDestinationNotFound
		}
		return nil, nil, err
	}

	events, err := s.events.ListByDestinationSlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	annotated := s.annotate(timeliness.SortByRelevance(events, now), now)
	return destination, annotated, nil
}

func (s *EventService) annotate(events []domain.Event, now time.Time) []TimelyEvent {
	out := make([]TimelyEvent, 0, len(events))
	for _, event := range events {
		status := timeliness.Classify(event, now)
		var days *int
		if status == timeliness.StatusHappeningSoon {
			days = timeliness.DaysUntil(event, now)
		}
		out = append(out, TimelyEvent{Event: event, Status: status, DaysUntil: days})
	}
	return out
}
