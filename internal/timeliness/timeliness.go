// Package timeliness classifies and ranks events by temporal relevance
// against a caller-supplied reference instant. Every function here is pure:
// no clocks are read, inputs are never mutated, and missing dates or season
// labels classify as not relevant rather than erroring.
package timeliness

import (
	"sort"
	"strings"
	"time"

	"github.com/meridianmag/meridian-backend/internal/domain"
)

// Status is the derived temporal category of an event. Exactly one holds for
// a given (event, now) pair, in descending priority.
type Status int

const (
	StatusNone Status = iota
	StatusInSeason
	StatusHappeningSoon
	StatusHappeningNow
)

func (s Status) String() string {
	switch s {
	case StatusHappeningNow:
		return "happening_now"
	case StatusHappeningSoon:
		return "happening_soon"
	case StatusInSeason:
		return "in_season"
	default:
		return "none"
	}
}

// Score is the per-destination relevance weight: 3 now, 2 soon, 1 in season,
// 0 otherwise.
func (s Status) Score() int {
	switch s {
	case StatusHappeningNow:
		return 3
	case StatusHappeningSoon:
		return 2
	case StatusInSeason:
		return 1
	default:
		return 0
	}
}

// SoonHorizon is how far ahead an event may start and still count as
// "happening soon".
const SoonHorizon = 30 * 24 * time.Hour

const yearRoundLabel = "year-round"

// IsHappeningNow reports whether now falls inside the closed interval
// [StartDate, EndDate]. Events missing either bound are never happening now,
// regardless of their season label. Comparison is by calendar day, so an
// event still counts on the afternoon of its end date.
func IsHappeningNow(event domain.Event, now time.Time) bool {
	if event.StartDate == nil || event.EndDate == nil {
		return false
	}
	day := dateOf(now)
	return !day.Before(dateOf(*event.StartDate)) && !day.After(dateOf(*event.EndDate))
}

// IsHappeningSoon reports whether the event starts strictly after now and
// strictly inside the 30-day horizon.
func IsHappeningSoon(event domain.Event, now time.Time) bool {
	if event.StartDate == nil {
		return false
	}
	start := dateOf(*event.StartDate)
	day := dateOf(now)
	return start.After(day) && start.Before(day.Add(SoonHorizon))
}

// DaysUntil returns the number of calendar days from now to the event's start
// date, or nil when no start date is set. The count ignores partial hours:
// it is the difference between the two calendar dates.
func DaysUntil(event domain.Event, now time.Time) *int {
	if event.StartDate == nil {
		return nil
	}
	days := int(dateOf(*event.StartDate).Sub(dateOf(now)).Hours() / 24)
	return &days
}

// IsInSeason reports whether the event's free-text season label names the
// current month, or is exactly "Year-round". Matching is plain substring
// containment of the lowercased English month name: "July - August" matches
// July and August but not June. That looseness is intentional; it mirrors
// how the labels are authored and must not be replaced with range parsing.
func IsInSeason(event domain.Event, now time.Time) bool {
	if event.Season == nil {
		return false
	}
	season := strings.ToLower(strings.TrimSpace(*event.Season))
	if season == yearRoundLabel {
		return true
	}
	return strings.Contains(season, strings.ToLower(now.Month().String()))
}

// Classify resolves the single status for an event, applying the precedence
// now > soon > in season > none.
func Classify(event domain.Event, now time.Time) Status {
	switch {
	case IsHappeningNow(event, now):
		return StatusHappeningNow
	case IsHappeningSoon(event, now):
		return StatusHappeningSoon
	case IsInSeason(event, now):
		return StatusInSeason
	default:
		return StatusNone
	}
}

// RankTimely partitions events into happening-now, happening-soon, and
// in-season groups and concatenates them in that order. Events matching none
// of the three are dropped. Encounter order is preserved within each group.
func RankTimely(events []domain.Event, now time.Time) []domain.Event {
	var happeningNow, soon, inSeason []domain.Event
	for _, event := range events {
		switch Classify(event, now) {
		case StatusHappeningNow:
			happeningNow = append(happeningNow, event)
		case StatusHappeningSoon:
			soon = append(soon, event)
		case StatusInSeason:
			inSeason = append(inSeason, event)
		}
	}

	ranked := make([]domain.Event, 0, len(happeningNow)+len(soon)+len(inSeason))
	ranked = append(ranked, happeningNow...)
	ranked = append(ranked, soon...)
	return append(ranked, inSeason...)
}

// FeaturedTimely narrows the ranked timely list to events that are featured,
// happening now, or happening soon. In-season-only events drop out unless
// flagged featured.
func FeaturedTimely(events []domain.Event, now time.Time) []domain.Event {
	ranked := RankTimely(events, now)
	featured := make([]domain.Event, 0, len(ranked))
	for _, event := range ranked {
		if event.Featured || IsHappeningNow(event, now) || IsHappeningSoon(event, now) {
			featured = append(featured, event)
		}
	}
	return featured
}

// SortByRelevance orders one destination's events by relevance score,
// descending, keeping authoring order for ties. The input slice is left
// untouched.
func SortByRelevance(events []domain.Event, now time.Time) []domain.Event {
	sorted := append([]domain.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Classify(sorted[i], now).Score() > Classify(sorted[j], now).Score()
	})
	return sorted
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
