package ports

import (
	"context"

	"github.com/meridianmag/meridian-backend/internal/domain"
)

// EventRepository is the destination/event feed consumed by the timeliness
// engine. The engine does not care whether the rows come from Postgres, a
// cache, or static content; only the attributes matter.
type EventRepository interface {
	ListAll(ctx context.Context) ([]domain.Event, error)
	ListByDestinationSlug(ctx context.Context, slug string) ([]domain.Event, error)
	FindDestinationBySlug(ctx context.Context, slug string) (*domain.Destination, error)
}
