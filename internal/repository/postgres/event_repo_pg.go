package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/meridianmag/meridian-backend/internal/domain"
	"github.com/meridianmag/meridian-backend/internal/repository/ports"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepo(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, destination_id, slug, title, summary, start_date, end_date, season,
	       featured, ordering, created_at`

// ListAll returns every event in authoring order. Relevance ordering is the
// timeliness engine's job, not the feed's.
func (r *EventRepository) ListAll(ctx context.Context) ([]domain.Event, error) {
	const query = `
		SELECT ` + eventColumns + `
		FROM event
		ORDER BY destination_id, ordering, created_at
	`
	events := make([]domain.Event, 0)
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListByDestinationSlug(ctx context.Context, slug string) ([]domain.Event, error) {
	const query = `
		SELECT e.id, e.destination_id, e.slug, e.title, e.summary, e.start_date, e.end_date,
		       e.season, e.featured, e.ordering, e.created_at
		FROM event e
		JOIN destination d ON d.id = e.destination_id
		WHERE d.slug = $1
		ORDER BY e.ordering, e.created_at
	`
	events := make([]domain.Event, 0)
	if err := r.db.SelectContext(ctx, &events, query, slug); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindDestinationBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	const query = `
		SELECT id, slug, name, country, summary, hero_image_url, created_at
		FROM destination
		WHERE slug = $1
	`
	var destination domain.Destination
	if err := r.db.GetContext(ctx, &destination, query, slug); err != nil {
		return nil, err
	}
	return &destination, nil
}

var _ ports.EventRepository = (*EventRepository)(nil)
