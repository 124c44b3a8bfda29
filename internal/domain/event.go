package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a place the magazine covers. Events keep their authoring
// order; relevance ordering is computed at read time, never stored.
type Destination struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Slug      string    `db:"slug" json:"slug"`
	Name      string    `db:"name" json:"name"`
	Country   *string   `db:"country" json:"country,omitempty"`
	Summary   *string   `db:"summary" json:"summary,omitempty"`
	HeroImage *string   `db:"hero_image_url" json:"hero_image_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Events []Event `db:"-" json:"events,omitempty"`
}

// Event is a time-bound activity or story tied to exactly one destination.
// StartDate/EndDate are calendar dates and satisfy StartDate <= EndDate when
// both are present. Season is a free-text label ("July - August",
// "Year-round") used when exact dates are unknown.
type Event struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	DestinationID uuid.UUID  `db:"destination_id" json:"destination_id"`
	Slug          *string    `db:"slug" json:"slug,omitempty"`
	Title         string     `db:"title" json:"title"`
	Summary       *string    `db:"summary" json:"summary,omitempty"`
	StartDate     *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
	Season        *string    `db:"season" json:"season,omitempty"`
	Featured      bool       `db:"featured" json:"featured"`
	Ordering      int        `db:"ordering" json:"ordering"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
