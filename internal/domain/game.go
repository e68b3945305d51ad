package domain

import "time"

// Game is a lottery product a company sells. MaxTicketsPerSeries bounds how
// many tickets an area issues under one series before it cycles.
type Game struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	CompanyID           uint   `json:"company_id"`
	MaxTicketsPerSeries int    `json:"max_tickets_per_series"`
	// TicketPriceCents is the sale price in cents of the local currency.
	TicketPriceCents int64 `json:"ticket_price_cents"`
	Active           bool  `json:"active"`

	ExtractionSeries []ExtractionSeries `json:"extraction_series,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GamePatch struct {
	Name                *string
	MaxTicketsPerSeries *int
	TicketPriceCents    *int64
	Active              *bool
}

// ExtractionSeries tracks the last series drawn for a game at a scheduled
// time. AreaID nil means the row applies company-wide rather than to one
// area; (GameID, AreaID, Time) is unique either way.
type ExtractionSeries struct {
	ID         uint      `json:"id"`
	GameID     uint      `json:"game_id"`
	AreaID     *uint     `json:"area_id"`
	Time       string    `json:"time"`
	LastSeries int       `json:"last_series"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
