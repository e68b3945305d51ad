package domain

import "time"

// Area is a sales territory under a company. It owns the series counter:
// currentSeries groups sold tickets into bounded, sequentially numbered
// batches, ticketsInSeries counts tickets sold under the active one.
type Area struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	State     string `json:"state"`
	CompanyID uint   `json:"company_id"`

	// SeriesNumber is the configured starting series, a zero-padded
	// decimal string. CurrentSeries starts equal to it and advances as
	// series fill up; TicketsInSeries resets to zero on every advance.
	SeriesNumber    string `json:"series_number"`
	CurrentSeries   string `json:"current_series"`
	TicketsInSeries int    `json:"tickets_in_series"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AreaPatch carries the fields an administrator may change on an area.
// A non-nil SeriesNumber restarts the counter at that value.
type AreaPatch struct {
	Name         *string
	City         *string
	State        *string
	SeriesNumber *string
}

// AreaConfig is the per-(area, game) override of commercial parameters.
// At most one row exists per pair; writes are upserts.
type AreaConfig struct {
	AreaID          uint      `json:"area_id"`
	GameID          uint      `json:"game_id"`
	CommissionRate  *float64  `json:"commission_rate"`
	PrizeMultiplier *float64  `json:"prize_multiplier"`
	MaxLiability    *int64    `json:"max_liability"`
	ExtractionTimes []string  `json:"extraction_times"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
