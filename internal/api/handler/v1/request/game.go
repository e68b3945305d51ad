package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateGameRequest struct {
	Name                string `json:"name"`
	CompanyID           *uint  `json:"company_id"`
	MaxTicketsPerSeries int    `json:"max_tickets_per_series"`
	TicketPriceCents    int64  `json:"ticket_price_cents"`
}

func (req *CreateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.MaxTicketsPerSeries, validation.Required, validation.Min(1)),
		validation.Field(&req.TicketPriceCents, validation.Required, validation.Min(int64(1))),
	)
}

type UpdateGameRequest struct {
	Name                *string `json:"name"`
	MaxTicketsPerSeries *int    `json:"max_tickets_per_series"`
	TicketPriceCents    *int64  `json:"ticket_price_cents"`
	Active              *bool   `json:"active"`
}

func (req *UpdateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.MaxTicketsPerSeries, validation.Min(1)),
		validation.Field(&req.TicketPriceCents, validation.Min(int64(1))),
	)
}

type UpsertExtractionSeriesRequest struct {
	AreaID     *uint  `json:"area_id"`
	Time       string `json:"time"`
	LastSeries int    `json:"last_series"`
}

func (req *UpsertExtractionSeriesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Time, validation.Required, validation.Match(schedulePattern)),
		validation.Field(&req.LastSeries, validation.Min(0)),
	)
}
