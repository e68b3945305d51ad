package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// seriesRule matches a non-empty string of decimal digits, the storage form
// of a series label.
var seriesRule = []validation.Rule{
	validation.Required,
	validation.Match(seriesPattern),
	validation.Length(1, 20),
}

type CreateAreaRequest struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	State        string `json:"state"`
	CompanyID    *uint  `json:"company_id"`
	SeriesNumber string `json:"series_number"`
}

func (req *CreateAreaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.City, validation.Length(0, 100)),
		validation.Field(&req.State, validation.Length(0, 2)),
		validation.Field(&req.SeriesNumber, seriesRule...),
	)
}

type UpdateAreaRequest struct {
	Name         *string `json:"name"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	SeriesNumber *string `json:"series_number"`
}

func (req *UpdateAreaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&req.City, validation.Length(0, 100)),
		validation.Field(&req.State, validation.Length(0, 2)),
		validation.Field(&req.SeriesNumber, validation.NilOrNotEmpty, validation.Match(seriesPattern)),
	)
}

type UpsertAreaConfigRequest struct {
	CommissionRate  *float64 `json:"commission_rate"`
	PrizeMultiplier *float64 `json:"prize_multiplier"`
	MaxLiability    *int64   `json:"max_liability"`
	ExtractionTimes []string `json:"extraction_times"`
}

func (req *UpsertAreaConfigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CommissionRate, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&req.PrizeMultiplier, validation.Min(0.0)),
		validation.Field(&req.MaxLiability, validation.Min(int64(0))),
		validation.Field(&req.ExtractionTimes, validation.Each(validation.Match(schedulePattern))),
	)
}
