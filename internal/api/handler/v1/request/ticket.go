package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type IssueTicketRequest struct {
	AreaID          uint   `json:"area_id"`
	GameID          uint   `json:"game_id"`
	BuyerName       string `json:"buyer_name"`
	PaymentMethodID string `json:"payment_method_id"`
}

func (req *IssueTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AreaID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.GameID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.BuyerName, validation.Length(0, 100)),
		validation.Field(&req.PaymentMethodID, validation.Required),
	)
}
