package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCompanyRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

func (req *CreateCompanyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Document, validation.Required, validation.Length(11, 20)),
	)
}
