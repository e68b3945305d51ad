package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// passwordPattern needs lookaheads, which the stdlib regexp engine does not
// support; regexp2 does.
var passwordPattern = regexp2.MustCompile(`^(?=.*[a-z])(?=.*[A-Z])(?=.*\d).{8,72}$`, regexp2.None)

func validatePassword(value any) error {
	password, _ := value.(string)

	matched, err := passwordPattern.MatchString(password)
	if err != nil || !matched {
		return errors.New("password must be at least 8 characters with upper, lower and digit")
	}

	return nil
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CompanyID *uint  `json:"company_id"`
}

func (req *SignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.By(validatePassword)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Role, validation.Required, validation.In("admin", "company_admin", "operator")),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
