package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SendEmailRequest payload for POST /notifications/email.
type SendEmailRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

func (r SendEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Organization, validation.Required),
	)
}
