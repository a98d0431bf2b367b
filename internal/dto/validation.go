package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
)

// NewValidator returns a validator with the portal's custom tags registered:
// anomes (YYYY-MM) and categoria (a catalogue id).
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

// RegisterValidations adds the portal tags to an existing validator.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("anomes", func(fl validator.FieldLevel) bool {
		return models.ValidMonth(fl.Field().String())
	})
	_ = v.RegisterValidation("categoria", func(fl validator.FieldLevel) bool {
		return models.IsCategory(fl.Field().String())
	})
}
