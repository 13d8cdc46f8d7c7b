package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/vayudrishti/vayudrishti/internal/api/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and converts failures into
// field errors suitable for a 400 response.
func validateInput(input interface{}) []models.FieldError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldError{{Field: "", Message: err.Error(), Code: "invalid"}}
	}

	fieldErrors := make([]models.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   fe.Field(),
			Message: "failed validation rule: " + fe.Tag(),
			Code:    fe.Tag(),
		})
	}
	return fieldErrors
}
