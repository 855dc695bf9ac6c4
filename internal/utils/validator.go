// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Public identifiers are opaque and URL-safe.
var publicIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("public_id", validatePublicID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidPublicID reports whether id has the shape of a public identifier.
func IsValidPublicID(id string) bool {
	return validate.Var(id, "required,public_id") == nil
}

func validatePublicID(fl validator.FieldLevel) bool {
	return publicIDPattern.MatchString(fl.Field().String())
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "url":
		return e.Field() + " must be an absolute URL"
	case "public_id":
		return e.Field() + " must contain only letters, digits, '-' and '_' (max 64)"
	default:
		return e.Field() + " is invalid"
	}
}
