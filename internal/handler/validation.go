package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// formatValidationError converts validator errors into user-facing messages.
// Only the first failing field is reported; clients fix one thing at a time.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be whitespace only"
			case "min":
				return "invalid request: " + field + " must not be empty"
			case "max":
				return "invalid request: " + field + " exceeds maximum length"
			case "bookdate":
				return "invalid request: " + field + " must be a YYYY-MM-DD date"
			case "clocktime":
				return "invalid request: " + field + " must be an HH:MM time"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}
