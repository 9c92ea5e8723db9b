package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// formatValidationError converts validator errors into field-specific
// messages. Fields are reported under their json names (the validator is
// configured with a json tag name func), so the message matches what the
// client actually sent.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be blank"
			case "email":
				return "invalid request: " + field + " must be a valid email address"
			case "oneof":
				return "invalid request: " + field + " must be one of: " + fe.Param()
			case "datetime":
				return "invalid request: " + field + " must be a date formatted as YYYY-MM-DD"
			case "promocode":
				return "invalid request: " + field + " may only contain letters, digits, hyphens and underscores"
			case "max":
				return "invalid request: " + field + " exceeds maximum length of " + fe.Param()
			case "gte", "gt", "lte", "min":
				return "invalid request: " + field + " is out of range"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}
