package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"gt":          "{field} must be greater than {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"e164":        "{field} must be a valid phone number",
		"dive":        "{field} is invalid",
		TagDate:       "{field} must be a date in YYYY-MM-DD format",
		TagClock:      "{field} must be a time in HH:MM format",
		TagSlotRange:  "{field} must be a time range in HH:MM-HH:MM format",
		"unique":      "{field} must not contain duplicates",
		"required_if": "{field} is required",
	}
)

// message returns the offending field (json name) and a readable message for the first error.
func message(err error) (string, string) {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			field := valErr.Field()

			errStr := messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

				return field, errStr
			}
		}

		return valErrors[0].Field(), valErrors.Error()
	}

	return "", err.Error()
}
