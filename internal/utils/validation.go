package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("currency_code", validateCurrencyCode)
	validate.RegisterValidation("reference_code", validateReferenceCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	validCurrencies := []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "CNY", "INR", "SGD", "AED"}

	for _, currency := range validCurrencies {
		if code == currency {
			return true
		}
	}
	return false
}

// validateReferenceCode accepts the short uppercase codes used for locations
// and container types, e.g. "SHP_INMUN", "APT_USJFK", "40HC".
func validateReferenceCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	codeRegex := regexp.MustCompile(`^[A-Z0-9][A-Z0-9_]{1,9}$`)
	return codeRegex.MatchString(code)
}

// ValidationErrorDetails flattens validator errors into a field -> message map
// for the API error envelope.
func ValidationErrorDetails(err error) map[string]string {
	details := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["error"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = "failed on '" + fieldErr.Tag() + "' validation"
	}
	return details
}

func SanitizeString(input string) string {
	// Remove HTML tags
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	// Trim whitespace
	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}
