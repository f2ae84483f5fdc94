package envconfig

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Get returns the value of the requested environment variable or the supplied fallback when empty.
func Get(name string, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

// GetLower is Get with the result trimmed and lower-cased, for enum-like settings.
func GetLower(name string, fallback string) string {
	return strings.ToLower(strings.TrimSpace(Get(name, fallback)))
}

// Validate validates a struct using validator tags.
func Validate(v any) error {
	return validate.Struct(v)
}
