package validator

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stylehub/booking-api/internal/pricing"
)

// New creates a new validator instance with custom validations registered.
// This ensures consistent validation across the application and tests.
func New() *validator.Validate {
	v := validator.New()

	// Register custom "notblank" validator - rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // Not a string, let other validators handle it
		}
		return strings.TrimSpace(str) != ""
	})

	// "bookdate" - calendar date in YYYY-MM-DD form
	_ = v.RegisterValidation("bookdate", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		_, err := time.Parse(pricing.DateLayout, str)
		return err == nil
	})

	// "clocktime" - 24-hour HH:MM time of day
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true
		}
		_, err := time.Parse(pricing.ClockLayout, str)
		return err == nil
	})

	return v
}
