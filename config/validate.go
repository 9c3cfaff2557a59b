package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pevans/newsnow/newsapi"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		return newsapi.IsCountry(fl.Field().String())
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return newsapi.IsCategory(fl.Field().String())
	})
	v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})

	return v
}

// Validate checks every field of cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
