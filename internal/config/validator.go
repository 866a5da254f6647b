package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks ranges and enumerations. Production also requires an API key.
func (c *Config) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	if c.Environment == EnvironmentProduction && c.APIKey == "" {
		return errors.New(ErrMsgAPIKeyRequired)
	}
	return nil
}

// Warnings lists non-fatal problems, such as example secrets copied from .env.example
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StorageDriver == "postgres" && c.DatabaseURL == "" {
		switch c.DBPassword {
		case ExampleDBPassword:
			warnings = append(warnings, WarnMsgExampleDBPass)
		case DefaultDBPassword:
			warnings = append(warnings, WarnMsgDefaultDBPass)
		}
	}

	switch c.APIKey {
	case ExampleAPIKey:
		warnings = append(warnings, WarnMsgExampleAPIKey)
	case "":
		warnings = append(warnings, WarnMsgNoAPIKey)
	}

	return warnings
}
