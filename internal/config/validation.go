package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct tags and cross-field rules on a loaded configuration.
func Validate(cfg *Config) error {
	if err := newValidate().Struct(cfg); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			return buildValidationError(fieldErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return validateCrossField(cfg)
}

func newValidate() *validator.Validate {
	v := validator.New()

	// Registration only fails for empty tag names, so errors are ignored here
	_ = v.RegisterValidation("environment", stringOneOf("development", "staging", "production"))
	_ = v.RegisterValidation("loglevel", stringOneOf("debug", "info", "warn", "error"))
	_ = v.RegisterValidation("chambers", validateChambers)
	_ = v.RegisterValidation("electioncycle", validateElectionCycle)

	return v
}

// stringOneOf builds a tag function accepting only the listed values.
func stringOneOf(allowed ...string) validator.Func {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(fl validator.FieldLevel) bool {
		return set[fl.Field().String()]
	}
}

// validateChambers accepts a non-empty list of known chamber names.
func validateChambers(fl validator.FieldLevel) bool {
	chambers, ok := fl.Field().Interface().([]string)
	if !ok || len(chambers) == 0 {
		return false
	}
	for _, chamber := range chambers {
		if chamber != "senate" && chamber != "governor" {
			return false
		}
	}
	return true
}

// validateElectionCycle accepts plausible general-election years. General
// elections fall on even years.
func validateElectionCycle(fl validator.FieldLevel) bool {
	cycle := fl.Field().Int()
	return cycle >= 2000 && cycle <= 2100 && cycle%2 == 0
}

func validateCrossField(cfg *Config) error {
	// Forecast model variants are underscore-prefixed tags ("_classic")
	if !strings.HasPrefix(cfg.Scan.Expression, "_") {
		return fmt.Errorf("scan expression must be an underscore-prefixed variant tag, got %q", cfg.Scan.Expression)
	}

	if cfg.Publish.Enabled {
		switch {
		case cfg.Publish.Bucket == "":
			return fmt.Errorf("publish.bucket is required when publishing is enabled")
		case cfg.Publish.Key == "":
			return fmt.Errorf("publish.key is required when publishing is enabled")
		case cfg.Publish.Region == "":
			return fmt.Errorf("publish.region is required when publishing is enabled")
		}
	}

	if cfg.Notify.Enabled {
		if cfg.Notify.BotToken == "" {
			return fmt.Errorf("notify.bot_token is required when notifications are enabled")
		}
		if cfg.Notify.ChatID == 0 {
			return fmt.Errorf("notify.chat_id is required when notifications are enabled")
		}
	}

	return nil
}

// buildValidationError collects every field failure into one readable error.
func buildValidationError(fieldErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fe := range fieldErrors {
		fmt.Fprintf(&b, "- Field '%s' %s\n", fe.StructField(), tagMessage(fe))
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("must be a valid URL, got '%v'", fe.Value())
	case "min", "max", "gt", "gte", "lt", "lte":
		return fmt.Sprintf("violates the %s constraint", fe.Tag())
	case "environment":
		return "must be one of: development, staging, production"
	case "loglevel":
		return "must be one of: debug, info, warn, error"
	case "chambers":
		return "may only contain: senate, governor"
	case "electioncycle":
		return fmt.Sprintf("must be an even election year, got '%v'", fe.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// ValidateEnvironment enforces rules that depend on where the process runs.
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production should not run with placeholder credentials
		if cfg.Notify.Enabled && looksLikePlaceholder(cfg.Notify.BotToken) {
			return fmt.Errorf("production environment should not use a placeholder Telegram token")
		}
	}

	if cfg.IsDevelopment() {
		// Publishing overwrites the live report site
		if cfg.Publish.Enabled {
			return fmt.Errorf("report publishing should be disabled in development mode")
		}
	}

	return nil
}

func looksLikePlaceholder(credential string) bool {
	lowered := strings.ToLower(credential)
	for _, marker := range []string{"test", "demo", "example", "placeholder", "your_"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
