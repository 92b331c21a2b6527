package config

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validate checks that every field is present and well formed. Errors are
// keyed by the JSON field names.
func (c EnvironmentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIServerURL,
			validation.Required,
			validation.By(validateURL),
		),
		// AuthConfig is Validatable, so ozzo descends into it.
		validation.Field(&c.Auth),
	)
}

func (a AuthConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Domain,
			validation.Required,
			is.Host,
		),
		validation.Field(&a.Audience,
			validation.Required,
			validation.By(validateNotBlank),
		),
		validation.Field(&a.ClientID,
			validation.Required,
			validation.By(validateNotBlank),
		),
		validation.Field(&a.CallbackURL,
			validation.Required,
			validation.By(validateURL),
		),
	)
}

func validateNotBlank(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}

	return nil
}

func validateURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	// Required reports the empty case.
	if raw == "" {
		return nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Hostname() == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	if port := parsedURL.Port(); port != "" {
		if err := is.Port.Validate(port); err != nil {
			return validation.NewError("validation_invalid_port", "URL port must be between 1 and 65535")
		}
	}

	return nil
}
