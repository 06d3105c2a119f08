// config.go
// ----------
// This file defines the Config structure consumed by the Client and the
// HTTP adapter: which endpoint to talk to, which response format to ask
// for, and the transport settings the adapter applies.
//
// Only Format is read by the dispatcher itself (path suffix policy). The
// remaining fields belong to the connection; they live here so a single
// file or environment can configure both.
package genabilitybridge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultEndpoint is used when no endpoint is configured.
	DefaultEndpoint = "https://api.genability.com/rest/"
	// DefaultFormat is the response format that needs no path suffix.
	DefaultFormat = "json"
	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "Genability API Go Client"
)

// Config configures the Client and its connection.
type Config struct {
	// Endpoint is the API base URL.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`

	// Format is the response format. A non-default format is appended to
	// request paths as a suffix (e.g. "/public/lses.xml").
	Format string `yaml:"format" mapstructure:"format" validate:"required,oneof=json xml"`

	// ApplicationID and ApplicationKey are sent as basic auth credentials.
	ApplicationID  string `yaml:"application_id" mapstructure:"application_id"`
	ApplicationKey string `yaml:"application_key" mapstructure:"application_key" validate:"required_with=ApplicationID"`

	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Proxy is an optional HTTP proxy URL.
	Proxy string `yaml:"proxy" mapstructure:"proxy" validate:"omitempty,url"`

	// Timeout bounds each HTTP round trip made by the adapter. Zero means none.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// DebugLogging logs every dispatch at debug level.
	DebugLogging bool `yaml:"debug_logging" mapstructure:"debug_logging"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}

// Validate checks struct tags and returns one readable error per failed field.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// IsDefaultFormat reports whether responses use the default format.
func (c *Config) IsDefaultFormat() bool {
	return c.Format == "" || strings.EqualFold(c.Format, DefaultFormat)
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatSingleValidationError(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

func formatSingleValidationError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_with":
		return fmt.Sprintf("%s is required when %s is set", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
