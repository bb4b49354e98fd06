package config

import (
	"encoding/json"
	"slices"
	"time"
)

// Backend base URLs the client configuration chooses between.
const (
	ProductionAPIURL  = "https://your-backend-url.onrender.com"
	DevelopmentAPIURL = "http://localhost:5000"
)

const (
	// MaxUploadFileSize is the byte ceiling for uploaded test sources (16 MiB).
	MaxUploadFileSize int64 = 16 * 1024 * 1024
	// DefaultTestDurationMinutes is the duration offered for a new test.
	DefaultTestDurationMinutes = 60
)

var supportedUploadFormats = []string{".pdf", ".json"}

// ClientConfig is the record handed to the views and to browser code. It is
// built once by ResolveClient and has no mutators.
type ClientConfig struct {
	production          bool
	apiURL              string
	maxFileSize         int64
	supportedFormats    []string
	defaultTestDuration int
}

// ResolveClient builds the client configuration for the given mode. It has no
// side effects and always returns equal records for equal input.
func ResolveClient(isProduction bool) ClientConfig {
	apiURL := DevelopmentAPIURL
	if isProduction {
		apiURL = ProductionAPIURL
	}

	return ClientConfig{
		production:          isProduction,
		apiURL:              apiURL,
		maxFileSize:         MaxUploadFileSize,
		supportedFormats:    slices.Clone(supportedUploadFormats),
		defaultTestDuration: DefaultTestDurationMinutes,
	}
}

// Production reports the mode the record was resolved for.
func (c ClientConfig) Production() bool { return c.production }

// APIURL is the base URL for backend calls.
func (c ClientConfig) APIURL() string { return c.apiURL }

// MaxFileSize is the upload ceiling in bytes.
func (c ClientConfig) MaxFileSize() int64 { return c.maxFileSize }

// SupportedFormats returns a copy of the accepted file extensions, in order.
func (c ClientConfig) SupportedFormats() []string {
	return slices.Clone(c.supportedFormats)
}

// DefaultTestDuration is the default test length in minutes.
func (c ClientConfig) DefaultTestDuration() int { return c.defaultTestDuration }

// DefaultTestDurationPeriod returns DefaultTestDuration as a time.Duration.
func (c ClientConfig) DefaultTestDurationPeriod() time.Duration {
	return time.Duration(c.defaultTestDuration) * time.Minute
}

// Equal reports whether two records hold the same values.
func (c ClientConfig) Equal(other ClientConfig) bool {
	return c.production == other.production &&
		c.apiURL == other.apiURL &&
		c.maxFileSize == other.maxFileSize &&
		c.defaultTestDuration == other.defaultTestDuration &&
		slices.Equal(c.supportedFormats, other.supportedFormats)
}

type clientConfigJSON struct {
	APIURL              string   `json:"apiUrl"`
	MaxFileSize         int64    `json:"maxFileSize"`
	SupportedFormats    []string `json:"supportedFormats"`
	DefaultTestDuration int      `json:"defaultTestDuration"`
}

// MarshalJSON encodes the record with the field names the browser expects.
func (c ClientConfig) MarshalJSON() ([]byte, error) {
	formats := c.supportedFormats
	if formats == nil {
		formats = []string{}
	}
	return json.Marshal(clientConfigJSON{
		APIURL:              c.apiURL,
		MaxFileSize:         c.maxFileSize,
		SupportedFormats:    formats,
		DefaultTestDuration: c.defaultTestDuration,
	})
}
