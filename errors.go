package genabilitybridge

import (
	"errors"
	"fmt"

	"github.com/opengovern/genability-bridge/params"
)

// ErrInvalidInput is returned for malformed nested-entity arguments and
// for payloads that cannot be encoded for the chosen verb.
var ErrInvalidInput = params.ErrInvalidInput

// ErrInvalidResponseFormat is the sentinel behind InvalidResponseFormatError.
var ErrInvalidResponseFormat = errors.New("invalid response format")

// InvalidResponseFormatError reports a non-raw call whose response body was
// missing or never decoded into structured data, typically an HTML error
// page. Body carries what was received.
type InvalidResponseFormatError struct {
	StatusCode int
	Body       any
}

func (e *InvalidResponseFormatError) Error() string {
	switch body := e.Body.(type) {
	case nil:
		return "invalid response format: empty body"
	case []byte:
		return "invalid response format: " + string(body)
	default:
		return fmt.Sprintf("invalid response format: %v", body)
	}
}

// Unwrap lets errors.Is match ErrInvalidResponseFormat.
func (e *InvalidResponseFormatError) Unwrap() error {
	return ErrInvalidResponseFormat
}
