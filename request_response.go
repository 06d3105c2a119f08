package genabilitybridge

import "net/url"

// NormalizedRequest is the envelope handed to a Connection. Exactly one of
// Query, Body or Form is populated, depending on the verb and payload.
type NormalizedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    []byte
	// Form holds multipart fields, passed through untouched.
	Form map[string]any
	// DecodeJSON is false for raw dispatches.
	DecodeJSON bool
}

// IsMultipart reports whether the request carries a multipart form.
func (r *NormalizedRequest) IsMultipart() bool {
	return r.Form != nil
}

// NormalizedResponse is what a Connection returns.
type NormalizedResponse struct {
	StatusCode int
	Headers    map[string]string
	Data       []byte
	// Body is the decoded JSON value when decoding happened, the raw text
	// when it did not, and nil for an empty response.
	Body any
}
