package genabilitybridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/opengovern/genability-bridge/params"
)

const (
	jsonContentType      = "application/json;charset=utf-8"
	multipartContentType = "multipart/form-data"
	fileDataKey          = "fileData"
)

// CallOption adjusts a single dispatch.
type CallOption func(*callOptions)

type callOptions struct {
	unformatted bool
}

// Unformatted sends the path exactly as given, without a format suffix.
func Unformatted() CallOption {
	return func(o *callOptions) { o.unformatted = true }
}

// Get performs a GET; payload becomes query parameters. The decoded
// response body is returned.
func (c *Client) Get(ctx context.Context, path string, payload any, opts ...CallOption) (any, error) {
	return c.decoded(ctx, http.MethodGet, path, payload, opts)
}

// Post performs a POST with a JSON or multipart body.
func (c *Client) Post(ctx context.Context, path string, payload any, opts ...CallOption) (any, error) {
	return c.decoded(ctx, http.MethodPost, path, payload, opts)
}

// Put performs a PUT with a JSON or multipart body.
func (c *Client) Put(ctx context.Context, path string, payload any, opts ...CallOption) (any, error) {
	return c.decoded(ctx, http.MethodPut, path, payload, opts)
}

// Delete performs a DELETE; payload becomes query parameters.
func (c *Client) Delete(ctx context.Context, path string, payload any, opts ...CallOption) (any, error) {
	return c.decoded(ctx, http.MethodDelete, path, payload, opts)
}

// Raw performs a request and returns the response envelope untouched:
// no decoding is asked of the connection and no format suffix is added.
// Interpreting status and body is up to the caller.
func (c *Client) Raw(ctx context.Context, method, path string, payload any, opts ...CallOption) (*NormalizedResponse, error) {
	o := applyCallOptions(opts)
	resp, _, err := c.request(ctx, method, path, payload, true, o.unformatted)
	return resp, err
}

func (c *Client) decoded(ctx context.Context, method, path string, payload any, opts []CallOption) (any, error) {
	o := applyCallOptions(opts)
	_, body, err := c.request(ctx, method, path, payload, false, o.unformatted)
	return body, err
}

func applyCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// request is the single dispatch path behind every verb.
func (c *Client) request(ctx context.Context, method, path string, payload any, raw, unformatted bool) (*NormalizedResponse, any, error) {
	req, err := c.buildRequest(method, path, payload, raw, unformatted)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	resp, err := c.conn.Execute(ctx, req)
	if err != nil {
		c.logger.Debug("request failed", "method", req.Method, "path", req.Path, "error", err)
		return nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	if resp != nil {
		c.logger.Debug("request completed",
			"method", req.Method,
			"path", req.Path,
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"raw", raw)
	}

	if raw {
		return resp, nil, nil
	}
	if resp == nil || !isStructured(resp.Body) {
		ferr := &InvalidResponseFormatError{}
		if resp != nil {
			ferr.StatusCode = resp.StatusCode
			ferr.Body = resp.Body
		}
		c.logger.Warn("response body is not structured data", "method", req.Method, "path", req.Path, "status", ferr.StatusCode)
		return resp, nil, ferr
	}
	return resp, resp.Body, nil
}

func isStructured(body any) bool {
	switch body.(type) {
	case nil, string, []byte:
		return false
	}
	return true
}

func (c *Client) buildRequest(method, path string, payload any, raw, unformatted bool) (*NormalizedRequest, error) {
	method = strings.ToUpper(method)
	payload = byReference(payload)
	if !raw && !unformatted && !c.config.IsDefaultFormat() {
		path = c.formattedPath(path)
	}

	req := &NormalizedRequest{
		Method:     method,
		Path:       path,
		Headers:    map[string]string{},
		DecodeJSON: !raw,
	}

	switch method {
	case http.MethodGet, http.MethodDelete:
		query, err := encodeQuery(payload)
		if err != nil {
			return nil, err
		}
		req.Query = query
	case http.MethodPost, http.MethodPut:
		if fields, ok := payloadFields(payload); ok && hasFileData(fields) {
			req.Headers["Content-Type"] = multipartContentType
			req.Form = fields
			break
		}
		req.Headers["Content-Type"] = jsonContentType
		body, err := encodeBody(payload)
		if err != nil {
			return nil, err
		}
		req.Body = body
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	return req, nil
}

func (c *Client) formattedPath(path string) string {
	return path + "." + strings.ToLower(c.config.Format)
}

// byReference turns Options and Fragment values into pointers; both only
// encode through their pointer methods.
func byReference(payload any) any {
	switch p := payload.(type) {
	case params.Options:
		return &p
	case params.Fragment:
		return &p
	}
	return payload
}

// payloadFields returns mapping-shaped payloads as a plain map.
func payloadFields(payload any) (map[string]any, bool) {
	switch p := payload.(type) {
	case *params.Fragment:
		if p == nil {
			return nil, false
		}
		return p.Map(), true
	case *params.Options:
		if p == nil {
			return nil, false
		}
		return p.Map(), true
	case map[string]any:
		return p, p != nil
	}
	return nil, false
}

func hasFileData(fields map[string]any) bool {
	want := params.CanonicalKey(fileDataKey)
	for k, v := range fields {
		if params.CanonicalKey(k) == want && !params.IsAbsent(v) {
			return true
		}
	}
	return false
}

// encodeBody JSON-encodes non-empty mappings; strings and byte slices are
// sent as they are.
func encodeBody(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case string:
		if p == "" {
			return nil, nil
		}
		return []byte(p), nil
	case []byte:
		if len(p) == 0 {
			return nil, nil
		}
		return p, nil
	case *params.Fragment:
		if p.Len() == 0 {
			return nil, nil
		}
	case *params.Options:
		if p.Len() == 0 {
			return nil, nil
		}
	case map[string]any:
		if len(p) == 0 {
			return nil, nil
		}
	}
	if params.IsAbsent(payload) {
		return nil, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode body: %v", ErrInvalidInput, err)
	}
	return body, nil
}
