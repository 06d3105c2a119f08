package mock

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	genabilitybridge "github.com/opengovern/genability-bridge"
)

// MockDefaultBody is returned when no response has been queued.
const MockDefaultBody = `{"status":"success","count":0,"results":[]}`

// MockConnection records every request and replays queued responses in
// order. It decodes JSON bodies the way a real connection would: only when
// the request asks for it and the response declares a JSON content type.
type MockConnection struct {
	mu        sync.Mutex
	requests  []*genabilitybridge.NormalizedRequest
	responses []*genabilitybridge.NormalizedResponse

	// Err, when set, is returned by every Execute call.
	Err error
}

// Enqueue appends responses to be returned by subsequent calls.
func (m *MockConnection) Enqueue(responses ...*genabilitybridge.NormalizedResponse) *MockConnection {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
	return m
}

// Requests returns the requests seen so far.
func (m *MockConnection) Requests() []*genabilitybridge.NormalizedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*genabilitybridge.NormalizedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (m *MockConnection) LastRequest() *genabilitybridge.NormalizedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

func (m *MockConnection) Execute(ctx context.Context, req *genabilitybridge.NormalizedRequest) (*genabilitybridge.NormalizedResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	var canned *genabilitybridge.NormalizedResponse
	if len(m.responses) > 0 {
		canned = m.responses[0]
		m.responses = m.responses[1:]
	}
	err := m.Err
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if canned == nil {
		canned = JSON(200, MockDefaultBody)
	}

	resp := &genabilitybridge.NormalizedResponse{
		StatusCode: canned.StatusCode,
		Headers:    canned.Headers,
		Data:       canned.Data,
		Body:       canned.Body,
	}
	if resp.Body == nil && len(resp.Data) > 0 {
		resp.Body = string(resp.Data)
		if req.DecodeJSON && strings.Contains(resp.Headers["content-type"], "json") {
			var decoded any
			if json.Unmarshal(resp.Data, &decoded) == nil {
				resp.Body = decoded
			}
		}
	}
	return resp, nil
}

// JSON builds a canned JSON response.
func JSON(status int, body string) *genabilitybridge.NormalizedResponse {
	return &genabilitybridge.NormalizedResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json;charset=utf-8"},
		Data:       []byte(body),
	}
}

// HTML builds a canned HTML response, the usual shape of an upstream error page.
func HTML(status int, body string) *genabilitybridge.NormalizedResponse {
	return &genabilitybridge.NormalizedResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "text/html"},
		Data:       []byte(body),
	}
}

// Empty builds a canned response with no body.
func Empty(status int) *genabilitybridge.NormalizedResponse {
	return &genabilitybridge.NormalizedResponse{
		StatusCode: status,
		Headers:    map[string]string{},
	}
}
