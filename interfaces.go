package genabilitybridge

import "context"

// Connection sends one normalized request and returns the transport's view
// of the response. Implementations own the network: base endpoint,
// credentials, proxies, timeouts and JSON decoding. When req.DecodeJSON is
// set and the response is JSON, Body must hold the decoded value;
// otherwise Body holds the undecoded text.
type Connection interface {
	Execute(ctx context.Context, req *NormalizedRequest) (*NormalizedResponse, error)
}

// ConnectionFunc adapts a function to the Connection interface.
type ConnectionFunc func(ctx context.Context, req *NormalizedRequest) (*NormalizedResponse, error)

// Execute calls f.
func (f ConnectionFunc) Execute(ctx context.Context, req *NormalizedRequest) (*NormalizedResponse, error) {
	return f(ctx, req)
}
