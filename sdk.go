// sdk.go
// ------
// The sdk.go file contains the Client, the entry point of the package.
//
// A Client pairs a validated Config with an injected Connection. It holds
// no per-call state: every dispatch builds its own request envelope, so a
// Client can be shared across goroutines as long as the Connection can.
package genabilitybridge

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Client dispatches normalized requests through a Connection.
type Client struct {
	conn   Connection
	config Config
	logger *slog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient validates cfg (nil means DefaultConfig) and returns a Client
// bound to conn.
func NewClient(conn Connection, cfg *Config, opts ...ClientOption) (*Client, error) {
	if conn == nil {
		return nil, fmt.Errorf("connection is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := &Client{conn: conn, config: *cfg}
	c.config.SetDefaults()
	if err := c.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = defaultLogger(c.config.DebugLogging)
	}
	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

func defaultLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
