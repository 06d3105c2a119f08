package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/oauth2"

	genabilitybridge "github.com/opengovern/genability-bridge"
)

// GenabilityAdapter is the net/http Connection for the Genability REST API.
type GenabilityAdapter struct {
	Endpoint       string
	ApplicationID  string
	ApplicationKey string
	UserAgent      string
	Accept         string

	client      *http.Client
	tokenSource oauth2.TokenSource
}

// AdapterOption customizes a GenabilityAdapter.
type AdapterOption func(*GenabilityAdapter)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) AdapterOption {
	return func(a *GenabilityAdapter) {
		if client != nil {
			a.client = client
		}
	}
}

// WithTokenSource authenticates with bearer tokens from ts instead of the
// application id/key pair. The token transport wraps whichever HTTP client
// the adapter ends up with, regardless of option order.
func WithTokenSource(ts oauth2.TokenSource) AdapterOption {
	return func(a *GenabilityAdapter) {
		a.tokenSource = ts
	}
}

// NewGenabilityAdapter builds an adapter from cfg: endpoint, credentials,
// user agent, proxy and timeout.
func NewGenabilityAdapter(cfg *genabilitybridge.Config, opts ...AdapterOption) (*GenabilityAdapter, error) {
	if cfg == nil {
		cfg = genabilitybridge.DefaultConfig()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = genabilitybridge.DefaultEndpoint
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = genabilitybridge.DefaultUserAgent
	}

	a := &GenabilityAdapter{
		Endpoint:       endpoint,
		ApplicationID:  cfg.ApplicationID,
		ApplicationKey: cfg.ApplicationKey,
		UserAgent:      userAgent,
		Accept:         acceptFor(cfg.Format),
		client:         &http.Client{Transport: transport, Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.tokenSource != nil {
		base := a.client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		a.client = &http.Client{
			Transport:     &oauth2.Transport{Source: a.tokenSource, Base: base},
			CheckRedirect: a.client.CheckRedirect,
			Jar:           a.client.Jar,
			Timeout:       a.client.Timeout,
		}
		a.ApplicationID, a.ApplicationKey = "", ""
	}
	return a, nil
}

func acceptFor(format string) string {
	if strings.EqualFold(format, "xml") {
		return "application/xml"
	}
	return "application/json"
}

func (a *GenabilityAdapter) Execute(ctx context.Context, req *genabilitybridge.NormalizedRequest) (*genabilitybridge.NormalizedResponse, error) {
	fullURL := a.resolve(req.Path, req.Query)

	body, contentType, err := encodeRequestBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", a.Accept)
	httpReq.Header.Set("User-Agent", a.UserAgent)
	if a.ApplicationID != "" {
		httpReq.SetBasicAuth(a.ApplicationID, a.ApplicationKey)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	headers := make(map[string]string)
	for k, vals := range resp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}

	out := &genabilitybridge.NormalizedResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Data:       data,
	}
	if len(data) > 0 {
		out.Body = string(data)
		if req.DecodeJSON && isJSONContentType(headers["content-type"]) {
			var decoded any
			if err := json.Unmarshal(data, &decoded); err == nil {
				out.Body = decoded
			}
		}
	}
	return out, nil
}

func (a *GenabilityAdapter) resolve(path string, query url.Values) string {
	full := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		full = strings.TrimRight(a.Endpoint, "/") + "/" + strings.TrimLeft(path, "/")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(full, "?") {
			sep = "&"
		}
		full += sep + query.Encode()
	}
	return full
}

func isJSONContentType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// encodeRequestBody returns the body reader and, for multipart forms, the
// content type carrying the boundary.
func encodeRequestBody(req *genabilitybridge.NormalizedRequest) (io.Reader, string, error) {
	if req.IsMultipart() {
		return encodeMultipart(req.Form)
	}
	if len(req.Body) == 0 {
		return nil, "", nil
	}
	return bytes.NewReader(req.Body), "", nil
}

// encodeMultipart writes byte slices and readers as file parts named after
// their field; everything else becomes a text field.
func encodeMultipart(fields map[string]any) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := fields[key].(type) {
		case nil:
			continue
		case []byte:
			part, err := w.CreateFormFile(key, key)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(v); err != nil {
				return nil, "", err
			}
		case io.Reader:
			part, err := w.CreateFormFile(key, key)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, v); err != nil {
				return nil, "", fmt.Errorf("copy %s: %w", key, err)
			}
		case string:
			if err := w.WriteField(key, v); err != nil {
				return nil, "", err
			}
		case fmt.Stringer:
			if err := w.WriteField(key, v.String()); err != nil {
				return nil, "", err
			}
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, "", fmt.Errorf("encode field %s: %w", key, err)
			}
			if err := w.WriteField(key, string(encoded)); err != nil {
				return nil, "", err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
