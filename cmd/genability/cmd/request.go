package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	genabilitybridge "github.com/opengovern/genability-bridge"
	"github.com/opengovern/genability-bridge/adapters"
	"github.com/opengovern/genability-bridge/params"
)

// queryFlags holds the option-bag style flags of get and delete.
type queryFlags struct {
	page       int
	perPage    int
	search     string
	searchOn   []string
	startsWith string
	endsWith   string
	isRegex    string
	sortOn     string
	sortOrder  string
	extra      []string
}

// bodyFlags holds the flags of post and put.
type bodyFlags struct {
	data         string
	tariffInputs []string
	rateInputs   []string
	properties   []string
	file         string
}

// newConnection builds the transport for a loaded config.
var newConnection = func(cfg *genabilitybridge.Config) (genabilitybridge.Connection, error) {
	return adapters.NewGenabilityAdapter(cfg)
}

func newQueryCommand(method string) *cobra.Command {
	var f queryFlags
	c := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: method + " a path with normalized query parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := f.options(cmd)
			if err != nil {
				return err
			}
			return dispatch(cmd.Context(), cmd.OutOrStdout(), method, args[0], payload)
		},
	}
	c.Flags().IntVar(&f.page, "page", 0, "page start")
	c.Flags().IntVar(&f.perPage, "per-page", 0, "page count")
	c.Flags().StringVar(&f.search, "search", "", "search text")
	c.Flags().StringSliceVar(&f.searchOn, "search-on", nil, "fields to search on")
	c.Flags().StringVar(&f.startsWith, "starts-with", "", "only match results starting with the search text")
	c.Flags().StringVar(&f.endsWith, "ends-with", "", "only match results ending with the search text")
	c.Flags().StringVar(&f.isRegex, "is-regex", "", "treat the search text as a regular expression")
	c.Flags().StringVar(&f.sortOn, "sort-on", "", "comma separated sort fields")
	c.Flags().StringVar(&f.sortOrder, "sort-order", "", "comma separated ASC/DESC per sort field")
	c.Flags().StringArrayVar(&f.extra, "param", nil, "extra query parameter key=value (repeatable)")
	return c
}

func (f *queryFlags) options(cmd *cobra.Command) (*params.Fragment, error) {
	opts := params.NewOptions()
	if cmd.Flags().Changed("page") {
		opts.Set("page", f.page)
	}
	if cmd.Flags().Changed("per-page") {
		opts.Set("per_page", f.perPage)
	}
	if f.search != "" {
		opts.Set("search", f.search)
	}
	if len(f.searchOn) > 0 {
		opts.Set("search_on", f.searchOn)
	}
	opts.Set("starts_with", f.startsWith).
		Set("ends_with", f.endsWith).
		Set("is_regex", f.isRegex)
	if f.sortOn != "" {
		opts.Set("sort_on", f.sortOn)
	}
	if f.sortOrder != "" {
		opts.Set("sort_order", f.sortOrder)
	}

	payload := params.PaginationParams(opts).Merge(params.SearchParams(opts))
	for _, kv := range f.extra {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--param %q: expected key=value", kv)
		}
		payload.Set(params.CamelCase(key).(string), value)
	}
	return payload, nil
}

func newBodyCommand(method string) *cobra.Command {
	var f bodyFlags
	c := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: method + " a JSON or multipart body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := f.payload()
			if err != nil {
				return err
			}
			return dispatch(cmd.Context(), cmd.OutOrStdout(), method, args[0], payload)
		},
	}
	c.Flags().StringVar(&f.data, "data", "", "JSON object sent as the body")
	c.Flags().StringArrayVar(&f.tariffInputs, "tariff-input", nil, "tariff input as a JSON object (repeatable)")
	c.Flags().StringArrayVar(&f.rateInputs, "rate-input", nil, "rate input as a JSON object (repeatable)")
	c.Flags().StringArrayVar(&f.properties, "property", nil, "custom property key=value (repeatable)")
	c.Flags().StringVar(&f.file, "file", "", "file uploaded as fileData (switches to multipart)")
	return c
}

func (f *bodyFlags) payload() (*params.Fragment, error) {
	payload := params.NewFragment()
	if f.data != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(f.data), &data); err != nil {
			return nil, fmt.Errorf("--data: %w", err)
		}
		params.OptionsFrom(data).Range(func(key string, value any) bool {
			payload.Set(key, value)
			return true
		})
	}

	tariffs, err := params.TariffInputsParams(decodeObjects(f.tariffInputs))
	if err != nil {
		return nil, err
	}
	rates, err := params.RateInputsParams(decodeObjects(f.rateInputs))
	if err != nil {
		return nil, err
	}
	props, err := params.PropertiesParams(keyValues(f.properties))
	if err != nil {
		return nil, err
	}
	payload.Set("tariffInputs", tariffs).
		Set("rateInputs", rates).
		Set("propertyInputs", props)

	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, err
		}
		payload.Set("fileData", data)
	}
	return payload, nil
}

// decodeObjects parses each flag value as JSON. Malformed JSON is kept as
// the raw string so the normalizer reports it as invalid input.
func decodeObjects(values []string) any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			out = append(out, v)
			continue
		}
		out = append(out, decoded)
	}
	return out
}

func keyValues(values []string) any {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]any, len(values))
	for _, kv := range values {
		key, value, _ := strings.Cut(kv, "=")
		m[key] = value
	}
	return m
}

func dispatch(ctx context.Context, out io.Writer, method, path string, payload *params.Fragment) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := genabilitybridge.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	conn, err := newConnection(cfg)
	if err != nil {
		return err
	}
	client, err := genabilitybridge.NewClient(conn, cfg)
	if err != nil {
		return err
	}

	var opts []genabilitybridge.CallOption
	if unformatted {
		opts = append(opts, genabilitybridge.Unformatted())
	}

	if raw {
		resp, err := client.Raw(ctx, method, path, payload, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "HTTP %d\n", resp.StatusCode)
		_, err = out.Write(resp.Data)
		return err
	}

	var body any
	switch method {
	case http.MethodGet:
		body, err = client.Get(ctx, path, payload, opts...)
	case http.MethodDelete:
		body, err = client.Delete(ctx, path, payload, opts...)
	case http.MethodPost:
		body, err = client.Post(ctx, path, payload, opts...)
	case http.MethodPut:
		body, err = client.Put(ctx, path, payload, opts...)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
