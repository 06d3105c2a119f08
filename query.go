package genabilitybridge

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"time"

	"github.com/opengovern/genability-bridge/params"
)

// encodeQuery flattens a mapping payload into query parameters. Nested
// values use bracket notation: collections as key[]=v, objects as
// key[sub]=v. Absent values are skipped.
func encodeQuery(payload any) (url.Values, error) {
	payload = byReference(payload)
	if params.IsAbsent(payload) {
		return nil, nil
	}

	q := url.Values{}
	switch p := payload.(type) {
	case *params.Fragment:
		p.Range(func(key string, value any) bool {
			addQueryValue(q, key, value)
			return true
		})
	case *params.Options:
		p.Range(func(key string, value any) bool {
			addQueryValue(q, key, value)
			return true
		})
	case map[string]any:
		addQueryMap(q, "", p)
	case url.Values:
		for k, vs := range p {
			q[k] = append(q[k], vs...)
		}
	default:
		return nil, fmt.Errorf("%w: query parameters must be a mapping, got %T", ErrInvalidInput, payload)
	}

	if len(q) == 0 {
		return nil, nil
	}
	return q, nil
}

func addQueryMap(q url.Values, prefix string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		addQueryValue(q, nestedKey(prefix, k), m[k])
	}
}

func nestedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}

func addQueryValue(q url.Values, key string, value any) {
	value = byReference(value)
	if params.IsAbsent(value) {
		return
	}

	switch v := value.(type) {
	case string:
		q.Add(key, v)
		return
	case []byte:
		q.Add(key, string(v))
		return
	case time.Time:
		q.Add(key, v.Format(time.RFC3339))
		return
	case fmt.Stringer:
		q.Add(key, v.String())
		return
	case *params.Fragment:
		v.Range(func(k string, sub any) bool {
			addQueryValue(q, nestedKey(key, k), sub)
			return true
		})
		return
	case *params.Options:
		v.Range(func(k string, sub any) bool {
			addQueryValue(q, nestedKey(key, k), sub)
			return true
		})
		return
	case map[string]any:
		addQueryMap(q, key, v)
		return
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			addQueryValue(q, key+"[]", rv.Index(i).Interface())
		}
		return
	}
	q.Add(key, fmt.Sprint(value))
}
