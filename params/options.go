// options.go
// ----------
// Options is the caller-facing option bag. Callers hand in keys in whatever
// convention they like ("page_start", "pageStart", "PAGE_START"); every key
// is stored under a canonical form so lookups never have to try each spelling.
//
// Fragment is the other side of the pipeline: an ordered wire-key -> value
// mapping that refuses absent values, so a serialized fragment never
// carries an explicit null.
package params

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrInvalidInput is returned when a nested entity argument is neither a
// single object, a collection of objects, nor absent.
var ErrInvalidInput = errors.New("invalid input")

type entry struct {
	key   string
	value any
}

// Options is an ordered option bag keyed by canonical key.
// A nil *Options is a valid, empty bag.
type Options struct {
	entries *orderedmap.OrderedMap[string, entry]
}

// NewOptions returns an empty option bag.
func NewOptions() *Options {
	return &Options{entries: orderedmap.New[string, entry]()}
}

// OptionsFrom builds an option bag from a plain map. Keys are inserted in
// sorted order so two bags built from the same map iterate identically.
func OptionsFrom(m map[string]any) *Options {
	o := NewOptions()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Set stores value under key. A later key with the same canonical form
// replaces the earlier value but keeps its position.
func (o *Options) Set(key string, value any) *Options {
	if o.entries == nil {
		o.entries = orderedmap.New[string, entry]()
	}
	o.entries.Set(CanonicalKey(key), entry{key: key, value: value})
	return o
}

// Get returns the value stored under any spelling of key.
func (o *Options) Get(key string) (any, bool) {
	if o == nil || o.entries == nil {
		return nil, false
	}
	e, ok := o.entries.Get(CanonicalKey(key))
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Lookup tries aliases in priority order and returns the first value that
// is not absent, or nil when none is set.
func (o *Options) Lookup(aliases ...string) any {
	for _, alias := range aliases {
		if v, ok := o.Get(alias); ok && !IsAbsent(v) {
			return v
		}
	}
	return nil
}

// Len returns the number of entries, absent values included.
func (o *Options) Len() int {
	if o == nil || o.entries == nil {
		return 0
	}
	return o.entries.Len()
}

// Range calls fn for every entry in insertion order with the key as the
// caller spelled it. Iteration stops when fn returns false.
func (o *Options) Range(fn func(key string, value any) bool) {
	if o == nil || o.entries == nil {
		return
	}
	for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Value.key, pair.Value.value) {
			return
		}
	}
}

// Map returns a plain copy keyed by the caller's spelling.
func (o *Options) Map() map[string]any {
	out := make(map[string]any, o.Len())
	o.Range(func(key string, value any) bool {
		out[key] = value
		return true
	})
	return out
}

// MarshalJSON encodes the bag with the caller's key spelling, in insertion order.
func (o *Options) MarshalJSON() ([]byte, error) {
	f := NewFragment()
	o.Range(func(key string, value any) bool {
		f.Set(key, value)
		return true
	})
	return f.MarshalJSON()
}

// Fragment is an ordered wire-key -> value mapping with no absent entries.
type Fragment struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewFragment returns an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{m: orderedmap.New[string, any]()}
}

// Set stores value under key unless the value is absent, in which case the
// key is left out entirely.
func (f *Fragment) Set(key string, value any) *Fragment {
	if IsAbsent(value) {
		return f
	}
	if f.m == nil {
		f.m = orderedmap.New[string, any]()
	}
	f.m.Set(key, value)
	return f
}

// Merge copies every entry of others into f, later fragments winning.
func (f *Fragment) Merge(others ...*Fragment) *Fragment {
	for _, other := range others {
		other.Range(func(key string, value any) bool {
			f.Set(key, value)
			return true
		})
	}
	return f
}

// Get returns the value stored under the exact wire key.
func (f *Fragment) Get(key string) (any, bool) {
	if f == nil || f.m == nil {
		return nil, false
	}
	return f.m.Get(key)
}

// Len returns the number of wire keys.
func (f *Fragment) Len() int {
	if f == nil || f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Keys returns the wire keys in insertion order.
func (f *Fragment) Keys() []string {
	keys := make([]string, 0, f.Len())
	f.Range(func(key string, _ any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for every entry in insertion order.
func (f *Fragment) Range(fn func(key string, value any) bool) {
	if f == nil || f.m == nil {
		return
	}
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Map returns a plain, unordered copy.
func (f *Fragment) Map() map[string]any {
	out := make(map[string]any, f.Len())
	f.Range(func(key string, value any) bool {
		out[key] = value
		return true
	})
	return out
}

// MarshalJSON encodes the fragment as a JSON object in insertion order.
func (f *Fragment) MarshalJSON() ([]byte, error) {
	if f == nil || f.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f.m)
}

// IsAbsent reports whether v means "unset": a nil interface or a nil
// pointer, map, slice, channel or func. Empty but non-nil values are present.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// CanonicalKey folds every spelling of a key onto one form.
func CanonicalKey(key string) string {
	return strings.ToLower(camelize(key))
}

// CamelCase converts an underscore key to wire camelCase: every character
// following an underscore is upper-cased, the underscore dropped, and a
// leading ASCII capital lowered. Absent input stays absent.
func CamelCase(key any) any {
	if IsAbsent(key) {
		return nil
	}
	return camelize(stringify(key))
}

func camelize(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); i++ {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(runes[i]))
		case runes[i] == '_' && i+1 < len(runes):
			i++
			b.WriteRune(unicode.ToUpper(runes[i]))
		default:
			b.WriteRune(runes[i])
		}
	}
	out := []rune(b.String())
	if len(out) > 0 && out[0] >= 'A' && out[0] <= 'Z' {
		out[0] = unicode.ToLower(out[0])
	}
	return string(out)
}

// asOptions reports whether v is shaped like a single object and returns it
// as an option bag.
func asOptions(v any) (*Options, bool) {
	switch val := v.(type) {
	case *Options:
		if val == nil {
			return nil, false
		}
		return val, true
	case Options:
		return &val, true
	case map[string]any:
		return OptionsFrom(val), true
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return OptionsFrom(m), true
	case *Fragment:
		if val == nil {
			return nil, false
		}
		o := NewOptions()
		val.Range(func(key string, value any) bool {
			o.Set(key, value)
			return true
		})
		return o, true
	}
	return nil, false
}
