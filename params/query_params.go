package params

import "fmt"

// PaginationParams produces pageStart and pageCount. Each accepts the wire
// key, its snake_case spelling, and a short alias, in that priority order.
func PaginationParams(o *Options) *Fragment {
	return NewFragment().
		Set("pageStart", o.Lookup("pageStart", "page_start", "page")).
		Set("pageCount", o.Lookup("pageCount", "page_count", "per_page"))
}

// SearchParams produces the search and sort fields of list endpoints.
func SearchParams(o *Options) *Fragment {
	return NewFragment().
		Set("search", o.Lookup("search")).
		Set("searchOn", MultiOptionHandler(o.Lookup("search_on"))).
		Set("startsWith", ConvertToBoolean(o.Lookup("starts_with"))).
		Set("endsWith", ConvertToBoolean(o.Lookup("ends_with"))).
		Set("isRegex", ConvertToBoolean(o.Lookup("is_regex"))).
		Set("sortOn", o.Lookup("sort_on")).
		Set("sortOrder", o.Lookup("sort_order"))
}

// PropertiesParams maps property names to {keyName, dataValue} objects.
// A property may be given as a bare value or as an object holding
// data_value. Properties whose data value is absent are dropped. Absent
// input yields a nil fragment.
func PropertiesParams(v any) (*Fragment, error) {
	if IsAbsent(v) {
		return nil, nil
	}
	props, ok := asOptions(v)
	if !ok {
		return nil, fmt.Errorf("properties: %w: expected object, got %T", ErrInvalidInput, v)
	}

	out := NewFragment()
	props.Range(func(key string, data any) bool {
		value := data
		if obj, isObj := asOptions(data); isObj {
			value = obj.Lookup("data_value")
		}
		if IsAbsent(value) {
			return true
		}
		name := camelize(key)
		out.Set(name, NewFragment().
			Set("keyName", name).
			Set("dataValue", value))
		return true
	})
	return out, nil
}
