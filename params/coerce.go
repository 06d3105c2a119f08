package params

import (
	"fmt"
	"reflect"
	"strings"
)

// ConvertToBoolean implements the tri-state boolean used by search and
// rate band flags. Non-string values pass through untouched (so a real
// false still reaches the wire). A string resolves to "true" unless it is
// empty or exactly "false", in which case the field is omitted: a string
// can never produce a wire false.
func ConvertToBoolean(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if s == "" || s == "false" {
		return nil
	}
	return "true"
}

// ConvertToUpcase returns the upper-cased string form of v.
func ConvertToUpcase(v any) any {
	if IsAbsent(v) {
		return nil
	}
	return strings.ToUpper(stringify(v))
}

// MultiOptionHandler turns a collection into one comma separated,
// upper-cased string; scalars are just upper-cased.
func MultiOptionHandler(v any) any {
	if IsAbsent(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = strings.ToUpper(stringify(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ",")
	}
	return strings.ToUpper(stringify(v))
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
