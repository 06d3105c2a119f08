package params

import "fmt"

type nestedKind int

const (
	nestedAbsent nestedKind = iota
	nestedSingle
	nestedMany
)

// Nested is the boundary shape of a nested entity argument: one object,
// a collection of objects, or nothing. The zero value is Absent.
type Nested struct {
	kind  nestedKind
	items []*Options
}

// Single wraps one object.
func Single(o *Options) Nested {
	return Nested{kind: nestedSingle, items: []*Options{o}}
}

// Many wraps a collection of objects. An empty collection is still present.
func Many(items ...*Options) Nested {
	if items == nil {
		items = []*Options{}
	}
	return Nested{kind: nestedMany, items: items}
}

// Absent is the explicit "not supplied" value.
func Absent() Nested {
	return Nested{}
}

// IsAbsent reports whether nothing was supplied.
func (n Nested) IsAbsent() bool {
	return n.kind == nestedAbsent
}

// Items returns the objects in order; a single object yields a
// one-element slice and an absent value yields nil.
func (n Nested) Items() []*Options {
	return n.items
}

// NestedFrom resolves a dynamically shaped argument. Anything that is not
// an object, a collection of objects, or absent fails with ErrInvalidInput.
func NestedFrom(v any) (Nested, error) {
	if IsAbsent(v) {
		return Absent(), nil
	}
	if n, ok := v.(Nested); ok {
		return n, nil
	}
	if o, ok := asOptions(v); ok {
		return Single(o), nil
	}

	var elems []any
	switch val := v.(type) {
	case []*Options:
		return Many(val...), nil
	case []any:
		elems = val
	case []map[string]any:
		for _, m := range val {
			elems = append(elems, m)
		}
	case []*Fragment:
		for _, f := range val {
			elems = append(elems, f)
		}
	default:
		return Absent(), fmt.Errorf("%w: expected object or collection of objects, got %T", ErrInvalidInput, v)
	}

	items := make([]*Options, 0, len(elems))
	for i, elem := range elems {
		o, ok := asOptions(elem)
		if !ok {
			return Absent(), fmt.Errorf("%w: element %d is %T, expected object", ErrInvalidInput, i, elem)
		}
		items = append(items, o)
	}
	return Many(items...), nil
}

// normalizeNested applies convert to every object of v. Absent input yields
// a nil slice so the caller's Fragment.Set drops the field.
func normalizeNested(field string, v any, convert func(*Options) (*Fragment, error)) ([]*Fragment, error) {
	n, err := NestedFrom(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if n.IsAbsent() {
		return nil, nil
	}
	out := make([]*Fragment, 0, len(n.items))
	for _, item := range n.items {
		f, err := convert(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out = append(out, f)
	}
	return out, nil
}
