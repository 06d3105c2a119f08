package params

import "testing"

func TestConvertToBoolean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"false string", "false", nil},
		{"empty string", "", nil},
		{"truthy string", "yes", "true"},
		{"true string", "true", "true"},
		{"capitalized false is truthy", "False", "true"},
		{"bool true passes through", true, true},
		{"bool false passes through", false, false},
		{"nil passes through", nil, nil},
		{"number passes through", 1, 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ConvertToBoolean(tc.in); got != tc.want {
				t.Errorf("ConvertToBoolean(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestConvertToUpcase(t *testing.T) {
	t.Parallel()

	if got := ConvertToUpcase(nil); got != nil {
		t.Errorf("ConvertToUpcase(nil) = %#v, want nil", got)
	}
	if got := ConvertToUpcase("energy"); got != "ENERGY" {
		t.Errorf("ConvertToUpcase(energy) = %#v, want ENERGY", got)
	}
	if got := ConvertToUpcase(42); got != "42" {
		t.Errorf("ConvertToUpcase(42) = %#v, want \"42\"", got)
	}
}

func TestMultiOptionHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string slice", []string{"name", "id"}, "NAME,ID"},
		{"any slice", []any{"name", 7}, "NAME,7"},
		{"scalar", "name", "NAME"},
		{"already joined", "NAME,ID", "NAME,ID"},
		{"empty slice", []string{}, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := MultiOptionHandler(tc.in); got != tc.want {
				t.Errorf("MultiOptionHandler(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"custom_field", "customField"},
		{"customField", "customField"},
		{"CustomField", "customField"},
		{"billing_period_start", "billingPeriodStart"},
		{"trailing_", "trailing_"},
		{"x", "x"},
	}

	for _, tc := range tests {
		if got := CamelCase(tc.in); got != tc.want {
			t.Errorf("CamelCase(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalKey(t *testing.T) {
	t.Parallel()

	want := CanonicalKey("pageStart")
	for _, k := range []string{"page_start", "PageStart", "pagestart"} {
		if got := CanonicalKey(k); got != want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", k, got, want)
		}
	}
}
