package params

import (
	"testing"
	"time"
)

func fixedNormalizer() *Normalizer {
	return &Normalizer{
		Now: func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestFormatISO8601(t *testing.T) {
	t.Parallel()

	east := time.FixedZone("east", 5*3600)
	west := time.FixedZone("west", -(5*3600 + 30*60))

	tests := []struct {
		name    string
		in      any
		want    string
		outcome DateOutcome
	}{
		{"date literal", "2024-01-01", "2024-01-01T00:00:00.0+0000", DateFormatted},
		{"rfc3339 with colon offset", "2024-01-01T10:30:00+05:00", "2024-01-01T10:30:00.0+0500", DateFormatted},
		{"wire form is stable", "2024-01-01T00:00:00.0+0000", "2024-01-01T00:00:00.0+0000", DateFormatted},
		{"positive offset time", time.Date(2024, 6, 1, 8, 0, 0, 250_000_000, east), "2024-06-01T08:00:00.2+0500", DateFormatted},
		{"negative offset time", time.Date(2024, 6, 1, 8, 0, 0, 0, west), "2024-06-01T08:00:00.0-0530", DateFormatted},
		{"natural language", "yesterday", "2024-03-09T00:00:00.0+0000", DateFormatted},
		{"weekday with time", "next monday 3pm", "2024-03-11T15:00:00.0+0000", DateFormatted},
		{"nil", nil, "", DateAbsent},
		{"garbage", "not a date", "", DateUnparsable},
		{"blank", "   ", "", DateUnparsable},
	}

	n := fixedNormalizer()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := n.FormatISO8601(tc.in)
			if got.Outcome != tc.outcome {
				t.Fatalf("Outcome = %v, want %v (err=%v)", got.Outcome, tc.outcome, got.Err)
			}
			if tc.want != "" && got.Value != tc.want {
				t.Errorf("Value = %q, want %q", got.Value, tc.want)
			}
			if tc.outcome != DateFormatted && got.Wire() != nil {
				t.Errorf("Wire() = %#v, want nil", got.Wire())
			}
		})
	}
}

func TestFormatISO8601_DayOnlyIgnoresClock(t *testing.T) {
	t.Parallel()

	clocks := []time.Time{
		time.Date(2024, 3, 10, 15, 37, 12, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, time.UTC),
	}
	tests := []struct {
		in   string
		want string
	}{
		{"3/3/2024", "2024-03-03T00:00:00.0+0000"},
		{"Jan 2", "2024-01-02T00:00:00.0+0000"},
		{"2024-03-03", "2024-03-03T00:00:00.0+0000"},
	}
	for _, now := range clocks {
		n := &Normalizer{Now: func() time.Time { return now }}
		for _, tc := range tests {
			if got := n.FormatISO8601(tc.in); got.Value != tc.want {
				t.Errorf("now=%s FormatISO8601(%q) = %q (%v), want %q", now.Format(time.TimeOnly), tc.in, got.Value, got.Err, tc.want)
			}
		}
	}
}

func TestFormatISO8601_UnparsableCarriesError(t *testing.T) {
	t.Parallel()

	got := FormatISO8601("not a date")
	if got.Err == nil {
		t.Fatal("expected parse error to be recorded")
	}
	if got.Wire() != nil {
		t.Errorf("Wire() = %#v, want nil", got.Wire())
	}
}

func TestFormatYMD(t *testing.T) {
	t.Parallel()

	n := fixedNormalizer()

	tests := []struct {
		name    string
		in      any
		want    string
		outcome DateOutcome
	}{
		{"time value", time.Date(2024, 3, 3, 23, 59, 0, 0, time.UTC), "2024-03-03", DateFormatted},
		{"pointer to time", ptrTime(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)), "2024-03-03", DateFormatted},
		{"string", "2024-03-03", "2024-03-03", DateFormatted},
		{"timestamp string", "2024-03-03T08:15:00Z", "2024-03-03", DateFormatted},
		{"yesterday", "yesterday", "2024-03-09", DateFormatted},
		{"nil", nil, "", DateAbsent},
		{"garbage", "not a date", "", DateUnparsable},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := n.FormatYMD(tc.in)
			if got.Outcome != tc.outcome {
				t.Fatalf("Outcome = %v, want %v (err=%v)", got.Outcome, tc.outcome, got.Err)
			}
			if got.Value != tc.want {
				t.Errorf("Value = %q, want %q", got.Value, tc.want)
			}
		})
	}
}

func TestNormalizer_Location(t *testing.T) {
	t.Parallel()

	n := &Normalizer{Location: time.FixedZone("pst", -8*3600)}
	got := n.FormatISO8601("2024-01-01")
	if got.Value != "2024-01-01T00:00:00.0-0800" {
		t.Errorf("Value = %q, want zone-less input read in -0800", got.Value)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
