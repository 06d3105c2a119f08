package params

import (
	"time"

	"github.com/opengovern/genability-bridge/internal"
)

// DateOutcome says why a date field did or did not make it onto the wire.
type DateOutcome int

const (
	// DateAbsent means no input was supplied.
	DateAbsent DateOutcome = iota
	// DateFormatted means Value holds the wire string.
	DateFormatted
	// DateUnparsable means input was supplied but could not be read as a date.
	// The field is still omitted.
	DateUnparsable
)

func (o DateOutcome) String() string {
	switch o {
	case DateFormatted:
		return "formatted"
	case DateUnparsable:
		return "unparsable"
	default:
		return "absent"
	}
}

// DateResult is the outcome of formatting one date field.
type DateResult struct {
	Value   string
	Outcome DateOutcome
	// Err holds the parse failure for DateUnparsable results.
	Err error
}

// Wire returns the formatted value, or nil when the field must be omitted.
func (r DateResult) Wire() any {
	if r.Outcome != DateFormatted {
		return nil
	}
	return r.Value
}

// Normalizer carries the clock and zone used to read free-form dates.
// The zero value reads zone-less input as UTC against time.Now.
type Normalizer struct {
	// Now anchors relative expressions such as "yesterday".
	Now func() time.Time
	// Location is applied to input that carries no zone.
	Location *time.Location
}

// Default is the normalizer behind the package-level functions.
var Default = &Normalizer{}

func (n *Normalizer) now() time.Time {
	if n == nil || n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

func (n *Normalizer) location() *time.Location {
	if n == nil || n.Location == nil {
		return time.UTC
	}
	return n.Location
}

// FormatISO8601 renders v as the API's timestamp: one decimal of
// sub-second precision and an offset without a colon, e.g.
// 2024-01-01T00:00:00.0+0000. time.Time values are formatted directly in
// their own zone; anything else is parsed from its string form.
// Failures never escape: they become DateUnparsable.
func (n *Normalizer) FormatISO8601(v any) DateResult {
	return n.format(v, internal.ISO8601Layout)
}

// FormatYMD renders v as YYYY-MM-DD with the same input rules as FormatISO8601.
func (n *Normalizer) FormatYMD(v any) DateResult {
	return n.format(v, internal.YMDLayout)
}

func (n *Normalizer) format(v any, layout string) DateResult {
	if IsAbsent(v) {
		return DateResult{Outcome: DateAbsent}
	}
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case *time.Time:
		t = *val
	default:
		parsed, err := internal.ParseTime(stringify(v), n.now(), n.location())
		if err != nil {
			return DateResult{Outcome: DateUnparsable, Err: err}
		}
		t = parsed
	}
	return DateResult{Value: t.Format(layout), Outcome: DateFormatted}
}

// FormatISO8601 formats v with the Default normalizer.
func FormatISO8601(v any) DateResult {
	return Default.FormatISO8601(v)
}

// FormatYMD formats v with the Default normalizer.
func FormatYMD(v any) DateResult {
	return Default.FormatYMD(v)
}
