// internal/time_parser.go
// ------------------------
// This internal package turns free-form date input into a time.Time for the
// parameter normalizer.
//
// Parsing runs in two stages:
//   - lenient: natural-language expressions ("yesterday", "next monday 3pm")
//     resolved against a base time. A day without a time of day resolves to
//     midnight. A match only counts when it covers the whole input, so a
//     stray "10:00" inside an ISO literal is not taken as the answer.
//   - strict: the wire layout itself, RFC 3339, then the broad literal
//     grammar understood by dateparse.
package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Wire layouts expected by the remote API. The offset carries no colon.
const (
	ISO8601Layout = "2006-01-02T15:04:05.0-0700"
	YMDLayout     = "2006-01-02"
)

// ErrEmptyTime is returned for blank input.
var ErrEmptyTime = errors.New("empty time string")

var strictLayouts = []string{
	ISO8601Layout,
	time.RFC3339Nano,
	YMDLayout,
}

// ParseTime parses s leniently first and strictly second. Zone-less input
// is read in loc; relative expressions are resolved against base.
func ParseTime(s string, base time.Time, loc *time.Location) (t time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyTime
	}

	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, fmt.Errorf("parse time %q: %v", s, r)
		}
	}()

	if parsed, ok := parseLenient(s, base.In(loc)); ok {
		return parsed, nil
	}
	return parseStrict(s, loc)
}

// parseLenient resolves s against midnight of base's day. A result that is
// not itself at midnight moved the clock ("3pm", "in 2 hours") and is
// resolved again against base.
func parseLenient(s string, base time.Time) (time.Time, bool) {
	midnight := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	day, ok := matchWhole(s, midnight)
	if !ok {
		return time.Time{}, false
	}
	if isMidnight(day) {
		return day, true
	}
	return matchWhole(s, base)
}

func matchWhole(s string, base time.Time) (time.Time, bool) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(s, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	if !strings.EqualFold(strings.TrimSpace(r.Text), s) {
		return time.Time{}, false
	}
	return r.Time, true
}

func isMidnight(t time.Time) bool {
	h, m, sec := t.Clock()
	return h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0
}

func parseStrict(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range strictLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
