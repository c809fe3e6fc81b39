package timezone

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

// WireLayout is the naive local datetime exchanged with the client.
const WireLayout = "2006-01-02T15:04:05"

var ErrInvalidDatetime = errors.New("invalid datetime, expected YYYY-MM-DDTHH:MM:SS")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Parse reads a wire datetime. Naive values are interpreted in loc;
// values carrying an explicit offset (RFC 3339, or a trailing Z) keep it.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDatetime
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	for _, layout := range []string{WireLayout, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDatetime
}

// Format renders t as a naive local datetime in loc.
func Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(WireLayout)
}
