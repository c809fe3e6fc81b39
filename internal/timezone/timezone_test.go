package timezone

import (
	"testing"
	"time"
)

func TestParseNaiveUsesLocation(t *testing.T) {
	loc := Location("America/Sao_Paulo")

	got, err := Parse("2030-03-10T10:15:00", loc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2030, 3, 10, 10, 15, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseKeepsExplicitOffset(t *testing.T) {
	loc := Location("America/Sao_Paulo")

	got, err := Parse("2030-03-10T10:15:00Z", loc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2030, 3, 10, 10, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "tomorrow", "2030-13-01T10:00:00"} {
		if _, err := Parse(s, time.UTC); err == nil {
			t.Errorf("Parse(%q) succeeded", s)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	loc := Location("Europe/Madrid")
	in := "2031-07-01T09:30:00"

	parsed, err := Parse(in, loc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out := Format(parsed.UTC(), loc); out != in {
		t.Fatalf("Format = %q, want %q", out, in)
	}
}

func TestLocationFallsBack(t *testing.T) {
	if Location("Not/AZone").String() != DefaultTimezone {
		t.Fatal("unknown zone should fall back to the default")
	}
}
