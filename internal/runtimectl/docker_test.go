package runtimectl

import (
	"testing"
	"time"
)

func TestParseEngineTime(t *testing.T) {
	cases := []struct {
		in       string
		wantZero bool
	}{
		{"2026-08-28T10:15:04.123456789Z", false},
		{"0001-01-01T00:00:00Z", true},
		{"", true},
		{"garbage", true},
	}
	for _, c := range cases {
		got := parseEngineTime(c.in)
		if got.IsZero() != c.wantZero {
			t.Errorf("parseEngineTime(%q) = %v, wantZero=%v", c.in, got, c.wantZero)
		}
	}
}

func TestParseEngineTimeRoundTrip(t *testing.T) {
	want := time.Date(2026, 8, 28, 10, 15, 4, 0, time.UTC)
	got := parseEngineTime(want.Format(time.RFC3339Nano))
	if !got.Equal(want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}
