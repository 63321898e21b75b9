package model

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusSpawning, true},
		{StatusSpawning, StatusActive, true},
		{StatusActive, StatusExpired, true},
		{StatusActive, StatusStopped, true},
		{StatusActive, StatusError, true},
		{StatusExpired, StatusActive, false},
		{StatusStopped, StatusActive, false},
		{StatusError, StatusActive, false},
		{StatusPending, StatusActive, false},
		{StatusActive, StatusSpawning, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusExpired, StatusStopped, StatusError} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusSpawning, StatusActive} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestSessionNetworkName(t *testing.T) {
	got := SessionNetworkName("abc-123")
	if got != "session-network-abc-123" {
		t.Errorf("SessionNetworkName = %q", got)
	}
}
