package checkclock

import (
	"testing"
	"time"
)

func TestWorkHours(t *testing.T) {
	clockIn := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 3, 11, 17, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		in, out  *time.Time
		expected string
	}{
		{"full day", &clockIn, &clockOut, "09:30"},
		{"missing clock-out", &clockIn, nil, "-"},
		{"missing clock-in", nil, &clockOut, "-"},
		{"both missing", nil, nil, "-"},
	}
	for _, c := range cases {
		if got := WorkHours(c.in, c.out); got != c.expected {
			t.Errorf("%s: WorkHours() = %q, want %q", c.name, got, c.expected)
		}
	}
}

func TestWorkHours_SpansMidnight(t *testing.T) {
	clockIn := time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 3, 12, 6, 15, 0, 0, time.UTC)

	if got := WorkHours(&clockIn, &clockOut); got != "08:15" {
		t.Errorf("WorkHours() = %q, want %q", got, "08:15")
	}
}

func TestWorkHours_OverTwentyFourHours(t *testing.T) {
	clockIn := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

	// Hours are not clamped to a day.
	if got := WorkHours(&clockIn, &clockOut); got != "25:30" {
		t.Errorf("WorkHours() = %q, want %q", got, "25:30")
	}
}

func TestBreakDuration(t *testing.T) {
	start := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 11, 12, 45, 0, 0, time.UTC)

	if got := BreakDuration(&start, &end); got != "00:45" {
		t.Errorf("BreakDuration() = %q, want %q", got, "00:45")
	}
	if got := BreakDuration(&start, nil); got != MissingDuration {
		t.Errorf("BreakDuration() = %q, want %q", got, MissingDuration)
	}
}
