package scores

import "testing"

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		name             string
		completed, total int
		want             int
	}{
		{"no items", 0, 0, 0},
		{"none done", 0, 4, 0},
		{"all done", 3, 3, 100},
		{"half", 1, 2, 50},
		{"one of three rounds", 1, 3, 33},
		{"two of three rounds", 2, 3, 67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompletionRate(tc.completed, tc.total); got != tc.want {
				t.Errorf("CompletionRate(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}

func TestDietAdherence(t *testing.T) {
	cases := []struct {
		name                     string
		followed, partial, total int
		want                     int
	}{
		{"no meals", 0, 0, 0, 0},
		{"all skipped", 0, 0, 3, 0},
		{"all followed", 4, 0, 4, 100},
		{"partial counts half", 0, 2, 2, 50},
		{"two followed one partial one skipped", 2, 1, 4, 63},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DietAdherence(tc.followed, tc.partial, tc.total); got != tc.want {
				t.Errorf("DietAdherence(%d, %d, %d) = %d, want %d", tc.followed, tc.partial, tc.total, got, tc.want)
			}
		})
	}
}

func TestFocusRatio(t *testing.T) {
	cases := []struct {
		name         string
		focus, total float64
		want         int
	}{
		{"no tracked time", 0, 0, 0},
		{"all focus", 8, 8, 100},
		{"quarter focus", 2, 8, 25},
		{"rounds nearest", 1, 3, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FocusRatio(tc.focus, tc.total); got != tc.want {
				t.Errorf("FocusRatio(%v, %v) = %d, want %d", tc.focus, tc.total, got, tc.want)
			}
		})
	}
}

func TestOverall(t *testing.T) {
	if got := Overall(100, 50, 63, 0); got != 53 {
		t.Errorf("Overall(100, 50, 63, 0) = %d, want 53", got)
	}
	if got := Overall(0, 0, 0, 0); got != 0 {
		t.Errorf("Overall zero = %d, want 0", got)
	}
	if got := Overall(100, 100, 100, 100); got != 100 {
		t.Errorf("Overall full = %d, want 100", got)
	}
}
