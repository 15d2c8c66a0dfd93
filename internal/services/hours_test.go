package services

import (
	"testing"
	"time"
)

func TestComputeHours(t *testing.T) {
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		span             time.Duration
		worked, overtime float64
	}{
		"zero length":       {0, 0, 0},
		"six hours":         {6 * time.Hour, 6, 0},
		"exactly threshold": {8 * time.Hour, 8, 0},
		"nine and a half":   {9*time.Hour + 30*time.Minute, 8, 1.5},
		"longer than a day": {30 * time.Hour, 8, 22},
		"one minute":        {time.Minute, 0.02, 0},
		"twenty minutes":    {20 * time.Minute, 0.33, 0},
		"overtime forty":    {8*time.Hour + 40*time.Minute, 8, 0.67},
		"half away from 0":  {7*time.Minute + 30*time.Second, 0.13, 0},
		"overtime half":     {8*time.Hour + 7*time.Minute + 30*time.Second, 8, 0.13},
		"below half":        {17 * time.Second, 0, 0},
	}

	for name, tc := range cases {
		worked, overtime := ComputeHours(start, start.Add(tc.span))
		if worked != tc.worked || overtime != tc.overtime {
			t.Fatalf("%s: expected (%v, %v), got (%v, %v)", name, tc.worked, tc.overtime, worked, overtime)
		}
	}
}
