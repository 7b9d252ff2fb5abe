package model

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	pst := time.FixedZone("PST", -8*60*60)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"utc", time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"east of utc after local midnight", time.Date(2024, 5, 11, 1, 0, 0, 0, msk), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"west of utc before local midnight", time.Date(2024, 5, 10, 20, 0, 0, 0, pst), time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DateOf(tc.in)
			if !got.Equal(tc.want) || got.Location() != time.UTC {
				t.Errorf("DateOf(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSameDate(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	stored := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	if !SameDate(&stored, time.Date(2024, 5, 11, 2, 59, 0, 0, msk)) {
		t.Error("02:59 MSK on May 11 is still May 10 in UTC")
	}
	if SameDate(&stored, time.Date(2024, 5, 11, 3, 0, 0, 0, msk)) {
		t.Error("03:00 MSK on May 11 is May 11 in UTC")
	}
	if SameDate(nil, stored) {
		t.Error("nil date matched")
	}
}
