package models

import "testing"

func TestRecomputeAvailable(t *testing.T) {
	cases := []struct {
		newTotal, sold, want int
	}{
		{40, 0, 40},
		{40, 10, 30},
		{10, 10, 0},
		{5, 10, 0}, // capacity shrunk below sold count, floors at zero
	}

	for _, tc := range cases {
		if got := RecomputeAvailable(tc.newTotal, tc.sold); got != tc.want {
			t.Errorf("RecomputeAvailable(%d, %d) = %d, want %d", tc.newTotal, tc.sold, got, tc.want)
		}
	}
}

func TestSold(t *testing.T) {
	trip := Trip{TotalSeats: 40, AvailableSeats: 33}
	if got := trip.Sold(); got != 7 {
		t.Errorf("Sold() = %d, want 7", got)
	}
}
