package usage

import "testing"

func TestAccumulate(t *testing.T) {
	testCases := []struct {
		name                   string
		existingIn, existingOut int64
		deltaIn, deltaOut       int64
		wantIn, wantOut         int64
	}{
		{name: "first call on fresh record", existingIn: 0, existingOut: 0, deltaIn: 500, deltaOut: 120, wantIn: 500, wantOut: 120},
		{name: "increments existing totals", existingIn: 100, existingOut: 50, deltaIn: 500, deltaOut: 120, wantIn: 600, wantOut: 170},
		{name: "zero delta keeps totals", existingIn: 42, existingOut: 7, deltaIn: 0, deltaOut: 0, wantIn: 42, wantOut: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotIn, gotOut := Accumulate(tc.existingIn, tc.existingOut, tc.deltaIn, tc.deltaOut)
			if gotIn != tc.wantIn || gotOut != tc.wantOut {
				t.Errorf("Accumulate() = (%d, %d), want (%d, %d)", gotIn, gotOut, tc.wantIn, tc.wantOut)
			}
		})
	}
}

// Totals must never decrease across any sequence of calls.
func TestAccumulateMonotonic(t *testing.T) {
	var in, out int64 = 0, 0
	deltas := []struct{ in, out int64 }{{500, 120}, {0, 0}, {1, 1}, {10000, 2500}}

	for _, d := range deltas {
		newIn, newOut := Accumulate(in, out, d.in, d.out)
		if newIn < in || newOut < out {
			t.Fatalf("totals decreased: (%d, %d) -> (%d, %d)", in, out, newIn, newOut)
		}
		in, out = newIn, newOut
	}
}

func TestAmortize(t *testing.T) {
	testCases := []struct {
		name             string
		totalIn, totalOut int64
		count             int
		wantIn, wantOut   int64
	}{
		{name: "even split", totalIn: 100, totalOut: 50, count: 10, wantIn: 10, wantOut: 5},
		{name: "rounds up", totalIn: 101, totalOut: 1, count: 10, wantIn: 11, wantOut: 1},
		{name: "single item", totalIn: 77, totalOut: 33, count: 1, wantIn: 77, wantOut: 33},
		{name: "zero totals", totalIn: 0, totalOut: 0, count: 5, wantIn: 0, wantOut: 0},
		{name: "more items than tokens", totalIn: 3, totalOut: 2, count: 7, wantIn: 1, wantOut: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotIn, gotOut := Amortize(tc.totalIn, tc.totalOut, tc.count)
			if gotIn != tc.wantIn || gotOut != tc.wantOut {
				t.Errorf("Amortize(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tc.totalIn, tc.totalOut, tc.count, gotIn, gotOut, tc.wantIn, tc.wantOut)
			}
		})
	}
}

// sum(perItem)*count - total must stay within [0, count-1] for any inputs:
// the ceiling division may overcount but never loses tokens.
func TestAmortizeConservation(t *testing.T) {
	cases := []struct {
		totalIn, totalOut int64
		count             int
	}{
		{1000, 250, 3},
		{999, 17, 7},
		{1, 1, 20},
		{123456, 7890, 11},
	}

	for _, tc := range cases {
		perIn, perOut := Amortize(tc.totalIn, tc.totalOut, tc.count)
		n := int64(tc.count)

		overIn := perIn*n - tc.totalIn
		if overIn < 0 || overIn > n-1 {
			t.Errorf("input overcount %d out of [0, %d] for total=%d count=%d", overIn, n-1, tc.totalIn, tc.count)
		}
		overOut := perOut*n - tc.totalOut
		if overOut < 0 || overOut > n-1 {
			t.Errorf("output overcount %d out of [0, %d] for total=%d count=%d", overOut, n-1, tc.totalOut, tc.count)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	p := Pricing{InputPerMillion: 3.0, OutputPerMillion: 15.0, FXRate: 0.92}

	got := EstimateCost(1_000_000, 1_000_000, p)
	want := (3.0 + 15.0) * 0.92
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("EstimateCost() = %v, want %v", got, want)
	}

	if got := EstimateCost(0, 0, p); got != 0 {
		t.Errorf("EstimateCost(0, 0) = %v, want 0", got)
	}
}
