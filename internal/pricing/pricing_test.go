package pricing

import "testing"

func defaultCalc() Calculator {
	return Calculator{Tiers: DefaultTiers(), MinCharge: 50}
}

func TestCostTierBoundaries(t *testing.T) {
	calc := defaultCalc()

	cases := []struct {
		chars int
		want  int64
	}{
		{0, 100},
		{500, 100},
		{1_000, 100},
		{1_001, 200},
		{5_000, 200},
		{5_001, 300},
		{10_000, 300},
		{10_001, 500},
		{50_000, 500},
		{50_001, 800},
		{100_000, 800},
		{100_001, 1_000},
		{10_000_000, 1_000},
	}
	for _, tc := range cases {
		if got := calc.Cost(tc.chars); got != tc.want {
			t.Errorf("Cost(%d) = %d, want %d", tc.chars, got, tc.want)
		}
	}
}

func TestCostMonotonicNonDecreasing(t *testing.T) {
	calc := defaultCalc()

	prev := int64(0)
	for _, chars := range []int{0, 1, 999, 1_000, 1_001, 4_999, 5_001, 9_999, 10_001, 49_999, 50_001, 99_999, 100_001, 1_000_000} {
		got := calc.Cost(chars)
		if got < prev {
			t.Fatalf("Cost(%d) = %d decreased below %d", chars, got, prev)
		}
		prev = got
	}
}

func TestCostNeverBelowMinCharge(t *testing.T) {
	calc := Calculator{
		Tiers:     []Tier{{MaxChars: 100, Price: 10}, {MaxChars: 0, Price: 500}},
		MinCharge: 50,
	}

	if got := calc.Cost(1); got != 50 {
		t.Fatalf("Cost(1) = %d, want clamped min charge 50", got)
	}
	if got := calc.Cost(5_000); got != 500 {
		t.Fatalf("Cost(5000) = %d, want 500", got)
	}
}

func TestCostNoMatchingTierFallsBackToMinCharge(t *testing.T) {
	// Bounded tiers only; counts past the last bound hit the defensive path.
	calc := Calculator{
		Tiers:     []Tier{{MaxChars: 100, Price: 200}},
		MinCharge: 50,
	}

	if got := calc.Cost(101); got != 50 {
		t.Fatalf("Cost(101) = %d, want min charge 50", got)
	}
}

func TestCostIsDeterministic(t *testing.T) {
	calc := defaultCalc()

	for _, chars := range []int{0, 1_000, 42_000, 123_456} {
		first := calc.Cost(chars)
		second := calc.Cost(chars)
		if first != second {
			t.Fatalf("Cost(%d) returned %d then %d", chars, first, second)
		}
	}
}
