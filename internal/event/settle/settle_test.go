package settle

import (
	"math"
	"testing"
)

func TestComputeWorkedExample(t *testing.T) {
	// A paid 30, B paid 0, C paid 90, per head 40.
	// B owes 40, A owes 10, C is owed 50.
	balances := []Balance{
		{UserID: 1, AmountPaid: 30},
		{UserID: 2, AmountPaid: 0},
		{UserID: 3, AmountPaid: 90},
	}

	got := Compute(balances, 40)

	want := []Transfer{
		{From: 2, To: 3, Amount: 40},
		{From: 1, To: 3, Amount: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d transfers, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transfer %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestComputeAllSettled(t *testing.T) {
	balances := []Balance{
		{UserID: 1, AmountPaid: 25},
		{UserID: 2, AmountPaid: 25},
		{UserID: 3, AmountPaid: 25},
	}

	got := Compute(balances, 25)
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	if len(got) != 0 {
		t.Errorf("expected no transfers, got %v", got)
	}
}

func TestComputeEmptyAndSingle(t *testing.T) {
	if got := Compute(nil, 10); len(got) != 0 {
		t.Errorf("zero participants: expected no transfers, got %v", got)
	}

	single := []Balance{{UserID: 7, AmountPaid: 0}}
	if got := Compute(single, 10); len(got) != 0 {
		t.Errorf("single participant: expected no transfers, got %v", got)
	}
}

func TestComputeIgnoresNearZeroBalances(t *testing.T) {
	balances := []Balance{
		{UserID: 1, AmountPaid: 20.005},
		{UserID: 2, AmountPaid: 19.995},
	}

	if got := Compute(balances, 20); len(got) != 0 {
		t.Errorf("balances within epsilon should settle to nothing, got %v", got)
	}
}

func TestComputeZeroSum(t *testing.T) {
	cases := []struct {
		name     string
		balances []Balance
		perHead  float64
	}{
		{
			name: "mixed debtors and creditors",
			balances: []Balance{
				{UserID: 1, AmountPaid: 30},
				{UserID: 2, AmountPaid: 0},
				{UserID: 3, AmountPaid: 90},
			},
			perHead: 40,
		},
		{
			name: "one payer covers everyone",
			balances: []Balance{
				{UserID: 1, AmountPaid: 100},
				{UserID: 2, AmountPaid: 0},
				{UserID: 3, AmountPaid: 0},
				{UserID: 4, AmountPaid: 0},
			},
			perHead: 25,
		},
		{
			name: "multiple debtors one creditor",
			balances: []Balance{
				{UserID: 1, AmountPaid: 50},
				{UserID: 2, AmountPaid: 25},
				{UserID: 3, AmountPaid: 15},
			},
			perHead: 30,
		},
		{
			name: "repeating-decimal per head",
			balances: []Balance{
				{UserID: 1, AmountPaid: 10.25},
				{UserID: 2, AmountPaid: 0},
				{UserID: 3, AmountPaid: 10.25},
			},
			perHead: 20.5 / 3.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transfers := Compute(tc.balances, tc.perHead)

			var transferred, owed float64
			for _, tr := range transfers {
				transferred += tr.Amount
			}
			for _, b := range tc.balances {
				if diff := b.AmountPaid - tc.perHead; diff > 0 {
					owed += diff
				}
			}

			if math.Abs(transferred-owed) > Epsilon {
				t.Errorf("sum of transfers %.4f != sum of positive balances %.4f", transferred, owed)
			}
		})
	}
}

func TestComputeReplayZeroesBalances(t *testing.T) {
	balances := []Balance{
		{UserID: 1, AmountPaid: 80},
		{UserID: 2, AmountPaid: 5},
		{UserID: 3, AmountPaid: 15},
		{UserID: 4, AmountPaid: 0},
	}
	perHead := 25.0

	transfers := Compute(balances, perHead)

	net := map[int64]float64{}
	for _, b := range balances {
		net[b.UserID] = b.AmountPaid - perHead
	}
	for _, tr := range transfers {
		net[tr.From] += tr.Amount
		net[tr.To] -= tr.Amount
	}

	for id, remaining := range net {
		if math.Abs(remaining) > Epsilon {
			t.Errorf("user %d not settled after replay: %.4f remaining", id, remaining)
		}
	}
}

func TestComputeRoundsToTwoDecimals(t *testing.T) {
	balances := []Balance{
		{UserID: 1, AmountPaid: 10},
		{UserID: 2, AmountPaid: 0},
		{UserID: 3, AmountPaid: 0},
	}

	transfers := Compute(balances, 10.0/3.0)
	for _, tr := range transfers {
		if tr.Amount != Round2(tr.Amount) {
			t.Errorf("transfer amount %v not rounded to 2 decimals", tr.Amount)
		}
	}
}

func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{2.674, 2.67},
		{-1.006, -1.01},
		{10.0 / 3.0, 3.33},
		{0.1 + 0.2, 0.3},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
