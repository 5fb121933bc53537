package finish

import "testing"

func TestApplyRetryPenalty(t *testing.T) {
	tests := []struct {
		name        string
		amount      int
		retriesUsed int
		maxAttempts int
		expected    int
	}{
		{"no retries", 900, 0, 3, 900},
		{"one of three", 900, 1, 3, 600},
		{"two of three", 900, 2, 3, 300},
		{"boundary is exactly zero", 900, 3, 3, 0},
		{"over budget clamps", 900, 5, 3, 0},
		{"no budget", 900, 2, 0, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyRetryPenalty(tt.amount, tt.retriesUsed, tt.maxAttempts); got != tt.expected {
				t.Errorf("ApplyRetryPenalty() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestAggregateDropsByIdentity(t *testing.T) {
	drops := []Drop{
		{ItemID: "potion", Name: "Potion"},
		{ItemID: "ether", Name: "Ether"},
		{ItemID: "potion", Name: "Potion"},
		{ItemID: "potion", Name: "Potion"},
	}
	got := AggregateDrops(drops)

	want := []ItemCount{
		{ItemID: "potion", Name: "Potion", Count: 3},
		{ItemID: "ether", Name: "Ether", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("AggregateDrops() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregateDropsEmpty(t *testing.T) {
	if got := AggregateDrops(nil); len(got) != 0 {
		t.Errorf("AggregateDrops(nil) = %v, want empty", got)
	}
}
