package finish

// Member is a party member as seen by the outcome screens.
type Member struct {
	Name  string
	Alive bool
	HP    int
	MaxHP int
	Level int
}

// Drop is one item instance dropped by a defeated enemy.
type Drop struct {
	ItemID string
	Name   string
}

// Report summarizes a finished battle.
type Report struct {
	Members    []Member
	Experience int
	Currency   int
	Drops      []Drop
}

// ItemCount is a dropped item and how many of it were found.
type ItemCount struct {
	ItemID string
	Name   string
	Count  int
}

// Ledger is what the party takes away from a battle. Experience and
// Vitality are indexed like Report.Members.
type Ledger struct {
	Experience []int
	Currency   int
	Items      []ItemCount
	Vitality   []int
}

// Rewards applies a finished ledger to persistent party state.
type Rewards interface {
	ApplyRewards(l Ledger) error
}

// AggregateDrops counts drops by item id, preserving first-seen order.
func AggregateDrops(drops []Drop) []ItemCount {
	var out []ItemCount
	index := make(map[string]int, len(drops))
	for _, d := range drops {
		if i, ok := index[d.ItemID]; ok {
			out[i].Count++
			continue
		}
		index[d.ItemID] = len(out)
		out = append(out, ItemCount{ItemID: d.ItemID, Name: d.Name, Count: 1})
	}
	return out
}

// ApplyRetryPenalty scales an amount down by the share of attempts already
// spent on retries. retriesUsed is clamped to maxAttempts, so spending every
// attempt yields exactly zero.
func ApplyRetryPenalty(amount, retriesUsed, maxAttempts int) int {
	if retriesUsed <= 0 || maxAttempts <= 0 {
		return amount
	}
	if retriesUsed > maxAttempts {
		retriesUsed = maxAttempts
	}
	penalty := 1 - float64(retriesUsed)/float64(maxAttempts)
	return int(float64(amount) * penalty)
}

// clone returns a deep copy so callers cannot mutate supervisor state.
func (l Ledger) clone() Ledger {
	out := Ledger{Currency: l.Currency}
	out.Experience = append([]int(nil), l.Experience...)
	out.Items = append([]ItemCount(nil), l.Items...)
	out.Vitality = append([]int(nil), l.Vitality...)
	return out
}
