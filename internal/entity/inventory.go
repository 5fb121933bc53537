package entity

import "log"

// Stack is an inventory entry.
type Stack struct {
	ItemID string
	Count  int
}

// Inventory is the party's shared pack. During a battle an item moves
// through reserved (chosen, not yet used) and used (consumed, not yet
// committed). Commit makes consumption permanent; Rollback undoes it.
type Inventory struct {
	order    []string
	count    map[string]int
	reserved map[string]int
	used     map[string]int
	logger   *log.Logger
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		count:    make(map[string]int),
		reserved: make(map[string]int),
		used:     make(map[string]int),
		logger:   log.Default(),
	}
}

// SetLogger replaces the logger used for inventory warnings.
func (inv *Inventory) SetLogger(l *log.Logger) {
	if l != nil {
		inv.logger = l
	}
}

// Add puts n items into the pack.
func (inv *Inventory) Add(id string, n int) {
	if n <= 0 || id == "" {
		return
	}
	if _, ok := inv.count[id]; !ok {
		inv.order = append(inv.order, id)
	}
	inv.count[id] += n
}

// Count returns how many items the pack holds, counting uncommitted use.
func (inv *Inventory) Count(id string) int { return inv.count[id] }

// Available returns how many items can still be chosen.
func (inv *Inventory) Available(id string) int {
	return inv.count[id] - inv.reserved[id] - inv.used[id]
}

// Reserve sets an item aside for a chosen action.
func (inv *Inventory) Reserve(id string) bool {
	if inv.Available(id) <= 0 {
		return false
	}
	inv.reserved[id]++
	return true
}

// Release returns a reserved item to the pack.
func (inv *Inventory) Release(id string) {
	if inv.reserved[id] <= 0 {
		inv.logger.Printf("Warning: inventory release of unreserved item %q", id)
		return
	}
	inv.reserved[id]--
}

// Use consumes a reserved item.
func (inv *Inventory) Use(id string) bool {
	if inv.reserved[id] <= 0 {
		inv.logger.Printf("Warning: inventory use of unreserved item %q", id)
		return false
	}
	inv.reserved[id]--
	inv.used[id]++
	return true
}

// Commit removes used items for good and drops outstanding reservations.
func (inv *Inventory) Commit() {
	for id, n := range inv.used {
		inv.count[id] -= n
	}
	inv.used = make(map[string]int)
	inv.reserved = make(map[string]int)
	inv.compact()
}

// Rollback forgets every reservation and use since the last Commit.
func (inv *Inventory) Rollback() {
	inv.used = make(map[string]int)
	inv.reserved = make(map[string]int)
}

// Stacks lists items with at least one available, in acquisition order.
func (inv *Inventory) Stacks() []Stack {
	var out []Stack
	for _, id := range inv.order {
		if n := inv.Available(id); n > 0 {
			out = append(out, Stack{ItemID: id, Count: n})
		}
	}
	return out
}

func (inv *Inventory) compact() {
	kept := inv.order[:0]
	for _, id := range inv.order {
		if inv.count[id] > 0 {
			kept = append(kept, id)
			continue
		}
		delete(inv.count, id)
	}
	inv.order = kept
}
