package combat

// Arena owns every actor of a battle in one contiguous slice. Characters come
// first, then enemies. Pointers handed out stay valid until Release.
type Arena struct {
	actors     []Actor
	characters []*Actor
	enemies    []*Actor
}

// NewArena builds the actors described by the specs and binds them to obs.
// Specs are reordered so that characters precede enemies; relative order
// within a side is preserved.
func NewArena(specs []Spec, obs Observer) *Arena {
	ar := &Arena{actors: make([]Actor, 0, len(specs))}
	for _, side := range []Side{SideCharacter, SideEnemy} {
		for _, spec := range specs {
			if spec.Side == side {
				ar.actors = append(ar.actors, NewActor(spec))
			}
		}
	}
	for i := range ar.actors {
		a := &ar.actors[i]
		a.Bind(Handle(i), obs)
		if a.side == SideCharacter {
			ar.characters = append(ar.characters, a)
		} else {
			ar.enemies = append(ar.enemies, a)
		}
	}
	return ar
}

// Get returns the actor for a handle, or nil when the handle is out of range.
func (ar *Arena) Get(h Handle) *Actor {
	if ar == nil || h < 0 || int(h) >= len(ar.actors) {
		return nil
	}
	return &ar.actors[h]
}

// Len returns the number of actors.
func (ar *Arena) Len() int { return len(ar.actors) }

// Characters returns the player-controlled actors in party order.
func (ar *Arena) Characters() []*Actor { return ar.characters }

// Enemies returns the computer-controlled actors in party order.
func (ar *Arena) Enemies() []*Actor { return ar.enemies }

// All returns every actor, characters first.
func (ar *Arena) All() []*Actor {
	out := make([]*Actor, 0, len(ar.actors))
	out = append(out, ar.characters...)
	return append(out, ar.enemies...)
}

// HighestAgility returns the best agility rating in the arena.
func (ar *Arena) HighestAgility() int {
	best := 0
	for i := range ar.actors {
		if ar.actors[i].agility > best {
			best = ar.actors[i].agility
		}
	}
	return best
}

// CountAlive returns how many actors of a side are not dead.
func (ar *Arena) CountAlive(side Side) int {
	n := 0
	for i := range ar.actors {
		if ar.actors[i].side == side && ar.actors[i].IsAlive() {
			n++
		}
	}
	return n
}

// CountValid returns how many actors of a side are alive and not dying.
func (ar *Arena) CountValid(side Side) int {
	n := 0
	for i := range ar.actors {
		if ar.actors[i].side == side && ar.actors[i].IsValid() {
			n++
		}
	}
	return n
}

// Release cancels pending actions and detaches every actor. The arena is
// empty afterwards and previously returned pointers must not be used.
func (ar *Arena) Release() {
	for i := range ar.actors {
		ar.actors[i].releaseAction()
		ar.actors[i].observer = nil
		ar.actors[i].handle = NoHandle
	}
	ar.actors = nil
	ar.characters = nil
	ar.enemies = nil
}
