package combat

// ReadyQueue holds actors that finished warming up, in the order they became
// ready. An actor appears at most once.
type ReadyQueue struct {
	actors []*Actor
}

// Push appends the actor. It returns false for nil or already queued actors.
func (q *ReadyQueue) Push(a *Actor) bool {
	if a == nil || q.Contains(a) {
		return false
	}
	q.actors = append(q.actors, a)
	return true
}

// Remove drops the actor from the queue. Removing an absent actor is a no-op
// that returns false.
func (q *ReadyQueue) Remove(a *Actor) bool {
	for i, queued := range q.actors {
		if queued == a {
			q.actors = append(q.actors[:i], q.actors[i+1:]...)
			return true
		}
	}
	return false
}

// Front returns the head of the queue, or nil when empty.
func (q *ReadyQueue) Front() *Actor {
	if len(q.actors) == 0 {
		return nil
	}
	return q.actors[0]
}

// PopFront removes and returns the head of the queue.
func (q *ReadyQueue) PopFront() *Actor {
	if len(q.actors) == 0 {
		return nil
	}
	head := q.actors[0]
	q.actors = q.actors[1:]
	return head
}

// Contains reports whether the actor is queued.
func (q *ReadyQueue) Contains(a *Actor) bool {
	for _, queued := range q.actors {
		if queued == a {
			return true
		}
	}
	return false
}

// Len returns the number of queued actors.
func (q *ReadyQueue) Len() int { return len(q.actors) }

// Clear empties the queue.
func (q *ReadyQueue) Clear() { q.actors = nil }

// Actors returns a copy of the queue in order.
func (q *ReadyQueue) Actors() []*Actor {
	out := make([]*Actor, len(q.actors))
	copy(out, q.actors)
	return out
}
