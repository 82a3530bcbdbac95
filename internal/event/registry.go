package event

import (
	"sync"

	"github.com/dshills/richtype/internal/event/topic"
)

// registry keeps subscriptions in the order they were added.
// It is safe for concurrent access.
type registry struct {
	mu   sync.RWMutex
	subs []*subscription
	byID map[string]*subscription
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]*subscription)}
}

// add appends sub and returns the number of subscriptions to its pattern.
func (r *registry) add(sub *subscription) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, sub)
	r.byID[sub.id] = sub

	n := 0
	for _, s := range r.subs {
		if s.topic == sub.topic {
			n++
		}
	}
	return n
}

// remove deletes a subscription by ID.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			break
		}
	}
	return true
}

// match returns a snapshot of the active subscriptions whose pattern
// matches t, in subscription order.
func (r *registry) match(t topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*subscription
	for _, s := range r.subs {
		if s.IsActive() && t.Matches(s.topic) {
			out = append(out, s)
		}
	}
	return out
}

// count returns the number of subscriptions to the exact pattern t, or
// all subscriptions when t is empty.
func (r *registry) count(t topic.Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t == "" {
		return len(r.subs)
	}
	n := 0
	for _, s := range r.subs {
		if s.topic == t {
			n++
		}
	}
	return n
}

// clear removes every subscription matching pattern t, or all of them
// when t is empty. It returns the number removed.
func (r *registry) clear(t topic.Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.subs[:0:0]
	removed := 0
	for _, s := range r.subs {
		if t == "" || s.topic == t {
			s.Cancel()
			delete(r.byID, s.id)
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.subs = kept
	return removed
}
