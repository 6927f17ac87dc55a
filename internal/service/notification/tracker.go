package notification

import (
	"sync"

	"github.com/google/uuid"

	"annonsplats/internal/domain"
)

// Tracker holds the last known badge value per user and fans changes out
// to in-process subscribers.
type Tracker struct {
	mu     sync.Mutex
	counts map[uuid.UUID]int
	subs   map[uuid.UUID]map[chan domain.Badge]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		counts: make(map[uuid.UUID]int),
		subs:   make(map[uuid.UUID]map[chan domain.Badge]struct{}),
	}
}

func (t *Tracker) Set(userID uuid.UUID, count int) {
	if count < 0 {
		count = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts[userID] = count
	t.notify(userID, count)
}

// Adjust adds delta to a tracked user's count, flooring at zero. Users
// without a known count are left untouched and ok is false.
func (t *Tracker) Adjust(userID uuid.UUID, delta int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.counts[userID]
	if !ok {
		return 0, false
	}

	next := current + delta
	if next < 0 {
		next = 0
	}
	t.counts[userID] = next
	if next != current {
		t.notify(userID, next)
	}
	return next, true
}

func (t *Tracker) Get(userID uuid.UUID) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	count, ok := t.counts[userID]
	return count, ok
}

// Forget drops the stored count for a user nobody is subscribed for.
func (t *Tracker) Forget(userID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.subs[userID]) == 0 {
		delete(t.counts, userID)
	}
}

// Subscribe returns a channel receiving every new value for userID and a
// func that releases it. Releasing the last subscription forgets the count.
func (t *Tracker) Subscribe(userID uuid.UUID) (<-chan domain.Badge, func()) {
	ch := make(chan domain.Badge, 8)

	t.mu.Lock()
	set, ok := t.subs[userID]
	if !ok {
		set = make(map[chan domain.Badge]struct{})
		t.subs[userID] = set
	}
	set[ch] = struct{}{}
	t.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if set, ok := t.subs[userID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(t.subs, userID)
					delete(t.counts, userID)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (t *Tracker) notify(userID uuid.UUID, count int) {
	badge := domain.Badge{UserID: userID, Count: count}
	for ch := range t.subs[userID] {
		// Drop the oldest pending value so a slow reader still ends up
		// with the latest count.
		select {
		case ch <- badge:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- badge:
			default:
			}
		}
	}
}
