package store

import (
	"sync"
	"time"

	"daybook/cmd/internal/domain/entity"
)

// Gateway persists the collection. Durability failures never surface
// here: the gateway logs and swallows them.
type Gateway interface {
	Load() []entity.Appointment
	Save(appointments []entity.Appointment)
}

// Subscriber receives a snapshot of the full collection after every
// mutation. Subscribers must not mutate the snapshot.
type Subscriber func(appointments []entity.Appointment)

// Store is the sole authoritative holder of the appointment collection.
// All mutations go through it; each one persists through the gateway
// and fans out a snapshot to subscribers in registration order before
// the mutating call returns.
type Store struct {
	mu           sync.Mutex
	gateway      Gateway
	appointments []entity.Appointment
	subscribers  []subscription
	nextSubID    int
	lastID       int64
	now          func() time.Time
}

type subscription struct {
	id int
	fn Subscriber
}

func New(gateway Gateway) *Store {
	s := &Store{
		gateway:      gateway,
		appointments: gateway.Load(),
		now:          time.Now,
	}
	for _, a := range s.appointments {
		if a.ID > s.lastID {
			s.lastID = a.ID
		}
	}
	return s
}

// GetAll returns a snapshot of the current collection.
func (s *Store) GetAll() []entity.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Add assigns a fresh ID to the draft, appends it and persists. The
// saved appointment is returned.
func (s *Store) Add(d entity.Draft) entity.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment := entity.Appointment{
		ID:          s.nextIDLocked(),
		Date:        d.Date,
		Start:       d.Start,
		Duration:    d.Duration,
		Title:       d.Title,
		Description: d.Description,
	}
	s.appointments = append(s.appointments, appointment)
	s.commitLocked()
	return appointment
}

// Update replaces the entry whose ID matches. A miss leaves the
// collection untouched and notifies nobody; it reports whether a match
// was replaced.
func (s *Store) Update(a entity.Appointment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i] = a
			s.commitLocked()
			return true
		}
	}
	return false
}

// Delete removes the entry whose ID matches. It persists and notifies
// whether or not a match existed, so subscribers stay consistent with
// stale delete requests.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.appointments[:0]
	for _, a := range s.appointments {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	s.appointments = kept
	s.commitLocked()
	return found
}

// Subscribe registers fn for change notifications and returns a
// function that removes the registration.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// commitLocked persists the collection and fans out one snapshot per
// subscriber. The mutation and its fan-out happen under the lock, so an
// observer can never see a half-applied mutation.
func (s *Store) commitLocked() {
	s.gateway.Save(s.appointments)
	snapshot := s.snapshotLocked()
	for _, sub := range s.subscribers {
		sub.fn(snapshot)
	}
}

func (s *Store) snapshotLocked() []entity.Appointment {
	snapshot := make([]entity.Appointment, len(s.appointments))
	copy(snapshot, s.appointments)
	return snapshot
}

// nextIDLocked derives IDs from the wall clock, bumped past the last
// assigned value so two additions within the same millisecond still get
// distinct IDs.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
