package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/matst80/slask-property/pkg/listing"
	"github.com/matst80/slask-property/pkg/listview"
	"github.com/matst80/slask-property/pkg/mapview"
	"github.com/matst80/slask-property/pkg/scroll"
	"github.com/matst80/slask-property/pkg/selection"
)

// Session is one open listing page: shared state plus both views.
type Session struct {
	Id          string
	Coordinator *selection.Coordinator
	Map         *mapview.Map
	List        *listview.List
	Scroll      *scroll.Recorder
	lastSeen    time.Time
}

// ListenerFactory builds extra listeners for a new session, tracking for example.
type ListenerFactory func(id string) selection.Listener

type Manager struct {
	mu        sync.Mutex
	store     *listing.Store
	states    StateStore
	sessions  map[string]*Session
	listeners []ListenerFactory
	ticker    *time.Ticker
	done      chan struct{}
}

func NewManager(store *listing.Store, states StateStore, listeners ...ListenerFactory) *Manager {
	if states == nil {
		states = NewMemoryStore()
	}
	return &Manager{
		store:     store,
		states:    states,
		sessions:  make(map[string]*Session),
		listeners: listeners,
	}
}

func (m *Manager) newSession(ctx context.Context, id string) *Session {
	rec := &scroll.Recorder{}
	c := selection.NewCoordinator(m.store, rec)
	state, found, err := m.states.Load(ctx, id)
	if err != nil {
		log.Printf("could not load session %s: %v", id, err)
	} else if found {
		c.Restore(state)
	}
	s := &Session{
		Id:          id,
		Coordinator: c,
		Map:         mapview.NewMap(c),
		List:        listview.NewList(c),
		Scroll:      rec,
	}
	c.AddListener(s.Map, s.List)
	for _, factory := range m.listeners {
		if l := factory(id); l != nil {
			c.AddListener(l)
		}
	}
	return s
}

// Get returns the session for id, restoring persisted state on first use.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		created := m.newSession(ctx, id)
		m.mu.Lock()
		if s, ok = m.sessions[id]; !ok {
			s = created
			m.sessions[id] = s
		}
		m.mu.Unlock()
	}
	m.mu.Lock()
	s.lastSeen = time.Now()
	m.mu.Unlock()
	return s
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.states.Save(ctx, s.Id, s.Coordinator.State())
}

// Evict drops sessions idle for longer than maxIdle. Their state stays in the
// state store and is restored on the next request.
func (m *Manager) Evict(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if time.Since(s.lastSeen) > maxIdle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartEviction evicts idle sessions every interval until Close. Calling it
// again while running does nothing.
func (m *Manager) StartEviction(interval, maxIdle time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ticker != nil {
		return
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	m.ticker, m.done = ticker, done
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if removed := m.Evict(maxIdle); removed > 0 {
					log.Printf("evicted %d idle sessions", removed)
				}
			}
		}
	}()
}

func (m *Manager) stopEviction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	close(m.done)
	m.ticker, m.done = nil, nil
}

// Close stops eviction and closes the state store.
func (m *Manager) Close() error {
	m.stopEviction()
	return m.states.Close()
}

func (m *Manager) evicting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticker != nil
}
