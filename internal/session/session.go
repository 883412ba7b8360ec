// Package session manages named fact stores. Each session owns one
// independent in-memory collection; sessions are created on demand and live
// only as long as the process.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hpungsan/jot/internal/archive"
	"github.com/hpungsan/jot/internal/store"
)

// DefaultSession is the session used when callers don't name one.
const DefaultSession = "default"

// Info describes one session.
type Info struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	FactCount int       `json:"factCount"`
}

// Page is one page of sessions from List.
type Page struct {
	Data    []Info `json:"data"`
	HasMore bool   `json:"has_more"`
	After   string `json:"after,omitempty"`
}

type state struct {
	createdAt time.Time
	store     *store.Store
}

// Manager is the registry of live sessions. With an archive attached, each
// session's store mirrors into its own slice of the archive and can be
// refreshed from it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*state
	archive  *archive.Archive
}

// NewManager creates an empty registry. arch may be nil, in which case
// stores have no backing source and Refresh is a no-op.
func NewManager(arch *archive.Archive) *Manager {
	return &Manager{
		sessions: make(map[string]*state),
		archive:  arch,
	}
}

// Get returns the store for the named session, creating it on demand.
func (m *Manager) Get(name string) *store.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrCreate(name).store
}

// getOrCreate must be called with the lock held.
func (m *Manager) getOrCreate(name string) *state {
	st, ok := m.sessions[name]
	if !ok {
		var src store.Source
		if m.archive != nil {
			src = m.archive.ForSession(name)
		}
		st = &state{
			createdAt: time.Now().UTC(),
			store:     store.NewWithSource(src),
		}
		m.sessions[name] = st
	}
	return st
}

// Create registers a new session with a generated id and returns its info.
func (m *Manager) Create() Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	st := m.getOrCreate(id)
	return Info{ID: id, CreatedAt: st.createdAt, FactCount: st.store.Len()}
}

// Exists reports whether the named session is live.
func (m *Manager) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[name]
	return ok
}

// Drop removes a live session and its archived rows.
// Reports whether a session was removed.
func (m *Manager) Drop(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	_, ok := m.sessions[name]
	delete(m.sessions, name)
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if m.archive != nil {
		if _, err := m.archive.DropSession(ctx, name); err != nil {
			return true, err
		}
	}
	return true, nil
}

// List returns one page of sessions ordered by creation time.
// order is "asc" or "desc"; after is an exclusive cursor (a session id from a
// previous page). An unknown cursor starts from the beginning.
func (m *Manager) List(limit int, after, order string) Page {
	m.mu.Lock()
	infos := make([]Info, 0, len(m.sessions))
	for id, st := range m.sessions {
		infos = append(infos, Info{ID: id, CreatedAt: st.createdAt, FactCount: st.store.Len()})
	}
	m.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			// Stable tiebreak for sessions created in the same instant
			if order == "desc" {
				return infos[i].ID > infos[j].ID
			}
			return infos[i].ID < infos[j].ID
		}
		if order == "desc" {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})

	start := 0
	if after != "" {
		for i, info := range infos {
			if info.ID == after {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(infos) {
		end = len(infos)
	}

	page := infos[start:end]
	hasMore := len(infos) > end

	next := ""
	if hasMore && len(page) > 0 {
		next = page[len(page)-1].ID
	}

	return Page{Data: page, HasMore: hasMore, After: next}
}
