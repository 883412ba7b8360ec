// Package store holds the in-memory, session-local fact collection.
//
// The collection is ordered by insertion, unique by fact id, and exists only
// for the lifetime of its owning Store. All mutation goes through Apply,
// which never fails: invalid actions degrade to no-ops. Consumers that need
// an error channel wrap the store with the ops package.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/hpungsan/jot/internal/fact"
)

// ActionKind tags an Action.
type ActionKind string

const (
	ActionSave    ActionKind = "save"
	ActionDiscard ActionKind = "discard"
)

// Action is a tagged mutation request against the fact collection.
type Action struct {
	Kind     ActionKind `json:"type"`
	FactID   string     `json:"factId"`
	FactText string     `json:"factText,omitempty"`
}

// NoopReason explains why an action left the collection unchanged.
type NoopReason string

const (
	NoopEmptyText   NoopReason = "empty_text"   // save with whitespace-only text
	NoopDuplicateID NoopReason = "duplicate_id" // save with an id already present
	NoopUnknownID   NoopReason = "unknown_id"   // discard of an absent id
	NoopUnknownKind NoopReason = "unknown_kind" // unrecognized action kind
)

// ApplyResult reports the outcome of an action. It carries no error: the
// store's contract is that invalid actions are benign no-ops.
type ApplyResult struct {
	// Applied is true when the collection changed
	Applied bool

	// Reason is set when Applied is false
	Reason NoopReason

	// Fact is the appended record on save, or the removed record on discard
	Fact *fact.Fact

	// SourceErr carries a backing-source write failure for observability.
	// The in-memory mutation still took effect; Refresh reconciles.
	SourceErr error
}

// Source is an optional backing store the collection can be reloaded from.
// A Store without a Source performs no I/O at all.
type Source interface {
	// Snapshot returns the full fact sequence in insertion order
	Snapshot(ctx context.Context) ([]fact.Fact, error)

	// Record mirrors a newly saved fact
	Record(ctx context.Context, f fact.Fact) error

	// Remove mirrors a discard
	Remove(ctx context.Context, id string) error
}

// Store owns one fact collection. Each Store instance is independent;
// nothing is shared across instances and nothing survives the instance.
type Store struct {
	mu     sync.Mutex
	facts  map[string]fact.Fact
	order  []string
	source Source

	// now is swappable in tests
	now func() time.Time
}

// New creates an empty store with no backing source.
func New() *Store {
	return NewWithSource(nil)
}

// NewWithSource creates an empty store that mirrors mutations to src and
// reloads from it on Refresh. A nil src means Refresh is a no-op.
func NewWithSource(src Source) *Store {
	return &Store{
		facts:  make(map[string]fact.Fact),
		order:  make([]string, 0),
		source: src,
		now:    time.Now,
	}
}

// Apply dispatches one action against the collection. It resolves
// synchronously and never returns an error; the result reports whether the
// collection changed and why not when it didn't.
func (s *Store) Apply(ctx context.Context, a Action) ApplyResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a.Kind {
	case ActionSave:
		return s.save(ctx, a)
	case ActionDiscard:
		return s.discard(ctx, a)
	default:
		return ApplyResult{Reason: NoopUnknownKind}
	}
}

// save appends a new fact unless the text trims to empty or the id exists.
func (s *Store) save(ctx context.Context, a Action) ApplyResult {
	text := fact.Normalize(a.FactText)
	if text == "" {
		return ApplyResult{Reason: NoopEmptyText}
	}
	if _, exists := s.facts[a.FactID]; exists {
		return ApplyResult{Reason: NoopDuplicateID}
	}

	f := fact.Fact{
		ID:        a.FactID,
		Text:      text,
		Status:    fact.StatusSaved,
		CreatedAt: s.now().UTC(),
	}
	s.facts[f.ID] = f
	s.order = append(s.order, f.ID)

	res := ApplyResult{Applied: true, Fact: &f}
	if s.source != nil {
		res.SourceErr = s.source.Record(ctx, f)
	}
	return res
}

// discard removes the fact with the given id, tolerating absence.
func (s *Store) discard(ctx context.Context, a Action) ApplyResult {
	f, exists := s.facts[a.FactID]
	if !exists {
		return ApplyResult{Reason: NoopUnknownID}
	}

	delete(s.facts, a.FactID)
	for i, id := range s.order {
		if id == a.FactID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	res := ApplyResult{Applied: true, Fact: &f}
	if s.source != nil {
		res.SourceErr = s.source.Remove(ctx, a.FactID)
	}
	return res
}

// Facts returns a snapshot copy of the collection in insertion order.
// Mutating the returned slice does not affect the store.
func (s *Store) Facts() []fact.Fact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]fact.Fact, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.facts[id])
	}
	return out
}

// Get returns the fact with the given id, if present.
func (s *Store) Get(id string) (fact.Fact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.facts[id]
	return f, ok
}

// Len returns the number of facts currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Refresh reconciles the collection from the backing source. Without a
// source it does nothing and has no observable effect, however often it is
// called; with one, the in-memory collection is replaced by the source's
// snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	if s.source == nil {
		return nil
	}

	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.facts = make(map[string]fact.Fact, len(snapshot))
	s.order = make([]string, 0, len(snapshot))
	for _, f := range snapshot {
		if _, dup := s.facts[f.ID]; dup {
			continue
		}
		s.facts[f.ID] = f
		s.order = append(s.order, f.ID)
	}
	return nil
}
