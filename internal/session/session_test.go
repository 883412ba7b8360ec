package session

import (
	"context"
	"testing"

	"github.com/hpungsan/jot/internal/archive"
	"github.com/hpungsan/jot/internal/store"
)

func TestGet_CreatesOnDemand(t *testing.T) {
	m := NewManager(nil)

	s1 := m.Get("default")
	s2 := m.Get("default")
	if s1 != s2 {
		t.Error("Get returned different stores for the same session")
	}
	if !m.Exists("default") {
		t.Error("Exists = false after Get")
	}
}

func TestSessions_Independent(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	m.Get("one").Apply(ctx, store.Action{Kind: store.ActionSave, FactID: "a", FactText: "hello"})

	if n := m.Get("two").Len(); n != 0 {
		t.Errorf("session two has %d facts, want 0 (collections must be independent)", n)
	}
}

func TestCreate_GeneratesUniqueIDs(t *testing.T) {
	m := NewManager(nil)

	a := m.Create()
	b := m.Create()

	if a.ID == "" || b.ID == "" {
		t.Fatal("Create returned empty id")
	}
	if a.ID == b.ID {
		t.Errorf("Create returned duplicate id %q", a.ID)
	}
	if !m.Exists(a.ID) || !m.Exists(b.ID) {
		t.Error("created sessions not registered")
	}
}

func TestDrop(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	m.Get("gone")

	removed, err := m.Drop(ctx, "gone")
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if !removed {
		t.Error("removed = false, want true")
	}
	if m.Exists("gone") {
		t.Error("session still exists after Drop")
	}

	removed, err = m.Drop(ctx, "never-was")
	if err != nil {
		t.Fatalf("Drop(absent) failed: %v", err)
	}
	if removed {
		t.Error("removed = true for unknown session")
	}
}

func TestDrop_RemovesArchiveRows(t *testing.T) {
	arch, err := archive.Open()
	if err != nil {
		t.Fatalf("archive.Open failed: %v", err)
	}
	defer arch.Close()

	m := NewManager(arch)
	ctx := context.Background()

	s := m.Get("gone")
	s.Apply(ctx, store.Action{Kind: store.ActionSave, FactID: "a", FactText: "hello"})

	if _, err := m.Drop(ctx, "gone"); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}

	// A recreated session refreshing from the archive must see nothing.
	s = m.Get("gone")
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("recreated session has %d facts, want 0", s.Len())
	}
}

func TestRefresh_RehydratesFromArchive(t *testing.T) {
	arch, err := archive.Open()
	if err != nil {
		t.Fatalf("archive.Open failed: %v", err)
	}
	defer arch.Close()

	m := NewManager(arch)
	ctx := context.Background()

	m.Get("s").Apply(ctx, store.Action{Kind: store.ActionSave, FactID: "a", FactText: "hello"})

	// Drop only the live store, keeping archive rows, as a crashed consumer
	// of the same process would.
	m.mu.Lock()
	delete(m.sessions, "s")
	m.mu.Unlock()

	s := m.Get("s")
	if s.Len() != 0 {
		t.Fatalf("fresh store has %d facts before refresh", s.Len())
	}
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	facts := s.Facts()
	if len(facts) != 1 || facts[0].ID != "a" || facts[0].Text != "hello" {
		t.Errorf("facts after refresh = %v, want [a]", facts)
	}
}

func TestList_Pagination(t *testing.T) {
	m := NewManager(nil)

	// Named sessions register through Get
	for _, name := range []string{"s1", "s2", "s3", "s4", "s5"} {
		m.Get(name)
	}

	page := m.List(2, "", "asc")
	if len(page.Data) != 2 {
		t.Fatalf("page 1 len = %d, want 2", len(page.Data))
	}
	if !page.HasMore {
		t.Error("page 1 HasMore = false, want true")
	}
	if page.After != page.Data[1].ID {
		t.Errorf("After = %q, want last item id %q", page.After, page.Data[1].ID)
	}

	page2 := m.List(2, page.After, "asc")
	if len(page2.Data) != 2 {
		t.Fatalf("page 2 len = %d, want 2", len(page2.Data))
	}
	if page2.Data[0].ID == page.Data[0].ID || page2.Data[0].ID == page.Data[1].ID {
		t.Error("page 2 repeats page 1 items")
	}

	page3 := m.List(2, page2.After, "asc")
	if len(page3.Data) != 1 {
		t.Fatalf("page 3 len = %d, want 1", len(page3.Data))
	}
	if page3.HasMore {
		t.Error("page 3 HasMore = true, want false")
	}
	if page3.After != "" {
		t.Errorf("page 3 After = %q, want empty on final page", page3.After)
	}
}

func TestList_OrderReversal(t *testing.T) {
	m := NewManager(nil)
	for _, name := range []string{"a", "b", "c"} {
		m.Get(name)
	}

	asc := m.List(10, "", "asc")
	desc := m.List(10, "", "desc")

	if len(asc.Data) != 3 || len(desc.Data) != 3 {
		t.Fatalf("lens = %d/%d, want 3/3", len(asc.Data), len(desc.Data))
	}
	for i := range asc.Data {
		if asc.Data[i].ID != desc.Data[len(desc.Data)-1-i].ID {
			t.Errorf("desc is not the reverse of asc: %v vs %v", asc.Data, desc.Data)
			break
		}
	}
}

func TestList_UnknownCursorStartsOver(t *testing.T) {
	m := NewManager(nil)
	m.Get("only")

	page := m.List(10, "no-such-cursor", "asc")
	if len(page.Data) != 1 {
		t.Errorf("len = %d, want 1 (unknown cursor starts from beginning)", len(page.Data))
	}
}

func TestList_FactCount(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	s := m.Get("counted")
	s.Apply(ctx, store.Action{Kind: store.ActionSave, FactID: "a", FactText: "one"})
	s.Apply(ctx, store.Action{Kind: store.ActionSave, FactID: "b", FactText: "two"})

	page := m.List(10, "", "asc")
	if len(page.Data) != 1 {
		t.Fatalf("len = %d, want 1", len(page.Data))
	}
	if page.Data[0].FactCount != 2 {
		t.Errorf("FactCount = %d, want 2", page.Data[0].FactCount)
	}
}
