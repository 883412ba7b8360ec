package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
)

func TestList_InsertionOrder(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := Save(ctx, mgr, cfg, SaveInput{ID: id, Text: "text " + id}); err != nil {
			t.Fatalf("Save(%s) failed: %v", id, err)
		}
	}

	out := List(mgr, ListInput{})
	if out.Count != 3 {
		t.Fatalf("Count = %d, want 3", out.Count)
	}
	for i, want := range []string{"a", "b", "c"} {
		if out.Facts[i].ID != want {
			t.Errorf("Facts[%d].ID = %q, want %q", i, out.Facts[i].ID, want)
		}
	}
}

func TestList_EmptySession(t *testing.T) {
	mgr := testManager()

	out := List(mgr, ListInput{Session: "brand-new"})
	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}
	if out.Facts == nil {
		t.Error("Facts is nil, want empty slice for stable JSON")
	}
}

func TestFetch(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()
	ctx := context.Background()

	if _, err := Save(ctx, mgr, cfg, SaveInput{ID: "a", Text: "hello"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := Fetch(mgr, FetchInput{ID: "a"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if out.Fact.Text != "hello" {
		t.Errorf("Text = %q, want hello", out.Fact.Text)
	}

	if _, err := Fetch(mgr, FetchInput{ID: "zzz"}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch(zzz) error = %v, want NOT_FOUND", err)
	}
	if _, err := Fetch(mgr, FetchInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Fetch(empty id) error = %v, want INVALID_REQUEST", err)
	}
}

func TestRefresh_NoSource(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()
	ctx := context.Background()

	if _, err := Save(ctx, mgr, cfg, SaveInput{ID: "a", Text: "hello"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		out, err := Refresh(ctx, mgr, RefreshInput{})
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if out.Count != 1 || out.Facts[0].ID != "a" {
			t.Errorf("refresh #%d changed the collection: %v", i, out.Facts)
		}
	}
}
