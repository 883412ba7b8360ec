package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/session"
)

func testManager() *session.Manager {
	return session.NewManager(nil)
}

func TestSave(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()

	out, err := Save(context.Background(), mgr, cfg, SaveInput{ID: "a", Text: " hello "})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if out.Fact.ID != "a" {
		t.Errorf("ID = %q, want a", out.Fact.ID)
	}
	if out.Fact.Text != "hello" {
		t.Errorf("Text = %q, want trimmed %q", out.Fact.Text, "hello")
	}
	if out.Fact.Status != fact.StatusSaved {
		t.Errorf("Status = %q, want saved", out.Fact.Status)
	}
	if out.Fact.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestSave_GeneratesID(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()

	out, err := Save(context.Background(), mgr, cfg, SaveInput{Text: "no id supplied"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if out.Fact.ID == "" {
		t.Error("ID is empty, want generated ULID")
	}
}

func TestSave_EmptyText(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := Save(context.Background(), mgr, cfg, SaveInput{ID: "a", Text: text})
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("Save(%q) error = %v, want INVALID_REQUEST", text, err)
		}
	}

	if n := mgr.Get(session.DefaultSession).Len(); n != 0 {
		t.Errorf("collection has %d facts after rejected saves, want 0", n)
	}
}

func TestSave_DuplicateID(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()
	ctx := context.Background()

	if _, err := Save(ctx, mgr, cfg, SaveInput{ID: "a", Text: "first"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err := Save(ctx, mgr, cfg, SaveInput{ID: "a", Text: "second"})
	if !errors.Is(err, errors.ErrFactAlreadyExists) {
		t.Fatalf("error = %v, want FACT_ALREADY_EXISTS", err)
	}

	// The first text wins
	out := List(mgr, ListInput{})
	if out.Count != 1 || out.Facts[0].Text != "first" {
		t.Errorf("facts = %v, want only the first save", out.Facts)
	}
}

func TestSave_TooLarge(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()
	cfg.FactMaxChars = 10

	_, err := Save(context.Background(), mgr, cfg, SaveInput{ID: "a", Text: strings.Repeat("x", 11)})
	if !errors.Is(err, errors.ErrFactTooLarge) {
		t.Fatalf("error = %v, want FACT_TOO_LARGE", err)
	}

	jErr := err.(*errors.JotError)
	if jErr.Details["max_chars"] != 10 || jErr.Details["actual_chars"] != 11 {
		t.Errorf("Details = %v, want max 10 / actual 11", jErr.Details)
	}
}

func TestSave_SessionDefaulting(t *testing.T) {
	mgr := testManager()
	cfg := config.DefaultConfig()
	ctx := context.Background()

	if _, err := Save(ctx, mgr, cfg, SaveInput{Session: "  ", ID: "a", Text: "hello"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if n := mgr.Get(session.DefaultSession).Len(); n != 1 {
		t.Errorf("default session has %d facts, want 1", n)
	}
}
