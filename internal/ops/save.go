package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/session"
	"github.com/hpungsan/jot/internal/store"
)

// SaveInput contains parameters for the Save operation.
type SaveInput struct {
	Session string // default: "default"
	ID      string // optional; generated when empty
	Text    string // required
}

// SaveOutput contains the result of the Save operation.
type SaveOutput struct {
	Fact fact.Fact `json:"fact"`
}

// Save appends a new fact to the session's collection.
func Save(ctx context.Context, mgr *session.Manager, cfg *config.Config, input SaveInput) (*SaveOutput, error) {
	text := fact.Normalize(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("fact text must not be empty")
	}
	if cfg.FactMaxChars > 0 {
		if chars := fact.CountChars(text); chars > cfg.FactMaxChars {
			return nil, errors.NewFactTooLarge(cfg.FactMaxChars, chars)
		}
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		generated, err := fact.NewID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		id = generated
	}

	s := mgr.Get(sessionName(input.Session))
	res := s.Apply(ctx, store.Action{Kind: store.ActionSave, FactID: id, FactText: text})
	if !res.Applied {
		// Text was already validated, so the only remaining reason is the id.
		return nil, errors.NewFactAlreadyExists(id)
	}
	if res.SourceErr != nil {
		// The fact is in the collection but missing from the archive mirror;
		// a later refresh would drop it, so surface the failure.
		return nil, errors.NewInternal(res.SourceErr)
	}

	return &SaveOutput{Fact: *res.Fact}, nil
}
