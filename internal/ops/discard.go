package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/session"
	"github.com/hpungsan/jot/internal/store"
)

// DiscardInput contains parameters for the Discard operation.
type DiscardInput struct {
	Session string // default: "default"
	ID      string // required
}

// DiscardOutput contains the removed fact.
type DiscardOutput struct {
	Fact fact.Fact `json:"fact"`
}

// Discard removes a fact from the session's collection by id.
func Discard(ctx context.Context, mgr *session.Manager, input DiscardInput) (*DiscardOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("fact id is required")
	}

	s := mgr.Get(sessionName(input.Session))
	res := s.Apply(ctx, store.Action{Kind: store.ActionDiscard, FactID: id})
	if !res.Applied {
		return nil, errors.NewNotFound("fact", id)
	}
	if res.SourceErr != nil {
		return nil, errors.NewInternal(res.SourceErr)
	}

	return &DiscardOutput{Fact: *res.Fact}, nil
}
