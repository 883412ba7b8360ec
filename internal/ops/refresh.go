package ops

import (
	"context"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/session"
)

// RefreshInput contains parameters for the Refresh operation.
type RefreshInput struct {
	Session string // default: "default"
}

// RefreshOutput contains the collection after reconciliation.
type RefreshOutput struct {
	Facts []fact.Fact `json:"facts"`
	Count int         `json:"count"`
}

// Refresh reconciles the session's collection from its backing source and
// returns the result. Without a source this changes nothing.
func Refresh(ctx context.Context, mgr *session.Manager, input RefreshInput) (*RefreshOutput, error) {
	s := mgr.Get(sessionName(input.Session))
	if err := s.Refresh(ctx); err != nil {
		return nil, errors.NewInternal(err)
	}

	facts := s.Facts()
	return &RefreshOutput{Facts: facts, Count: len(facts)}, nil
}
