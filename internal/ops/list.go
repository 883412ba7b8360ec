package ops

import (
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/session"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Session string // default: "default"
}

// ListOutput contains the session's facts in insertion order.
type ListOutput struct {
	Facts []fact.Fact `json:"facts"`
	Count int         `json:"count"`
}

// List returns the session's full fact collection in insertion order.
func List(mgr *session.Manager, input ListInput) *ListOutput {
	facts := mgr.Get(sessionName(input.Session)).Facts()
	return &ListOutput{Facts: facts, Count: len(facts)}
}
