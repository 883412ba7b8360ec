package ops

import (
	"strings"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/session"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	Session string // default: "default"
	ID      string // required
}

// FetchOutput contains the fetched fact.
type FetchOutput struct {
	Fact fact.Fact `json:"fact"`
}

// Fetch returns a single fact by id.
func Fetch(mgr *session.Manager, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("fact id is required")
	}

	f, ok := mgr.Get(sessionName(input.Session)).Get(id)
	if !ok {
		return nil, errors.NewNotFound("fact", id)
	}

	return &FetchOutput{Fact: f}, nil
}
