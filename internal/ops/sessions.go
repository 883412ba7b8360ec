package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/session"
)

// SessionListInput contains parameters for the SessionList operation.
type SessionListInput struct {
	Limit int    // default 20, max 100
	After string // exclusive cursor from a previous page
	Order string // "asc" (default) or "desc"
}

// SessionListOutput is one page of sessions.
type SessionListOutput struct {
	Sessions session.Page `json:"sessions"`
}

// SessionList returns one page of live sessions.
func SessionList(mgr *session.Manager, input SessionListInput) (*SessionListOutput, error) {
	order := strings.TrimSpace(input.Order)
	if order == "" {
		order = "asc"
	}
	if order != "asc" && order != "desc" {
		return nil, errors.NewInvalidRequest("order must be one of: asc, desc")
	}

	limit := clampLimit(input.Limit, DefaultSessionLimit, MaxSessionLimit)
	page := mgr.List(limit, strings.TrimSpace(input.After), order)

	return &SessionListOutput{Sessions: page}, nil
}

// SessionCreateOutput describes the newly created session.
type SessionCreateOutput struct {
	Session session.Info `json:"session"`
}

// SessionCreate registers a new session with a generated id.
func SessionCreate(mgr *session.Manager) *SessionCreateOutput {
	return &SessionCreateOutput{Session: mgr.Create()}
}

// SessionDropInput contains parameters for the SessionDrop operation.
type SessionDropInput struct {
	ID string // required
}

// SessionDropOutput reports the dropped session.
type SessionDropOutput struct {
	ID      string `json:"id"`
	Dropped bool   `json:"dropped"`
}

// SessionDrop removes a live session and its archived facts.
func SessionDrop(ctx context.Context, mgr *session.Manager, input SessionDropInput) (*SessionDropOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("session id is required")
	}

	removed, err := mgr.Drop(ctx, id)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !removed {
		return nil, errors.NewNotFound("session", id)
	}

	return &SessionDropOutput{ID: id, Dropped: true}, nil
}
