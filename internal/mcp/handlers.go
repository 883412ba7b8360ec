package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/session"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	mgr *session.Manager
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mgr *session.Manager, cfg *config.Config) *Handlers {
	return &Handlers{mgr: mgr, cfg: cfg}
}

// Request types for each tool

// SaveRequest represents the arguments for fact_save.
type SaveRequest struct {
	Session string `json:"session,omitempty"`
	ID      string `json:"id,omitempty"`
	Text    string `json:"text"`
}

// DiscardRequest represents the arguments for fact_discard.
type DiscardRequest struct {
	Session string `json:"session,omitempty"`
	ID      string `json:"id"`
}

// GetRequest represents the arguments for fact_get.
type GetRequest struct {
	Session string `json:"session,omitempty"`
	ID      string `json:"id"`
}

// ListRequest represents the arguments for fact_list.
type ListRequest struct {
	Session string `json:"session,omitempty"`
}

// RefreshRequest represents the arguments for fact_refresh.
type RefreshRequest struct {
	Session string `json:"session,omitempty"`
}

// SessionListRequest represents the arguments for session_list.
type SessionListRequest struct {
	Limit int    `json:"limit,omitempty"`
	After string `json:"after,omitempty"`
	Order string `json:"order,omitempty"`
}

// SessionDropRequest represents the arguments for session_drop.
type SessionDropRequest struct {
	ID string `json:"id"`
}

// Handler implementations

// HandleSave handles the fact_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Save(ctx, h.mgr, h.cfg, ops.SaveInput{
		Session: input.Session,
		ID:      input.ID,
		Text:    input.Text,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDiscard handles the fact_discard tool call.
func (h *Handlers) HandleDiscard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DiscardRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Discard(ctx, h.mgr, ops.DiscardInput{
		Session: input.Session,
		ID:      input.ID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the fact_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.mgr, ops.FetchInput{
		Session: input.Session,
		ID:      input.ID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the fact_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return successResult(ops.List(h.mgr, ops.ListInput{Session: input.Session}))
}

// HandleRefresh handles the fact_refresh tool call.
func (h *Handlers) HandleRefresh(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RefreshRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Refresh(ctx, h.mgr, ops.RefreshInput{Session: input.Session})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionCreate handles the session_create tool call.
func (h *Handlers) HandleSessionCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.SessionCreate(h.mgr))
}

// HandleSessionList handles the session_list tool call.
func (h *Handlers) HandleSessionList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SessionListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SessionList(h.mgr, ops.SessionListInput{
		Limit: input.Limit,
		After: input.After,
		Order: input.Order,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSessionDrop handles the session_drop tool call.
func (h *Handlers) HandleSessionDrop(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SessionDropRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SessionDrop(ctx, h.mgr, ops.SessionDropInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// decode unmarshals MCP request arguments into a typed struct, avoiding
// unsafe type assertions on the raw argument map.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to avoid leaking SQL errors.
func errorResult(err error) *mcp.CallToolResult {
	jErr := errors.AsJotError(err)

	errorObj := map[string]any{
		"code":    jErr.Code,
		"message": jErr.Message,
		"status":  jErr.Status,
	}
	if jErr.Code != errors.ErrInternal && jErr.Details != nil {
		errorObj["details"] = jErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
