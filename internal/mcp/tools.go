package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. One constructor per tool keeps the registry in server.go
// readable.

func saveToolDef() mcp.Tool {
	return mcp.NewTool("fact_save",
		mcp.WithDescription("Save a short fact. Text is trimmed; empty text and duplicate ids are rejected."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The fact text to save"),
		),
		mcp.WithString("id",
			mcp.Description("Optional fact id. Generated when omitted."),
		),
		mcp.WithString("session",
			mcp.Description("Session name. Defaults to \"default\"."),
		),
	)
}

func discardToolDef() mcp.Tool {
	return mcp.NewTool("fact_discard",
		mcp.WithDescription("Discard (remove) a saved fact by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the fact to discard"),
		),
		mcp.WithString("session",
			mcp.Description("Session name. Defaults to \"default\"."),
		),
	)
}

func getToolDef() mcp.Tool {
	return mcp.NewTool("fact_get",
		mcp.WithDescription("Fetch one saved fact by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the fact to fetch"),
		),
		mcp.WithString("session",
			mcp.Description("Session name. Defaults to \"default\"."),
		),
	)
}

func listToolDef() mcp.Tool {
	return mcp.NewTool("fact_list",
		mcp.WithDescription("List all saved facts in insertion order."),
		mcp.WithString("session",
			mcp.Description("Session name. Defaults to \"default\"."),
		),
	)
}

func refreshToolDef() mcp.Tool {
	return mcp.NewTool("fact_refresh",
		mcp.WithDescription("Reconcile the session's facts from the backing archive. A no-op when no archive is attached."),
		mcp.WithString("session",
			mcp.Description("Session name. Defaults to \"default\"."),
		),
	)
}

func sessionCreateToolDef() mcp.Tool {
	return mcp.NewTool("session_create",
		mcp.WithDescription("Create a new fact session with a generated id."),
	)
}

func sessionListToolDef() mcp.Tool {
	return mcp.NewTool("session_list",
		mcp.WithDescription("List live sessions, ordered by creation time."),
		mcp.WithNumber("limit",
			mcp.Description("Page size (default 20, max 100)"),
		),
		mcp.WithString("after",
			mcp.Description("Exclusive cursor: session id from a previous page"),
		),
		mcp.WithString("order",
			mcp.Description("Sort order: asc (default) or desc"),
		),
	)
}

func sessionDropToolDef() mcp.Tool {
	return mcp.NewTool("session_drop",
		mcp.WithDescription("Drop a session and every fact it holds."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the session to drop"),
		),
	)
}
