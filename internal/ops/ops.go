// Package ops implements the validated operations exposed over HTTP, MCP,
// and the CLI. The underlying store treats invalid actions as silent no-ops;
// this layer is the consuming boundary that turns rejected actions into
// coded errors for callers that want them.
package ops

import (
	"strings"

	"github.com/hpungsan/jot/internal/session"
)

// Pagination limits
const (
	DefaultSessionLimit = 20
	MaxSessionLimit     = 100
)

// sessionName trims and defaults the session parameter.
func sessionName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return session.DefaultSession
	}
	return s
}

// clampLimit applies default and maximum bounds to a caller-supplied limit.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
