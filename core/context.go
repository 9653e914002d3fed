package core

import "context"

// Context keys for run options
type contextKey string

const quietKey contextKey = "quiet"

// WithQuiet marks the context so decision lines are not printed.
// The MCP server uses this because stdout carries the protocol.
func WithQuiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey, true)
}

// isQuiet returns whether decision lines should be suppressed
func isQuiet(ctx context.Context) bool {
	val := ctx.Value(quietKey)
	if val == nil {
		return false // default: print decisions
	}
	quiet, ok := val.(bool)
	return ok && quiet
}
