package slogctx

import (
	"context"
	"log/slog"

	"libdb.so/ctxt"
)

// From returns a slog.Logger from the context. If no logger is found, the
// default logger is returned.
func From(ctx context.Context) *slog.Logger {
	return ctxt.FromOrFunc(ctx, slog.Default)
}

// With returns a new context that carries the given logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return ctxt.With(ctx, logger)
}
