package twiparse

import (
	"context"
	"log/slog"

	"github.com/twipi/twiparse/internal/slogctx"
)

// Parser parses messages using a fixed set of prefixes and options.
// A Parser is safe for concurrent use.
type Parser struct {
	Prefixes Prefixes
	Options  Options
}

// NewParser creates a new Parser.
func NewParser(prefixes Prefixes, opts Options) *Parser {
	return &Parser{
		Prefixes: prefixes,
		Options:  opts,
	}
}

// Parse parses the given message. See [Parse].
func (p *Parser) Parse(msg Message) *Result {
	return Parse(msg, p.Prefixes, p.Options)
}

// ParseContext is like Parse, except messages that fail to parse are logged
// to the logger in ctx.
func (p *Parser) ParseContext(ctx context.Context, msg Message) *Result {
	result := p.Parse(msg)
	if result.Success {
		return result
	}

	logger := slogctx.From(ctx)
	switch result.Code {
	case CodeUnknownError:
		logger.ErrorContext(ctx,
			"failed to parse message",
			"code", result.Code,
			"author", msg.AuthorID(),
			"err", result.Error)
	default:
		logger.DebugContext(ctx,
			"message is not a command",
			"code", result.Code,
			"author", msg.AuthorID(),
			"reason", result.Error)
	}

	return result
}

// LogValue implements [slog.LogValuer].
func (r *Result) LogValue() slog.Value {
	if !r.Success {
		return slog.GroupValue(
			slog.String("code", r.Code.String()),
			slog.String("error", r.Error))
	}
	return slog.GroupValue(
		slog.String("prefix", r.Prefix),
		slog.String("command", r.Command),
		slog.Int("arguments", len(r.Arguments)))
}
