package twiparse

import (
	"github.com/pkg/errors"
)

// Options changes how messages are parsed. The zero value is the default.
type Options struct {
	// AllowBots makes the parser consider messages sent by bot accounts.
	AllowBots bool `json:"allow_bots" toml:"allow_bots"`
	// AllowSelf makes the parser consider messages sent by the account that
	// received them. This is mostly useful for selfbots.
	AllowSelf bool `json:"allow_self" toml:"allow_self"`
	// Unescape removes the backslash from escaped characters inside quoted
	// arguments, so that "say \"hi\"" becomes `say "hi"`. By default the
	// backslashes are kept.
	Unescape bool `json:"unescape" toml:"unescape"`
	// Grammar selects how arguments are split. It defaults to ChatGrammar.
	Grammar Grammar `json:"grammar" toml:"grammar"`
}

// Grammar is a set of rules for splitting a command body into arguments.
type Grammar uint8

const (
	// ChatGrammar splits on whitespace and understands "double quotes",
	// 'single quotes' and ```code blocks```. Malformed quotes are kept as
	// literal text.
	ChatGrammar Grammar = iota
	// ShellGrammar splits arguments as POSIX shell words. Variables expand
	// to nothing and command substitutions are kept as literal text.
	ShellGrammar
)

var grammarNames = [...]string{
	ChatGrammar:  "chat",
	ShellGrammar: "shell",
}

// String returns the name of the grammar.
func (g Grammar) String() string {
	if int(g) < len(grammarNames) {
		return grammarNames[g]
	}
	return "unknown"
}

// MarshalText implements [encoding.TextMarshaler].
func (g Grammar) MarshalText() ([]byte, error) {
	if int(g) >= len(grammarNames) {
		return nil, errors.Errorf("unknown grammar %d", g)
	}
	return []byte(grammarNames[g]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. An empty string is
// ChatGrammar.
func (g *Grammar) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*g = ChatGrammar
		return nil
	}
	for i, name := range grammarNames {
		if name == string(text) {
			*g = Grammar(i)
			return nil
		}
	}
	return errors.Errorf("unknown grammar %q", text)
}
