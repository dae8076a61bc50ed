package main

import (
	"github.com/spf13/pflag"
	"github.com/twipi/twiparse/internal/cfgutil"
	"github.com/twipi/twiparse/twiparse"
)

const (
	defaultPrefix = "!"
	// selfID is the identity of the account receiving messages.
	selfID = "twiparse"
	userID = "user"
)

type config struct {
	// Prefixes may refer to environment variables, e.g. "$BOT_PREFIX".
	Prefixes []cfgutil.EnvString `toml:"prefixes" json:"prefixes"`
	twiparse.Options
}

// loadConfig reads the config file, if any, and applies the flags that were
// set on top of it.
func loadConfig() (*twiparse.Parser, error) {
	var cfg config

	if configFile != "" {
		if err := cfgutil.LoadFile(configFile, &cfg); err != nil {
			return nil, err
		}
	}

	// Prefixes from flags are taken literally, since the shell has already
	// expanded them.
	prefixList := cfgutil.Values(cfg.Prefixes)

	flags := pflag.CommandLine
	switch {
	case flags.Changed("prefix"):
		prefixList = prefixes
	case len(prefixList) == 0:
		prefixList = []string{defaultPrefix}
	}

	if flags.Changed("allow-bots") {
		cfg.AllowBots = allowBots
	}
	if flags.Changed("allow-self") {
		cfg.AllowSelf = allowSelf
	}
	if flags.Changed("unescape") {
		cfg.Unescape = unescape
	}
	if flags.Changed("shell") {
		cfg.Grammar = twiparse.ChatGrammar
		if shell {
			cfg.Grammar = twiparse.ShellGrammar
		}
	}

	return twiparse.NewParser(twiparse.AnyPrefix(prefixList...), cfg.Options), nil
}

// newMessage wraps text into a message from the user given by the --bot and
// --self flags.
func newMessage(text string) twiparse.TextMessage {
	author := userID
	if fromSelf {
		author = selfID
	}

	return twiparse.TextMessage{
		Text:   text,
		Author: author,
		Bot:    fromBot,
		Self:   selfID,
	}
}
