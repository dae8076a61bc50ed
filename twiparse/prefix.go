package twiparse

import "strings"

// Prefixes is an ordered list of candidate prefixes. A message matches the
// first candidate it starts with, not the longest one.
type Prefixes []string

// Prefix returns Prefixes containing only the given prefix.
func Prefix(prefix string) Prefixes {
	return Prefixes{prefix}
}

// AnyPrefix returns Prefixes that match any of the given prefixes, tried in
// order. No prefixes means nothing matches.
func AnyPrefix(prefixes ...string) Prefixes {
	return Prefixes(append([]string(nil), prefixes...))
}

// Match returns the first prefix that text starts with and the text that
// follows it. Whitespace after the prefix is kept.
func (p Prefixes) Match(text string) (prefix, rest string, ok bool) {
	for _, prefix := range p {
		if strings.HasPrefix(text, prefix) {
			return prefix, text[len(prefix):], true
		}
	}
	return "", "", false
}
