package twiparse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

const codeFence = "```"

// tokenKind is the kind of argument the scanner is reading.
type tokenKind uint8

const (
	bareWord tokenKind = iota
	doubleQuoted
	singleQuoted
	codeBlock
)

// Tokenize splits body into arguments using the grammar in opts. It never
// fails; the returned slice is never nil.
func Tokenize(body string, opts Options) []string {
	args := []string{}
	scanner := NewScanner(body, opts)
	for scanner.Scan() {
		args = append(args, scanner.Token())
	}
	return args
}

// Scanner reads arguments one at a time. A Scanner must not be used from
// multiple goroutines.
type Scanner struct {
	text  string
	token string
	opts  Options
	shell *syntax.Parser
	env   *expand.Config
}

// NewScanner creates a new Scanner over text.
func NewScanner(text string, opts Options) *Scanner {
	return &Scanner{
		text: text,
		opts: opts,
	}
}

// Token returns the argument read by the last call to Scan.
func (s *Scanner) Token() string {
	return s.token
}

// Tail returns the text that has not been scanned yet, without leading
// whitespace.
func (s *Scanner) Tail() string {
	return strings.TrimLeftFunc(s.text, unicode.IsSpace)
}

// Scan reads the next argument. It returns false once there is nothing left.
func (s *Scanner) Scan() bool {
	s.text = s.Tail()
	if s.text == "" {
		s.token = ""
		return false
	}

	var n int
	switch s.opts.Grammar {
	case ShellGrammar:
		s.token, n = s.scanShellWord()
	default:
		s.token, n = scanChatToken(s.text, s.opts.Unescape)
	}

	if n <= 0 || n > len(s.text) {
		panic(fmt.Sprintf("scanner consumed %d of %d bytes at %q", n, len(s.text), s.text))
	}

	s.text = s.text[n:]
	return true
}

// ScanN reads up to n arguments. If n is negative, all remaining arguments
// are read.
func (s *Scanner) ScanN(n int) []string {
	var tokens []string
	if n >= 0 {
		tokens = make([]string, 0, n)
	}
	for (n < 0 || len(tokens) < n) && s.Scan() {
		tokens = append(tokens, s.Token())
	}
	return tokens
}

// scanChatToken reads one argument from the start of text, which must not
// start with whitespace. It returns the argument and the number of bytes
// consumed.
func scanChatToken(text string, unescape bool) (string, int) {
	kind := bareWord
	switch {
	case text[0] == '"':
		kind = doubleQuoted
	case text[0] == '\'':
		kind = singleQuoted
	case strings.HasPrefix(text, codeFence):
		kind = codeBlock
	}

	switch kind {
	case doubleQuoted, singleQuoted:
		if end := closingQuote(text); end > 0 {
			inner := text[1:end]
			if unescape {
				inner = unescapeQuoted(inner)
			}
			return inner, end + 1
		}
	case codeBlock:
		if end := strings.Index(text[len(codeFence):], codeFence); end >= 0 {
			inner := text[len(codeFence) : len(codeFence)+end]
			return stripLanguageTag(inner), len(codeFence) + end + len(codeFence)
		}
	}

	// Unterminated quotes and code blocks are read as plain words.
	return scanBareWord(text)
}

func scanBareWord(text string) (string, int) {
	n := strings.IndexFunc(text, unicode.IsSpace)
	if n < 0 {
		n = len(text)
	}
	return text[:n], n
}

// closingQuote returns the index of the quote that closes the one at text[0],
// or -1. A backslash escapes the byte after it.
func closingQuote(text string) int {
	quote := text[0]
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

func unescapeQuoted(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// stripLanguageTag removes the first line of a code block if it is a single
// word, such as "go" in "```go\n...```". A block starting with a newline has
// the newline removed.
func stripLanguageTag(block string) string {
	nl := strings.IndexByte(block, '\n')
	if nl < 0 {
		return block
	}

	tag := strings.TrimSuffix(block[:nl], "\r")
	if strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return block
	}

	return block[nl+1:]
}

// scanShellWord reads one POSIX shell word from the start of s.text. Text
// that isn't a valid shell word, a word that runs into a shell operator, and a
// word with brace expansions are read as plain words instead.
func (s *Scanner) scanShellWord() (string, int) {
	if s.shell == nil {
		s.shell = syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
		s.env = newShellConfig()
	}

	var first *syntax.Word
	err := s.shell.Words(strings.NewReader(s.text), func(word *syntax.Word) bool {
		first = word
		return false
	})
	if err == nil && first != nil {
		end := int(first.End().Offset())
		if end > 0 && end <= len(s.text) && atWordBoundary(s.text[end:]) && !hasBraces(first) {
			fields, err := expand.Fields(s.env, first)
			if err == nil {
				return strings.Join(fields, " "), end
			}
		}
	}

	return scanBareWord(s.text)
}

// newShellConfig returns an expansion config that reads no environment
// variables, runs no commands and doesn't glob. The config is modified by
// expand, so every Scanner gets its own.
func newShellConfig() *expand.Config {
	return &expand.Config{
		Env: expand.FuncEnviron(func(name string) string {
			// Tilde expansion asks for "HOME <user>" before looking the user
			// up on the system. Answering keeps ~user literal.
			if user, ok := strings.CutPrefix(name, "HOME "); ok {
				return "~" + user
			}
			return ""
		}),
	}
}

// hasBraces reports whether word contains a brace expansion such as {a,b} or
// {1..9}. Those may expand to arbitrarily many fields.
func hasBraces(word *syntax.Word) bool {
	w := *word
	return syntax.SplitBraces(&w)
}

func atWordBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r)
}
