// Package twiparse parses chat messages into commands. A message such as
//
//	!say "hello world" ```go
//	fmt.Println("hi")```
//
// with the prefix "!" is parsed into the command "say" and the arguments
// ["hello world", "fmt.Println(\"hi\")"].
//
// Parsing never fails with a Go error. Instead, the returned [Result] reports
// whether the message is a command and, if not, why.
package twiparse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Result is the result of parsing a message.
type Result struct {
	// Success is true if the message is a well-formed command. It is true if
	// and only if Code is CodeOK.
	Success bool `json:"success"`
	// Prefix is the prefix that the message starts with. It is empty if no
	// prefix matched.
	Prefix string `json:"prefix"`
	// Command is the command name immediately following the prefix.
	Command string `json:"command"`
	// Arguments are the arguments following the command. It is nil if
	// parsing failed and non-nil otherwise.
	Arguments []string `json:"arguments"`
	// Body is the text after the command with surrounding whitespace
	// removed, not split into arguments.
	Body string `json:"body"`
	// Error is a description of why parsing failed.
	Error string `json:"error,omitempty"`
	// Code is the result code.
	Code Code `json:"code"`
	// Message is the message that was parsed.
	Message Message `json:"-"`
}

// Parse parses msg as a command that starts with one of the given prefixes.
// It always returns a non-nil Result.
func Parse(msg Message, prefixes Prefixes, opts Options) (result *Result) {
	result = &Result{Message: msg}

	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("panic while parsing message: %v", r)
			*result = Result{Message: msg}
			result.fail(CodeUnknownError, fmt.Sprintf("%+v", err))
		}
	}()

	if code, reason, ok := checkGuards(msg, opts); !ok {
		result.fail(code, reason)
		return result
	}

	prefix, rest, ok := prefixes.Match(msg.Content())
	if !ok {
		result.fail(CodeNoPrefixMatch, "content does not begin with prefix")
		return result
	}

	result.Prefix = prefix

	if rest == "" {
		result.fail(CodeNoBody, "no body to message, only a prefix")
		return result
	}

	command, body, ok := cutCommand(rest)
	if !ok {
		result.fail(CodeNoAlphanumericAfterPrefix, "non-alphanumeric character follows prefix")
		return result
	}

	result.Success = true
	result.Code = CodeOK
	result.Command = command
	result.Body = body
	result.Arguments = Tokenize(body, opts)
	return result
}

func (r *Result) fail(code Code, reason string) {
	r.Success = false
	r.Code = code
	r.Error = reason
	r.Command = ""
	r.Body = ""
	r.Arguments = nil
}

// checkGuards checks the sender and the content of msg before any parsing is
// done. The checks run in order: bot, self, then empty content.
func checkGuards(msg Message, opts Options) (Code, string, bool) {
	if !opts.AllowBots && msg.AuthorIsBot() {
		return CodeBotUser, "bot user", false
	}

	// An unknown receiving account never matches the sender.
	if self := msg.SelfID(); !opts.AllowSelf && self != "" && msg.AuthorID() == self {
		return CodeSelfMessage, "message sent from self", false
	}

	if msg.Content() == "" {
		return CodeNoBody, "message has no content", false
	}

	return CodeOK, "", true
}

// cutCommand splits the text after the prefix into the command name and the
// trimmed body. It returns false if text doesn't start with a command name.
func cutCommand(text string) (command, body string, ok bool) {
	n := strings.IndexFunc(text, func(r rune) bool { return !isCommandRune(r) })
	switch n {
	case 0:
		return "", "", false
	case -1:
		n = len(text)
	}

	return text[:n], strings.TrimSpace(text[n:]), true
}

// isCommandRune returns true if r may appear in a command name.
func isCommandRune(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_.", r))
}
