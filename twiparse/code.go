package twiparse

import (
	"strconv"

	"github.com/pkg/errors"
)

// Code is the result code of parsing a message. The numeric values are stable
// and may be persisted or sent over the wire.
type Code int

const (
	// CodeOK means the message is a well-formed command.
	CodeOK Code = iota
	// CodeBotUser means the message was sent by a bot account and was
	// ignored. Set Options.AllowBots to override.
	CodeBotUser
	// CodeSelfMessage means the message was sent by the account that
	// received it and was ignored. Set Options.AllowSelf to override.
	CodeSelfMessage
	// CodeNoPrefixMatch means the message does not start with any of the
	// prefixes.
	CodeNoPrefixMatch
	// CodeNoBody means the message is empty or contains only the prefix.
	CodeNoBody
	// CodeNoAlphanumericAfterPrefix means the prefix is followed by a
	// character that cannot start a command name, such as whitespace.
	CodeNoAlphanumericAfterPrefix
	// CodeUnknownError means the parser itself misbehaved. The result's
	// Error field has the diagnostic.
	CodeUnknownError
)

var codeNames = [...]string{
	CodeOK:                        "OK",
	CodeBotUser:                   "BOT_USER",
	CodeSelfMessage:               "SELF_MESSAGE",
	CodeNoPrefixMatch:             "NO_PREFIX_MATCH",
	CodeNoBody:                    "NO_BODY",
	CodeNoAlphanumericAfterPrefix: "NO_ALPHANUMERIC_AFTER_PREFIX",
	CodeUnknownError:              "UNKNOWN_ERROR",
}

// renamedCodes maps names that were removed to the names that replace them.
var renamedCodes = map[string]string{
	"WHITESPACE_AFTER_PREFIX": "NO_ALPHANUMERIC_AFTER_PREFIX",
}

// aliasedCodes maps alternative spellings that are still accepted.
var aliasedCodes = map[string]Code{
	"NO_APLHANUMERIC_AFTER_PREFIX": CodeNoAlphanumericAfterPrefix,
}

var (
	// ErrUnknownCode is returned by ParseCode for names that don't belong to
	// any Code.
	ErrUnknownCode = errors.New("unknown result code")
	// ErrCodeRenamed is returned by ParseCode for names that have been
	// superseded by another Code.
	ErrCodeRenamed = errors.New("result code was renamed")
)

// Codes returns all valid codes in ascending order.
func Codes() []Code {
	codes := make([]Code, len(codeNames))
	for i := range codeNames {
		codes[i] = Code(i)
	}
	return codes
}

// IsValid returns true if c is one of the defined codes.
func (c Code) IsValid() bool {
	return c >= 0 && int(c) < len(codeNames)
}

// String returns the name of the code, e.g. "NO_PREFIX_MATCH".
func (c Code) String() string {
	if !c.IsValid() {
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}
	return codeNames[c]
}

// MarshalText implements [encoding.TextMarshaler].
func (c Code) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, errors.Wrapf(ErrUnknownCode, "code %d", int(c))
	}
	return []byte(codeNames[c]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Code) UnmarshalText(text []byte) error {
	v, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCode returns the Code with the given name. Names that were renamed
// fail with an error wrapping ErrCodeRenamed that names the replacement.
func ParseCode(name string) (Code, error) {
	for i, n := range codeNames {
		if n == name {
			return Code(i), nil
		}
	}

	if c, ok := aliasedCodes[name]; ok {
		return c, nil
	}

	if newName, ok := renamedCodes[name]; ok {
		return CodeUnknownError, errors.Wrapf(ErrCodeRenamed, "use %s instead of %s", newName, name)
	}

	return CodeUnknownError, errors.Wrapf(ErrUnknownCode, "%q", name)
}
