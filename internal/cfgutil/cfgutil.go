// Package cfgutil loads configuration files.
package cfgutil

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Decode decodes a config of the given format into dst. The supported formats
// are "toml" and "json". Unknown fields are an error.
func Decode(r io.Reader, format string, dst any) error {
	switch format {
	case "toml":
		return toml.NewDecoder(r).DisallowUnknownFields().Decode(dst)
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(dst)
	default:
		return errors.Errorf("unsupported config type %q", format)
	}
}

// FormatOf returns the config format of a file from its extension.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// LoadFile decodes the config file at path into dst. Values already in dst
// are kept unless the file sets them.
func LoadFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	if err := Decode(f, FormatOf(path), dst); err != nil {
		return errors.Wrapf(err, "cannot parse config file %q", path)
	}

	return nil
}

// Env is a value that is read from an environment variable if it is of the
// form $ENV or ${ENV}.
type Env[T ~string] string

func (env Env[T]) String() string {
	return string(env.Value())
}

// Value returns the value, expanding it if it refers to the environment.
func (env Env[T]) Value() T {
	if strings.HasPrefix(string(env), "$") {
		return T(os.ExpandEnv(string(env)))
	}
	return T(env)
}

// EnvString is a string variant of Env.
type EnvString = Env[string]

// Values returns the values of all envs in order.
func Values[T ~string](envs []Env[T]) []T {
	values := make([]T, len(envs))
	for i, env := range envs {
		values[i] = env.Value()
	}
	return values
}

// VerbosityToLevel lowers the base level by one step for every count of
// verbosity, e.g. from Warn to Info to Debug.
func VerbosityToLevel(base slog.Level, verbosity int) slog.Level {
	return base - slog.Level(4*verbosity)
}
