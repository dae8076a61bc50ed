package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/twipi/twiparse/twiparse"
)

func TestRunArgs(t *testing.T) {
	var buf bytes.Buffer
	parser := twiparse.NewParser(twiparse.Prefix("!"), twiparse.Options{})

	ok, err := runArgs(context.Background(), parser, newPrinter(&buf, false), []string{
		`!say "hello world" twice`,
		"! ping",
	})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, ""+
		`OK prefix="!" command="say" arguments=["hello world" "twice"]`+"\n"+
		"NO_ALPHANUMERIC_AFTER_PREFIX: non-alphanumeric character follows prefix\n",
		buf.String())
}

func TestRunBatch(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "?cmd "+strings.Repeat("x", i%5+1))
	}
	lines = append(lines, "not a command")

	var buf bytes.Buffer
	parser := twiparse.NewParser(twiparse.AnyPrefix("!", "?"), twiparse.Options{})

	ok, err := runBatch(context.Background(), parser, newPrinter(&buf, true), strings.NewReader(strings.Join(lines, "\n")), 4)
	assert.NoError(t, err)
	assert.False(t, ok)

	type output struct {
		Text      string   `json:"text"`
		Success   bool     `json:"success"`
		Prefix    string   `json:"prefix"`
		Command   string   `json:"command"`
		Arguments []string `json:"arguments"`
		Code      string   `json:"code"`
	}

	dec := json.NewDecoder(&buf)
	for i, line := range lines {
		var got output
		assert.NoError(t, dec.Decode(&got), "line %d", i)

		want := output{
			Text:      line,
			Success:   true,
			Prefix:    "?",
			Command:   "cmd",
			Arguments: []string{strings.TrimPrefix(line, "?cmd ")},
			Code:      "OK",
		}
		if i == len(lines)-1 {
			want = output{Text: line, Code: "NO_PREFIX_MATCH"}
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("line %d: unexpected output (-want +got):\n%s", i, diff)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TWIPARSE_TEST_PREFIX", "?")

	path := filepath.Join(t.TempDir(), "twiparse.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
prefixes = ["$TWIPARSE_TEST_PREFIX", "!"]
allow_bots = true
grammar = "shell"
`), 0644))

	old := configFile
	configFile = path
	t.Cleanup(func() { configFile = old })

	parser, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, twiparse.Prefixes{"?", "!"}, parser.Prefixes)
	assert.Equal(t, twiparse.Options{AllowBots: true, Grammar: twiparse.ShellGrammar}, parser.Options)
}

func TestLoadConfigDefault(t *testing.T) {
	old := configFile
	configFile = ""
	t.Cleanup(func() { configFile = old })

	parser, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, twiparse.Prefixes{defaultPrefix}, parser.Prefixes)
	assert.Equal(t, twiparse.Options{}, parser.Options)
}

func TestNewMessage(t *testing.T) {
	msg := newMessage("!ping")
	assert.Equal(t, userID, msg.AuthorID())
	assert.Equal(t, selfID, msg.SelfID())
	assert.False(t, msg.AuthorIsBot())

	fromSelf = true
	t.Cleanup(func() { fromSelf = false })

	result := twiparse.Parse(newMessage("!ping"), twiparse.Prefix("!"), twiparse.Options{})
	assert.Equal(t, twiparse.CodeSelfMessage, result.Code)
}
