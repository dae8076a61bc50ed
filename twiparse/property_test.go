package twiparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func drawMessage(t *rapid.T) TextMessage {
	return TextMessage{
		Text:   rapid.String().Draw(t, "text"),
		Author: rapid.SampledFrom([]string{testUserID, testSelfID}).Draw(t, "author"),
		Bot:    rapid.Bool().Draw(t, "bot"),
		Self:   testSelfID,
	}
}

func drawOptions(t *rapid.T) Options {
	return Options{
		AllowBots: rapid.Bool().Draw(t, "allowBots"),
		AllowSelf: rapid.Bool().Draw(t, "allowSelf"),
		Unescape:  rapid.Bool().Draw(t, "unescape"),
		Grammar:   rapid.SampledFrom([]Grammar{ChatGrammar, ShellGrammar}).Draw(t, "grammar"),
	}
}

func TestPropertyParseSuccessMatchesCode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msg := drawMessage(t)
		prefixes := Prefixes(rapid.SliceOfN(rapid.StringN(0, 3, -1), 0, 3).Draw(t, "prefixes"))
		opts := drawOptions(t)

		result := Parse(msg, prefixes, opts)
		if result.Success != (result.Code == CodeOK) {
			t.Fatalf("success %v does not match code %s", result.Success, result.Code)
		}
		if result.Code == CodeUnknownError {
			t.Fatalf("parser failed: %s", result.Error)
		}
		if !result.Success {
			if result.Arguments != nil || result.Command != "" || result.Body != "" {
				t.Fatalf("failed result has parsed fields: %#v", result)
			}
		}
	})
}

func TestPropertyParseIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msg := drawMessage(t)
		prefixes := AnyPrefix(rapid.SliceOfN(rapid.StringN(0, 2, -1), 0, 3).Draw(t, "prefixes")...)
		opts := drawOptions(t)

		r1 := Parse(msg, prefixes, opts)
		r2 := Parse(msg, prefixes, opts)
		if diff := cmp.Diff(r1, r2); diff != "" {
			t.Fatalf("results differ (-first +second):\n%s", diff)
		}
	})
}

func TestPropertyBotIsAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msg := drawMessage(t)
		msg.Bot = true
		prefix := rapid.String().Draw(t, "prefix")

		result := Parse(msg, Prefix(prefix), Options{AllowSelf: rapid.Bool().Draw(t, "allowSelf")})
		if result.Code != CodeBotUser {
			t.Fatalf("expected BOT_USER, got %s", result.Code)
		}
	})
}

func TestPropertyFirstPrefixWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		short := rapid.StringMatching(`[!?$%]{1,3}`).Draw(t, "short")
		long := short + rapid.StringMatching(`[!?$%]{1,2}`).Draw(t, "suffix")
		msg := userMessage(long + "cmd")

		result := Parse(msg, AnyPrefix(short, long), Options{})
		if result.Prefix != short {
			t.Fatalf("expected prefix %q, got %q", short, result.Prefix)
		}

		result = Parse(msg, AnyPrefix(long, short), Options{})
		if !result.Success || result.Prefix != long || result.Command != "cmd" {
			t.Fatalf("expected command cmd with prefix %q, got %#v", long, result)
		}
	})
}

func TestPropertyBareWordsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9.,!?\-]{1,8}`), 0, 6).Draw(t, "words")
		seps := rapid.SliceOfN(rapid.SampledFrom([]string{" ", "  ", "\t", "\n", " \r\n"}), len(words)+1, len(words)+1).Draw(t, "seps")

		var body strings.Builder
		for i, word := range words {
			body.WriteString(seps[i])
			body.WriteString(word)
		}
		body.WriteString(seps[len(words)])

		args := Tokenize(body.String(), Options{})
		if diff := cmp.Diff(words, args, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("unexpected arguments (-want +got):\n%s", diff)
		}

		normalized := strings.Join(strings.Fields(body.String()), " ")
		if joined := strings.Join(args, " "); joined != normalized {
			t.Fatalf("joined arguments %q do not match body %q", joined, normalized)
		}
	})
}

func TestPropertyTokenizeTerminates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body := rapid.StringOf(rapid.SampledFrom([]rune("ab \"'`\\\n\t$~;|&#(){},"))).Draw(t, "body")
		opts := drawOptions(t)

		args := Tokenize(body, opts)
		if len(args) > len(body) {
			t.Fatalf("got %d arguments from %d bytes", len(args), len(body))
		}
	})
}
