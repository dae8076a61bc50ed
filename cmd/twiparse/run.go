package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/twipi/twiparse/internal/slogctx"
	"github.com/twipi/twiparse/twiparse"
	"golang.org/x/sync/errgroup"
)

// maxLineSize is the longest message that can be read from stdin.
const maxLineSize = 1 << 20

func runArgs(ctx context.Context, parser *twiparse.Parser, out *printer, args []string) (bool, error) {
	ok := true
	for _, arg := range args {
		result := parser.ParseContext(ctx, newMessage(arg))
		ok = ok && result.Success
		if err := out.print(arg, result); err != nil {
			return false, err
		}
	}
	return ok, nil
}

// runBatch parses one message per line of r. Up to jobs messages are parsed
// at once, but results are printed in input order.
func runBatch(ctx context.Context, parser *twiparse.Parser, out *printer, r io.Reader, jobs int) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return false, errors.Wrap(err, "failed to read messages")
	}

	results := make([]*twiparse.Result, len(lines))

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(jobs)

	for i, line := range lines {
		i, line := i, line
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = parser.ParseContext(ctx, newMessage(line))
			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return false, err
	}

	slogctx.From(ctx).Debug("parsed batch", "messages", len(lines), "jobs", jobs)

	ok := true
	for i, result := range results {
		ok = ok && result.Success
		if err := out.print(lines[i], result); err != nil {
			return false, err
		}
	}

	return ok, nil
}

func runInteractive(ctx context.Context, parser *twiparse.Parser) (bool, error) {
	reader, err := readline.New(strings.Join(parser.Prefixes, " ") + " > ")
	if err != nil {
		return false, errors.Wrap(err, "failed to create readline instance")
	}
	defer reader.Close()

	logger := slogctx.From(ctx)
	out := newPrinter(reader.Stdout(), jsonOutput)

	ok := true
	for ctx.Err() == nil {
		line, err := reader.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return ok, nil
			}
			return false, errors.Wrap(err, "failed to read line")
		}

		result := parser.ParseContext(ctx, newMessage(line))
		ok = ok && result.Success
		logger.Debug("parsed message", "result", result)

		if err := out.print(line, result); err != nil {
			logger.Error("failed to print result", tint.Err(err))
		}
	}

	return ok, nil
}

// printer writes results in either a human-readable or a JSON format.
type printer struct {
	mu   sync.Mutex
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, json: asJSON}
}

type jsonResult struct {
	Text string `json:"text"`
	*twiparse.Result
}

func (p *printer) print(text string, result *twiparse.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return json.NewEncoder(p.w).Encode(jsonResult{text, result})
	}

	var err error
	if result.Success {
		quoted := make([]string, len(result.Arguments))
		for i, arg := range result.Arguments {
			quoted[i] = strconv.Quote(arg)
		}
		_, err = fmt.Fprintf(p.w,
			"%s prefix=%q command=%q arguments=[%s]\n",
			result.Code, result.Prefix, result.Command, strings.Join(quoted, " "))
	} else {
		_, err = fmt.Fprintf(p.w, "%s: %s\n", result.Code, result.Error)
	}

	return errors.Wrap(err, "failed to write result")
}
