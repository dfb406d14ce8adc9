package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const (
	Prompt         = "Enter your search query (type 'exit' or 'quit' to stop): "
	ExitMessage    = "Exiting MCP Agent."
	ClearedMessage = "Conversation history cleared"

	defaultWordWrap = 100
)

// Runner answers one query at a time. *agent.Agent satisfies it.
type Runner interface {
	Run(ctx context.Context, query string, out io.Writer) (string, error)
	ClearHistory()
}

// Options control how answers are printed.
type Options struct {
	// Markdown buffers each answer and renders it with glamour instead of streaming raw text.
	Markdown bool
	WordWrap int
	// Style is a glamour standard style name; empty picks one from the terminal background.
	Style string
}

// REPL is the interactive chat loop.
type REPL struct {
	runner Runner
	in     io.Reader
	out    io.Writer
	opts   Options

	renderer *glamour.TermRenderer
	errStyle lipgloss.Style
	dimStyle lipgloss.Style
}

// NewREPL creates a REPL reading queries from in and writing answers to out.
func NewREPL(runner Runner, in io.Reader, out io.Writer, opts Options) (*REPL, error) {
	if opts.WordWrap <= 0 {
		opts.WordWrap = defaultWordWrap
	}

	r := &REPL{runner: runner, in: in, out: out, opts: opts}

	styles := lipgloss.NewRenderer(out)
	r.errStyle = styles.NewStyle().Foreground(lipgloss.Color("9"))
	r.dimStyle = styles.NewStyle().Faint(true)

	if opts.Markdown {
		style := glamour.WithAutoStyle()
		if opts.Style != "" {
			style = glamour.WithStandardStyle(opts.Style)
		}
		renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.WordWrap))
		if err != nil {
			return nil, fmt.Errorf("create markdown renderer: %w", err)
		}
		r.renderer = renderer
	}
	return r, nil
}

// Run reads queries until exit, EOF or ctx cancellation. A failed query is
// reported and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(query) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(r.out, ExitMessage)
			return nil
		case "clear":
			r.runner.ClearHistory()
			fmt.Fprintln(r.out, r.dimStyle.Render(ClearedMessage))
			continue
		}

		if err := r.answer(ctx, query); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			log.Error().Err(err).Msg("query failed")
			fmt.Fprintln(r.out, r.errStyle.Render("Error: "+err.Error()))
		}
	}
}

func (r *REPL) answer(ctx context.Context, query string) error {
	if r.renderer == nil {
		_, err := r.runner.Run(ctx, query, r.out)
		fmt.Fprintln(r.out)
		return err
	}

	var buf bytes.Buffer
	if _, err := r.runner.Run(ctx, query, &buf); err != nil {
		return err
	}
	rendered, err := r.renderer.Render(buf.String())
	if err != nil {
		log.Warn().Err(err).Msg("markdown render failed, printing raw answer")
		rendered = buf.String() + "\n"
	}
	_, err = io.WriteString(r.out, rendered)
	return err
}
