// Package shell runs an interactive timedeck-ctl prompt on top of readline.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
)

// DefaultPrompt is shown before every line.
const DefaultPrompt = "timedeck> "

// ErrUnterminatedQuote is returned by Split for a line with an open quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// LineReader yields input lines. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Executor runs one parsed command line and writes its output to out.
type Executor func(ctx context.Context, args []string, out io.Writer) error

// Shell reads command lines and hands them to an Executor.
type Shell struct {
	lines LineReader
	out   io.Writer
	exec  Executor
}

// New opens a readline prompt on the terminal.
func New(exec Executor) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline: %w", err)
	}

	return NewWithReader(rl, rl.Stdout(), exec), nil
}

// NewWithReader builds a shell over an arbitrary line source.
func NewWithReader(lines LineReader, out io.Writer, exec Executor) *Shell {
	return &Shell{lines: lines, out: out, exec: exec}
}

// Run loops until EOF, an exit command or ctx cancellation. Command errors
// are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	defer func() {
		_ = s.lines.Close()
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.lines.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}

			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read line: %w", err)
		}

		args, err := Split(line)
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "error: %v\n", err)

			continue
		}

		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit", "q":
			return nil
		}

		if err = s.exec(ctx, args, s.out); err != nil {
			_, _ = fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// Split breaks a line into words with POSIX shell quoting rules. An empty
// line yields no words.
func Split(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnterminatedQuote, err)
	}

	if len(args) == 0 {
		return nil, nil
	}

	return args, nil
}
