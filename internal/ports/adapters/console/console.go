package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
)

const (
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// Operator talks to a human over a line-oriented terminal.
type Operator struct {
	out      io.Writer
	colorize bool
	lines    chan string
	// err is set before lines is closed.
	err error
}

// New starts reading in on a background goroutine so a pending prompt can be
// abandoned when the context is cancelled.
func New(in io.Reader, out io.Writer) *Operator {
	o := &Operator{
		out:      out,
		colorize: isTerminal(out),
		lines:    make(chan string),
	}
	go o.read(in)
	return o
}

func (o *Operator) read(in io.Reader) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		o.lines <- sc.Text()
	}
	o.err = sc.Err()
	close(o.lines)
}

// Ask prints prompt and waits for one line. End of input and context
// cancellation both report highlights.ErrCancelled.
func (o *Operator) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", highlights.ErrCancelled
	}
	fmt.Fprint(o.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(o.out)
		return "", highlights.ErrCancelled
	case text, ok := <-o.lines:
		if ok {
			return strings.TrimRight(text, "\r"), nil
		}
		fmt.Fprintln(o.out)
		if o.err != nil {
			return "", fmt.Errorf("read operator input: %w", o.err)
		}
		return "", highlights.ErrCancelled
	}
}

func (o *Operator) Say(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

func (o *Operator) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.colorize {
		msg = ansiRed + msg + ansiReset
	}
	fmt.Fprintln(o.out, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
