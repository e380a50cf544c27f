package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
)

func TestAsk_ReadsLines(t *testing.T) {
	var out bytes.Buffer
	op := New(strings.NewReader("10\r\n 70 \n"), &out)

	a, err := op.Ask(context.Background(), "Start: ")
	if err != nil || a != "10" {
		t.Fatalf("first answer = %q, %v", a, err)
	}
	b, err := op.Ask(context.Background(), "End: ")
	if err != nil || b != " 70 " {
		t.Fatalf("second answer = %q, %v", b, err)
	}
	if !strings.Contains(out.String(), "Start: ") || !strings.Contains(out.String(), "End: ") {
		t.Fatalf("prompts not written: %q", out.String())
	}
}

func TestAsk_EOFIsCancel(t *testing.T) {
	op := New(strings.NewReader(""), io.Discard)
	for i := 0; i < 2; i++ {
		if _, err := op.Ask(context.Background(), "> "); !errors.Is(err, highlights.ErrCancelled) {
			t.Fatalf("expected ErrCancelled at EOF, got %v", err)
		}
	}
}

func TestRead_StopsAtEOF(t *testing.T) {
	op := New(strings.NewReader("only\n"), io.Discard)
	if a, err := op.Ask(context.Background(), "> "); err != nil || a != "only" {
		t.Fatalf("answer = %q, %v", a, err)
	}
	select {
	case _, ok := <-op.lines:
		if ok {
			t.Fatalf("expected no more lines after EOF")
		}
	case <-time.After(time.Second):
		t.Fatalf("reader goroutine still running after EOF")
	}
}

func TestAsk_ReadErrorIsNotCancel(t *testing.T) {
	boom := errors.New("boom")
	op := New(iotest.ErrReader(boom), io.Discard)

	_, err := op.Ask(context.Background(), "> ")
	if !errors.Is(err, boom) || errors.Is(err, highlights.ErrCancelled) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestAsk_ContextCancelIsCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	op := New(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := op.Ask(ctx, "> "); !errors.Is(err, highlights.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestAsk_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	op := New(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := op.Ask(ctx, "> ")
		done <- err
	}()
	cancel()
	if err := <-done; !errors.Is(err, highlights.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestWarn_NoColorForBuffers(t *testing.T) {
	var out bytes.Buffer
	op := New(strings.NewReader(""), &out)
	op.Warn("bad %d", 1)
	if out.String() != "bad 1\n" {
		t.Fatalf("unexpected warn output %q", out.String())
	}
}
