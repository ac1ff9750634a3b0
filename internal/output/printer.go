// Package output provides the console output channel for StageScript.
// Dialogue lines must be visible before the next blocking input read, so
// every write is flushed synchronously when the underlying writer buffers.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// flusher is implemented by buffered writers (e.g. *bufio.Writer).
type flusher interface {
	Flush() error
}

// Printer writes dialogue lines to a destination, flushing after every
// write. The ordering guarantee — prompt visible before input is read —
// is load-bearing for the interpreter, not a nicety.
type Printer struct {
	writer io.Writer

	mu sync.Mutex
}

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithWriter directs output to the given writer instead of os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// NewPrinter creates a Printer, writing to os.Stdout by default.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{writer: os.Stdout}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Println writes one full line and flushes it.
func (p *Printer) Println(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintln(p.writer, text); err != nil {
		return err
	}
	return p.flush()
}

// Print writes text without a trailing newline and flushes it.
func (p *Printer) Print(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprint(p.writer, text); err != nil {
		return err
	}
	return p.flush()
}

func (p *Printer) flush() error {
	if f, ok := p.writer.(flusher); ok {
		return f.Flush()
	}
	return nil
}
