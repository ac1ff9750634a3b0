// Package terminal owns raw-mode console input for StageScript. It wraps
// chzyer/readline, which handles backspace editing and restores normal
// terminal mode on every exit path.
package terminal

import (
	"io"
	"os"

	"github.com/chzyer/readline"

	"stagescript/internal/logger"
)

// Reader reads one user-submitted line per call. Ctrl-C and Ctrl-D are the
// escape-to-exit keys: they terminate the whole process immediately, with no
// cleanup beyond restoring the terminal mode.
type Reader struct {
	rl *readline.Instance
}

// NewReader creates a Reader attached to the controlling terminal.
func NewReader() (*Reader, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, err
	}
	return &Reader{rl: rl}, nil
}

// ReadLine blocks until the user submits a line with Enter. The exit keys
// never return; everything else is the raw line or the underlying error.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		logger.Debug("exit key received, terminating")
		_ = r.rl.Close()
		os.Exit(0)
	}
	return line, err
}

// Close restores the terminal.
func (r *Reader) Close() error {
	return r.rl.Close()
}

// PromptLine asks a one-off question on the terminal and returns the answer.
// Used by the CLI when no script path was given on the command line.
func PromptLine(prompt string) (string, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()
	return rl.Readline()
}
