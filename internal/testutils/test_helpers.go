// Package testutils provides shared fixtures for StageScript tests:
// a scripted line reader standing in for the terminal, and canned scripts.
package testutils

import (
	"io"
)

// ScriptedReader replays a fixed sequence of input lines. It satisfies the
// interpreter's LineReader interface so tests never touch a real terminal.
type ScriptedReader struct {
	lines []string
	pos   int
}

// NewScriptedReader creates a reader that yields the given lines in order
// and io.EOF afterwards.
func NewScriptedReader(lines ...string) *ScriptedReader {
	return &ScriptedReader{lines: lines}
}

// ReadLine returns the next scripted line, or io.EOF when exhausted.
func (r *ScriptedReader) ReadLine() (string, error) {
	if r.pos >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.pos]
	r.pos++
	return line, nil
}

// Reads reports how many lines have been consumed.
func (r *ScriptedReader) Reads() int {
	return r.pos
}

// GreetingScript is the canonical two-stage dialogue: ask for a name,
// greet with it, then exit through an EMPTY arm.
const GreetingScript = `STAGE initial
SPEAK "Hello, what's your name?"
INPUT name
NEXT next

STAGE next
SPEAK "Hello, " + name
MATCH EMPTY
NEXT EXIT
`

// BranchScript routes yes/no answers to two different stages.
const BranchScript = `STAGE initial
SPEAK "Do you want to continue?"
MATCH "yes"
NEXT again
MATCH "no"
NEXT goodbye

STAGE again
SPEAK "Great, once more."
DEFAULT
NEXT initial

STAGE goodbye
SPEAK "Goodbye."
MATCH EMPTY
NEXT EXIT
`
