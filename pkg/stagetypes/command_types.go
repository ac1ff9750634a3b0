// Package stagetypes defines the core data types shared across the StageScript
// compilation and execution pipeline: scanned commands, compiled stage blocks,
// runtime values, and the error taxonomy.
package stagetypes

import "fmt"

// CommandKind enumerates the six command keywords of the StageScript language.
type CommandKind int

const (
	// CommandStage opens a new stage definition: STAGE <name>
	CommandStage CommandKind = iota
	// CommandSpeak records the stage's output template: SPEAK <template>
	CommandSpeak
	// CommandMatch begins a match arm with a pattern: MATCH <pattern>
	CommandMatch
	// CommandDefault begins a wildcard match arm, sugar for MATCH .*
	CommandDefault
	// CommandInput begins an input binding: INPUT <variable>
	CommandInput
	// CommandNext completes the pending match arm or input binding: NEXT <stage>
	CommandNext
)

// String returns the script keyword for the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandStage:
		return "STAGE"
	case CommandSpeak:
		return "SPEAK"
	case CommandMatch:
		return "MATCH"
	case CommandDefault:
		return "DEFAULT"
	case CommandInput:
		return "INPUT"
	case CommandNext:
		return "NEXT"
	default:
		return "UNKNOWN"
	}
}

// Command is one typed command produced by the scanner. Arg is empty for
// DEFAULT. Line is the 1-based source line, kept for diagnostics.
// Commands are immutable once produced.
type Command struct {
	Kind CommandKind
	Arg  string
	Line int
}

// String renders the command the way it appears in diagnostics,
// e.g. "MATCH yes" or "DEFAULT".
func (c Command) String() string {
	if c.Kind == CommandDefault {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s %s", c.Kind, c.Arg)
}
