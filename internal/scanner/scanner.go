// Package scanner performs lexical analysis of StageScript source text.
// The format is line-oriented: one command per line, blank lines ignored,
// each non-blank line split at the first whitespace run into a command
// keyword and its raw argument.
package scanner

import (
	"regexp"
	"strings"

	"stagescript/internal/logger"
	"stagescript/pkg/stagetypes"
)

var fieldSplit = regexp.MustCompile(`\s+`)

var keywords = map[string]stagetypes.CommandKind{
	"STAGE":   stagetypes.CommandStage,
	"SPEAK":   stagetypes.CommandSpeak,
	"MATCH":   stagetypes.CommandMatch,
	"DEFAULT": stagetypes.CommandDefault,
	"INPUT":   stagetypes.CommandInput,
	"NEXT":    stagetypes.CommandNext,
}

// Scanner turns script source into an ordered command stream.
type Scanner struct {
	source string
}

// New creates a Scanner over the given UTF-8 source text.
func New(source string) *Scanner {
	return &Scanner{source: source}
}

// Scan tokenizes the whole source. Each command carries its 1-based source
// line number. The first malformed line aborts the scan with a ScanError.
func (s *Scanner) Scan() ([]stagetypes.Command, error) {
	var commands []stagetypes.Command
	for i, line := range strings.Split(s.source, "\n") {
		cmd, ok, err := scanLine(line, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			commands = append(commands, cmd)
		}
	}
	logger.Debug("scan complete", "commands", len(commands))
	return commands, nil
}

// scanLine tokenizes one line. ok is false for blank lines.
func scanLine(line string, lineNo int) (stagetypes.Command, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return stagetypes.Command{}, false, nil
	}

	parts := fieldSplit.Split(trimmed, 2)
	keyword := parts[0]
	argument := ""
	if len(parts) > 1 {
		argument = parts[1]
	}

	kind, known := keywords[keyword]
	if !known {
		return stagetypes.Command{}, false, &stagetypes.ScanError{
			Line:    lineNo,
			Command: trimmed,
			Message: "unknown command",
		}
	}
	if kind == stagetypes.CommandDefault && argument != "" {
		return stagetypes.Command{}, false, &stagetypes.ScanError{
			Line:    lineNo,
			Command: trimmed,
			Message: "unexpected argument",
		}
	}

	return stagetypes.Command{Kind: kind, Arg: argument, Line: lineNo}, true, nil
}
