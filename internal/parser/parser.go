// Package parser reconstructs the stage state machine from a flat command
// stream. The command-ordering grammar is an explicit finite-state machine:
// a single dispatch table keyed by (state, command kind) decides legality,
// and a per-stage accumulator collects speak templates and transitions.
package parser

import (
	"fmt"

	"github.com/charmbracelet/log"

	"stagescript/internal/logger"
	"stagescript/pkg/stagetypes"
)

// parseState enumerates the grammar positions between commands.
type parseState int

const (
	// stateInit - before the first STAGE
	stateInit parseState = iota
	// stateStage - STAGE seen, awaiting SPEAK
	stateStage
	// stateSpeak - SPEAK recorded, awaiting MATCH, DEFAULT or INPUT
	stateSpeak
	// stateMatch - match pattern stashed (MATCH or DEFAULT), awaiting NEXT
	stateMatch
	// stateInput - input variable stashed, awaiting NEXT
	stateInput
	// stateMatchNext - a match arm completed; more arms or a new STAGE may follow
	stateMatchNext
	// stateInputNext - input binding completed; only a new STAGE may follow
	stateInputNext
)

// String returns a human-readable name for the grammar state.
func (s parseState) String() string {
	switch s {
	case stateInit:
		return "Init"
	case stateStage:
		return "Stage"
	case stateSpeak:
		return "Speak"
	case stateMatch:
		return "Match"
	case stateInput:
		return "Input"
	case stateMatchNext:
		return "MatchNext"
	case stateInputNext:
		return "InputNext"
	default:
		return "Unknown"
	}
}

// grammar is the dispatch table: grammar[state][kind] is the successor
// state. A missing entry is a grammar violation, so the set of illegal
// transitions is enumerable and testable in isolation.
var grammar = map[parseState]map[stagetypes.CommandKind]parseState{
	stateInit: {
		stagetypes.CommandStage: stateStage,
	},
	stateStage: {
		stagetypes.CommandSpeak: stateSpeak,
	},
	stateSpeak: {
		stagetypes.CommandMatch:   stateMatch,
		stagetypes.CommandDefault: stateMatch,
		stagetypes.CommandInput:   stateInput,
	},
	stateMatch: {
		stagetypes.CommandNext: stateMatchNext,
	},
	stateInput: {
		stagetypes.CommandNext: stateInputNext,
	},
	stateMatchNext: {
		stagetypes.CommandMatch:   stateMatch,
		stagetypes.CommandDefault: stateMatch,
		stagetypes.CommandStage:   stateStage,
	},
	stateInputNext: {
		stagetypes.CommandStage: stateStage,
	},
}

// stageAccumulator gathers one stage's pieces until the stage is flushed
// into the map at the next STAGE or at end of stream.
type stageAccumulator struct {
	name     string
	line     int
	speak    string
	hasSpeak bool
	pending  string
	arms     []stagetypes.MatchArm
	input    *stagetypes.InputTransition
}

// transition returns the accumulated transition, or nil if no NEXT was
// ever reached for this stage.
func (a *stageAccumulator) transition() stagetypes.Transition {
	if a.input != nil {
		return a.input
	}
	if len(a.arms) > 0 {
		return &stagetypes.MatchTransition{Arms: a.arms}
	}
	return nil
}

// Parser consumes a command stream once, left to right, and emits a StageMap.
type Parser struct {
	logger *log.Logger
}

// New creates a Parser.
func New() *Parser {
	return &Parser{logger: logger.NewStyledLogger("Parser")}
}

// Parse validates command ordering and builds the stage map. The first
// grammar violation aborts with a ParseError carrying the offending line
// and command text. A stage that recorded a SPEAK but never completed a
// transition is a ParseError as well, whether it is cut off by end of
// stream or would otherwise flush incomplete.
func (p *Parser) Parse(commands []stagetypes.Command) (stagetypes.StageMap, error) {
	stages := make(stagetypes.StageMap)
	state := stateInit
	var current *stageAccumulator

	for _, cmd := range commands {
		next, legal := grammar[state][cmd.Kind]
		if !legal {
			return nil, &stagetypes.ParseError{
				Line:    cmd.Line,
				Command: cmd.String(),
				Message: "unexpected context",
			}
		}
		p.logger.Debug("grammar step", "state", state, "command", cmd.String(), "next", next)

		switch cmd.Kind {
		case stagetypes.CommandStage:
			if err := p.flush(stages, current); err != nil {
				return nil, err
			}
			current = &stageAccumulator{name: cmd.Arg, line: cmd.Line}
		case stagetypes.CommandSpeak:
			current.speak = cmd.Arg
			current.hasSpeak = true
		case stagetypes.CommandMatch:
			current.pending = cmd.Arg
		case stagetypes.CommandDefault:
			current.pending = stagetypes.WildcardPattern
		case stagetypes.CommandInput:
			current.pending = cmd.Arg
		case stagetypes.CommandNext:
			if state == stateMatch {
				current.arms = append(current.arms, stagetypes.MatchArm{
					Pattern:   current.pending,
					NextStage: cmd.Arg,
				})
			} else {
				current.input = &stagetypes.InputTransition{
					Variable:  current.pending,
					NextStage: cmd.Arg,
				}
			}
		}
		state = next
	}

	if err := p.flush(stages, current); err != nil {
		return nil, err
	}
	return stages, nil
}

// flush inserts the accumulated stage into the map. A stage that was opened
// but never given a SPEAK is dropped; a stage with a SPEAK but no completed
// transition is an internal-consistency violation surfaced as a ParseError.
func (p *Parser) flush(stages stagetypes.StageMap, current *stageAccumulator) error {
	if current == nil || !current.hasSpeak {
		return nil
	}
	transition := current.transition()
	if transition == nil {
		return &stagetypes.ParseError{
			Line:    current.line,
			Command: fmt.Sprintf("STAGE %s", current.name),
			Message: "stage left without a completed transition",
		}
	}
	stages[current.name] = &stagetypes.StageBlock{
		Name:       current.name,
		Speak:      current.speak,
		Transition: transition,
	}
	p.logger.Debug("stage flushed", "stage", current.name)
	return nil
}
