// Package interpreter executes a compiled stage map as a DFA walk: speak,
// read or match, transition, until the terminal sentinel stage is reached.
// Cyclic stage graphs are legal; termination is input-driven, never
// iteration-bounded.
package interpreter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"stagescript/internal/context"
	"stagescript/internal/logger"
	"stagescript/internal/output"
	"stagescript/pkg/stagetypes"
)

// LineReader supplies one user-submitted line per call, blocking until the
// line is complete. The production implementation lives in internal/terminal;
// tests supply scripted readers.
type LineReader interface {
	ReadLine() (string, error)
}

// Interpreter walks a stage map from the initial stage, carrying one
// RunContext for the whole run. Construct a new Interpreter per run.
type Interpreter struct {
	ctx      *context.RunContext
	reader   LineReader
	printer  *output.Printer
	logger   *log.Logger
	patterns map[string]*regexp.Regexp
}

// New creates an Interpreter reading user input from reader and emitting
// dialogue through printer.
func New(reader LineReader, printer *output.Printer) *Interpreter {
	return &Interpreter{
		ctx:      context.New(),
		reader:   reader,
		printer:  printer,
		logger:   logger.NewStyledLogger("Interpreter"),
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Context exposes the run context, for diagnostics and tests.
func (i *Interpreter) Context() *context.RunContext {
	return i.ctx
}

// Interpret runs the stage map until the EXIT sentinel is reached. Any
// RuntimeError aborts the run; I/O failures from the reader or printer are
// wrapped and propagated unchanged.
func (i *Interpreter) Interpret(stages stagetypes.StageMap) error {
	for {
		name := i.ctx.CurrentStage()
		stage, ok := stages[name]
		if !ok {
			return i.runtimeError("stage not found")
		}
		i.logger.Debug("entering stage", "stage", name)

		speak, err := i.formatOutput(stage.Speak)
		if err != nil {
			return err
		}
		if err := i.printer.Println(speak); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		switch t := stage.Transition.(type) {
		case *stagetypes.InputTransition:
			line, err := i.reader.ReadLine()
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			i.ctx.Define(t.Variable, strings.TrimSpace(line))
			i.logger.Debug("variable defined", "variable", t.Variable)
			i.ctx.SetCurrentStage(t.NextStage)
		case *stagetypes.MatchTransition:
			next, err := i.resolveMatch(t.Arms)
			if err != nil {
				return err
			}
			i.ctx.SetCurrentStage(next)
		}

		if i.ctx.CurrentStage() == stagetypes.ExitStage {
			i.logger.Debug("reached terminal stage")
			return nil
		}
	}
}

func (i *Interpreter) runtimeError(message string) error {
	return &stagetypes.RuntimeError{
		Stage:   i.ctx.CurrentStage(),
		Message: message,
	}
}
