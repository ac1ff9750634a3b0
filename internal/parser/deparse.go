package parser

import (
	"sort"

	"stagescript/pkg/stagetypes"
)

// Deparse regenerates a canonical command stream from a stage map. Stages
// are emitted in name order with sequential synthetic line numbers; the
// wildcard pattern comes back as an explicit MATCH arm, since DEFAULT is
// pure sugar. Re-parsing the result yields an equal stage map.
func Deparse(stages stagetypes.StageMap) []stagetypes.Command {
	names := make([]string, 0, len(stages))
	for name := range stages {
		names = append(names, name)
	}
	sort.Strings(names)

	var commands []stagetypes.Command
	emit := func(kind stagetypes.CommandKind, arg string) {
		commands = append(commands, stagetypes.Command{
			Kind: kind,
			Arg:  arg,
			Line: len(commands) + 1,
		})
	}

	for _, name := range names {
		block := stages[name]
		emit(stagetypes.CommandStage, block.Name)
		emit(stagetypes.CommandSpeak, block.Speak)
		switch t := block.Transition.(type) {
		case *stagetypes.MatchTransition:
			for _, arm := range t.Arms {
				emit(stagetypes.CommandMatch, arm.Pattern)
				emit(stagetypes.CommandNext, arm.NextStage)
			}
		case *stagetypes.InputTransition:
			emit(stagetypes.CommandInput, t.Variable)
			emit(stagetypes.CommandNext, t.NextStage)
		}
	}
	return commands
}
