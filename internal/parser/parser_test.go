package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagescript/pkg/stagetypes"
)

func cmd(kind stagetypes.CommandKind, arg string, line int) stagetypes.Command {
	return stagetypes.Command{Kind: kind, Arg: arg, Line: line}
}

func TestParse_BuildsStageMap(t *testing.T) {
	commands := []stagetypes.Command{
		cmd(stagetypes.CommandStage, "stage1", 1),
		cmd(stagetypes.CommandSpeak, "speak1", 2),
		cmd(stagetypes.CommandMatch, "pattern1", 3),
		cmd(stagetypes.CommandNext, "stage2", 4),
		cmd(stagetypes.CommandMatch, "pattern2", 5),
		cmd(stagetypes.CommandNext, "stage3", 6),
		cmd(stagetypes.CommandStage, "stage2", 7),
		cmd(stagetypes.CommandSpeak, "speak2", 8),
		cmd(stagetypes.CommandMatch, "pattern3", 9),
		cmd(stagetypes.CommandNext, "stage1", 10),
		cmd(stagetypes.CommandDefault, "", 11),
		cmd(stagetypes.CommandNext, "stage1", 12),
		cmd(stagetypes.CommandStage, "stage3", 13),
		cmd(stagetypes.CommandSpeak, "speak3", 14),
		cmd(stagetypes.CommandInput, "input1", 15),
		cmd(stagetypes.CommandNext, "stage1", 16),
	}

	stages, err := New().Parse(commands)
	require.NoError(t, err)

	expected := stagetypes.StageMap{
		"stage1": {
			Name:  "stage1",
			Speak: "speak1",
			Transition: &stagetypes.MatchTransition{Arms: []stagetypes.MatchArm{
				{Pattern: "pattern1", NextStage: "stage2"},
				{Pattern: "pattern2", NextStage: "stage3"},
			}},
		},
		"stage2": {
			Name:  "stage2",
			Speak: "speak2",
			Transition: &stagetypes.MatchTransition{Arms: []stagetypes.MatchArm{
				{Pattern: "pattern3", NextStage: "stage1"},
				{Pattern: ".*", NextStage: "stage1"},
			}},
		},
		"stage3": {
			Name:  "stage3",
			Speak: "speak3",
			Transition: &stagetypes.InputTransition{
				Variable:  "input1",
				NextStage: "stage1",
			},
		},
	}
	assert.Equal(t, expected, stages)
}

func TestParse_EmptyStream(t *testing.T) {
	stages, err := New().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, stages)
}

func TestParse_UnexpectedContext(t *testing.T) {
	tests := []struct {
		name     string
		commands []stagetypes.Command
		line     int
	}{
		{
			name: "speak before any stage",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandSpeak, "hello", 1),
			},
			line: 1,
		},
		{
			name: "match before speak",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandMatch, "yes", 2),
			},
			line: 2,
		},
		{
			name: "default before any stage",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandDefault, "", 1),
			},
			line: 1,
		},
		{
			name: "next with no pending match or input",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandNext, "EXIT", 3),
			},
			line: 3,
		},
		{
			name: "stage directly after speak",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandStage, "other", 3),
			},
			line: 3,
		},
		{
			name: "input after completed match arm",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandMatch, "yes", 3),
				cmd(stagetypes.CommandNext, "EXIT", 4),
				cmd(stagetypes.CommandInput, "name", 5),
			},
			line: 5,
		},
		{
			name: "match after completed input binding",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandInput, "name", 3),
				cmd(stagetypes.CommandNext, "EXIT", 4),
				cmd(stagetypes.CommandMatch, "yes", 5),
			},
			line: 5,
		},
		{
			name: "speak after completed input binding",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandInput, "name", 3),
				cmd(stagetypes.CommandNext, "EXIT", 4),
				cmd(stagetypes.CommandSpeak, "again", 5),
			},
			line: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse(tt.commands)

			var parseErr *stagetypes.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, "unexpected context", parseErr.Message)
		})
	}
}

func TestParse_StageWithoutCompletedTransition(t *testing.T) {
	tests := []struct {
		name     string
		commands []stagetypes.Command
	}{
		{
			name: "speak then end of stream",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
			},
		},
		{
			name: "match with no next then end of stream",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandMatch, "yes", 3),
			},
		},
		{
			name: "input with no next then end of stream",
			commands: []stagetypes.Command{
				cmd(stagetypes.CommandStage, "initial", 1),
				cmd(stagetypes.CommandSpeak, "hello", 2),
				cmd(stagetypes.CommandInput, "name", 3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse(tt.commands)

			var parseErr *stagetypes.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "stage left without a completed transition", parseErr.Message)
			assert.Equal(t, "STAGE initial", parseErr.Command)
		})
	}
}

func TestParse_TrailingStageWithoutSpeakIsDropped(t *testing.T) {
	commands := []stagetypes.Command{
		cmd(stagetypes.CommandStage, "initial", 1),
		cmd(stagetypes.CommandSpeak, "hello", 2),
		cmd(stagetypes.CommandMatch, "EMPTY", 3),
		cmd(stagetypes.CommandNext, "EXIT", 4),
		cmd(stagetypes.CommandStage, "dangling", 5),
	}

	stages, err := New().Parse(commands)
	require.NoError(t, err)
	assert.Len(t, stages, 1)
	assert.Contains(t, stages, "initial")
}

// The grammar table itself is the contract: every legal (state, kind)
// pair is enumerated here, so an accidental table edit shows up as a
// test diff rather than a behavior change downstream.
func TestGrammarTable_LegalTransitions(t *testing.T) {
	type pair struct {
		state parseState
		kind  stagetypes.CommandKind
	}
	legal := map[pair]parseState{
		{stateInit, stagetypes.CommandStage}:        stateStage,
		{stateStage, stagetypes.CommandSpeak}:       stateSpeak,
		{stateSpeak, stagetypes.CommandMatch}:       stateMatch,
		{stateSpeak, stagetypes.CommandDefault}:     stateMatch,
		{stateSpeak, stagetypes.CommandInput}:       stateInput,
		{stateMatch, stagetypes.CommandNext}:        stateMatchNext,
		{stateInput, stagetypes.CommandNext}:        stateInputNext,
		{stateMatchNext, stagetypes.CommandMatch}:   stateMatch,
		{stateMatchNext, stagetypes.CommandDefault}: stateMatch,
		{stateMatchNext, stagetypes.CommandStage}:   stateStage,
		{stateInputNext, stagetypes.CommandStage}:   stateStage,
	}

	states := []parseState{stateInit, stateStage, stateSpeak, stateMatch, stateInput, stateMatchNext, stateInputNext}
	kinds := []stagetypes.CommandKind{
		stagetypes.CommandStage, stagetypes.CommandSpeak, stagetypes.CommandMatch,
		stagetypes.CommandDefault, stagetypes.CommandInput, stagetypes.CommandNext,
	}
	for _, state := range states {
		for _, kind := range kinds {
			got, ok := grammar[state][kind]
			want, expected := legal[pair{state, kind}]
			assert.Equal(t, expected, ok, "state %v kind %v legality", state, kind)
			if expected {
				assert.Equal(t, want, got, "state %v kind %v successor", state, kind)
			}
		}
	}
}

func TestDeparse_RoundTrip(t *testing.T) {
	commands := []stagetypes.Command{
		cmd(stagetypes.CommandStage, "initial", 1),
		cmd(stagetypes.CommandSpeak, `"Hello, what's your name?"`, 2),
		cmd(stagetypes.CommandInput, "name", 3),
		cmd(stagetypes.CommandNext, "next", 4),
		cmd(stagetypes.CommandStage, "next", 5),
		cmd(stagetypes.CommandSpeak, `"Hello, " + name`, 6),
		cmd(stagetypes.CommandMatch, "yes", 7),
		cmd(stagetypes.CommandNext, "initial", 8),
		cmd(stagetypes.CommandDefault, "", 9),
		cmd(stagetypes.CommandNext, "EXIT", 10),
	}

	stages, err := New().Parse(commands)
	require.NoError(t, err)

	reparsed, err := New().Parse(Deparse(stages))
	require.NoError(t, err)
	assert.Equal(t, stages, reparsed)
}
