package stagetypes

import "fmt"

// Reserved stage names and patterns of the language.
const (
	// InitialStage is where every interpretation run starts.
	InitialStage = "initial"
	// ExitStage is the terminal sentinel. It is never a StageMap key;
	// transitioning to it halts the run successfully.
	ExitStage = "EXIT"
	// EmptyPattern marks a match arm that transitions without reading input.
	// It must be the only arm of its stage, enforced at run time.
	EmptyPattern = "EMPTY"
	// WildcardPattern is the pattern a DEFAULT command desugars to.
	WildcardPattern = ".*"
)

// MatchArm is one pattern/destination pair of a Match transition.
// Arms keep declaration order; the first matching arm wins.
type MatchArm struct {
	Pattern   string
	NextStage string
}

// Transition is the tagged union of the two ways a stage hands off control.
// Exactly MatchTransition and InputTransition implement it.
type Transition interface {
	// NextStages returns every stage name the transition can lead to.
	NextStages() []string
	transition()
}

// MatchTransition routes on user input matched against arms in declared order.
type MatchTransition struct {
	Arms []MatchArm
}

func (t *MatchTransition) transition() {}

// NextStages returns the destination of each arm in declaration order.
func (t *MatchTransition) NextStages() []string {
	next := make([]string, len(t.Arms))
	for i, arm := range t.Arms {
		next[i] = arm.NextStage
	}
	return next
}

// InputTransition reads one line of input into Variable, then transitions
// unconditionally.
type InputTransition struct {
	Variable  string
	NextStage string
}

func (t *InputTransition) transition() {}

// NextStages returns the single unconditional destination.
func (t *InputTransition) NextStages() []string {
	return []string{t.NextStage}
}

// StageBlock is one compiled stage: its name, raw speak template, and
// transition. Created once when the parser closes the stage, never mutated
// after insertion into the StageMap.
type StageBlock struct {
	Name       string
	Speak      string
	Transition Transition
}

// String renders the block in the multi-line diagnostic form used by
// `stagescript check`.
func (b *StageBlock) String() string {
	out := fmt.Sprintf("Stage: %s\n  Speak: %s\n", b.Name, b.Speak)
	switch t := b.Transition.(type) {
	case *MatchTransition:
		for _, arm := range t.Arms {
			out += fmt.Sprintf("  Match: %s -> %s\n", arm.Pattern, arm.NextStage)
		}
	case *InputTransition:
		out += fmt.Sprintf("  Input: %s -> %s\n", t.Variable, t.NextStage)
	}
	return out
}

// StageMap is the compiled state machine: stage name to stage block.
// Built by the parser, read-only during interpretation.
type StageMap map[string]*StageBlock
