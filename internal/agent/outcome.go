package agent

import (
	"fmt"
)

// OutcomeKind tells how a turn ended
type OutcomeKind int

const (
	// OutcomeAnswer means the model produced a final answer
	OutcomeAnswer OutcomeKind = iota
	// OutcomeExhausted means the model kept requesting tools past the ceiling
	OutcomeExhausted
	// OutcomeEmpty means the model replied with neither text nor tool requests
	OutcomeEmpty
	// OutcomeFailed means the gateway call failed
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAnswer:
		return "answer"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

const (
	exhaustedText = "Maximum iterations reached without a final answer."
	emptyText     = "The model returned an empty response."
	notExecuted   = "Error: not executed, maximum steps reached"
)

// Outcome is the result of one turn of the loop
type Outcome struct {
	Kind OutcomeKind
	// Text is the answer. With Degraded set it is the model's reasoning,
	// used because the reply itself was blank.
	Text     string
	Degraded bool
	// Err is set only for OutcomeFailed
	Err error
	// Steps counts the tool rounds executed during the turn
	Steps int
}

// Message renders the outcome the way Chat reports it
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeAnswer:
		return o.Text
	case OutcomeExhausted:
		return exhaustedText
	case OutcomeEmpty:
		return emptyText
	default:
		if o.Err != nil {
			return "Error: " + o.Err.Error()
		}
		return "Error: unknown failure"
	}
}
