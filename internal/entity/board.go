package entity

import "slices"

// Outcome is what a single step on the board uncovers.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeBean
	OutcomeMine
)

func (that Outcome) String() string {
	switch that {
	case OutcomeBean:
		return "bean"
	case OutcomeMine:
		return "mine"
	default:
		return "empty"
	}
}

// Board is a linear sequence of cells walked by a shared pointer.
// Mines and Beans are disjoint sets of cell indices in [0, Length).
type Board struct {
	Length  int   `json:"length"`
	Mines   []int `json:"mines"`
	Beans   []int `json:"beans"`
	Pointer int   `json:"pointer"`
}

// Resolve reports what sits at position. Mines win over beans.
func (that *Board) Resolve(position int) Outcome {
	if slices.Contains(that.Mines, position) {
		return OutcomeMine
	}

	if slices.Contains(that.Beans, position) {
		return OutcomeBean
	}

	return OutcomeEmpty
}

// Step resolves the cell under the pointer and moves the pointer forward.
func (that *Board) Step() Outcome {
	outcome := that.Resolve(that.Pointer)
	that.Pointer++

	return outcome
}

func (that *Board) IsGenerated() bool {
	return that.Length > 0
}
