package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownPhase = errors.New("unknown phase")

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseRollCall
	PhasePlayerCount
	PhaseChooseCharacter
	PhasePlay
	PhaseEndGame
	PhaseExit
)

var phaseNames = map[Phase]string{
	PhaseUninitialized:   "uninitialized",
	PhaseRollCall:        "roll_call",
	PhasePlayerCount:     "player_count",
	PhaseChooseCharacter: "choose_character",
	PhasePlay:            "play",
	PhaseEndGame:         "end_game",
	PhaseExit:            "exit",
}

func (that Phase) String() string {
	if name, ok := phaseNames[that]; ok {
		return name
	}

	return fmt.Sprintf("phase(%d)", int(that))
}

func (that Phase) MarshalText() ([]byte, error) {
	name, ok := phaseNames[that]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, int(that))
	}

	return []byte(name), nil
}

func (that *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*that = phase
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownPhase, string(text))
}
