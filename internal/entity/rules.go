package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
)

// Rules are the immutable game constants. They are loaded once at start-up
// and never written by gameplay.
type Rules struct {
	BoardLength int
	BoardJitter int
	MineCount   int
	BeanCount   int

	MinPlayers int
	MaxPlayers int

	MaxStepsPerTurn      int
	StepTimeout          time.Duration
	RollCallTimeout      time.Duration
	RollCallRetryTimeout time.Duration
}

func DefaultRules() Rules {
	return Rules{
		BoardLength:          13,
		MineCount:            3,
		BeanCount:            6,
		MinPlayers:           2,
		MaxPlayers:           4,
		MaxStepsPerTurn:      5,
		StepTimeout:          10 * time.Second,
		RollCallTimeout:      50 * time.Second,
		RollCallRetryTimeout: 30 * time.Second,
	}
}

func (that Rules) Validate() error {
	if that.MineCount < 1 || that.BeanCount < 0 || that.BoardJitter < 0 {
		return fmt.Errorf("%w: mines %d, beans %d, jitter %d",
			apperror.ErrValidation, that.MineCount, that.BeanCount, that.BoardJitter)
	}

	if that.BoardLength <= that.MineCount+that.BeanCount {
		return fmt.Errorf("%w: length %d, mines %d, beans %d",
			apperror.ErrBoardTooSmall, that.BoardLength, that.MineCount, that.BeanCount)
	}

	if that.MinPlayers < 1 || that.MinPlayers > that.MaxPlayers || that.MaxPlayers > len(CharacterPool) {
		return fmt.Errorf("%w: players must be within 1..%d, got %d..%d",
			apperror.ErrOutOfRange, len(CharacterPool), that.MinPlayers, that.MaxPlayers)
	}

	if that.MaxStepsPerTurn < 1 {
		return fmt.Errorf("%w: max steps per turn %d", apperror.ErrOutOfRange, that.MaxStepsPerTurn)
	}

	return nil
}
