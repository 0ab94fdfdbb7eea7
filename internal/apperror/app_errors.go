package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrAlreadyChosen         = errors.New("character is already chosen")
	ErrStaleEvent            = errors.New("event belongs to a previous input handler")
	ErrIllegalTransition     = errors.New("event is not allowed in the current phase")
	ErrInternalInconsistency = errors.New("session state is inconsistent")
	ErrSessionNotFound       = errors.New("session not found")
	ErrBoardTooSmall         = errors.New("board is too small for mines and beans")
)

// Validation errors are recoverable: the user is asked again and the session is not touched.
var (
	ErrOutOfRange           = fmt.Errorf("%w: value out of range", ErrValidation)
	ErrUndefinedPlayerCount = fmt.Errorf("%w: player count is missing", ErrValidation)
	ErrTooManyPlayers       = fmt.Errorf("%w: too many players", ErrOutOfRange)
	ErrTooFewPlayers        = fmt.Errorf("%w: too few players", ErrOutOfRange)
	ErrUndefinedCharacter   = fmt.Errorf("%w: unknown character", ErrValidation)
)

// IsRecoverable reports whether err only needs a reprompt. Game progress is
// kept, though an armed handler may have been stopped.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrAlreadyChosen) ||
		errors.Is(err, ErrStaleEvent) ||
		errors.Is(err, ErrIllegalTransition)
}
