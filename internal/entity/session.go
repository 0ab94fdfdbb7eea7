package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
)

// Session is the persisted state of one conversation.
type Session struct {
	ID     string `json:"id"`
	Phase  Phase  `json:"phase"`
	Locale string `json:"locale,omitempty"`

	PlayerCount      int               `json:"player_count"`
	CurrentPlayer    int               `json:"current_player"`
	Characters       map[string]string `json:"characters"`
	ChosenCharacters []string          `json:"chosen_characters"`
	OverallScore     map[string]int    `json:"overall_score"`

	DeviceIDs             []string `json:"device_ids"`
	InputHandlerID        string   `json:"input_handler_id,omitempty"`
	ExpectingConfirmation bool     `json:"expecting_confirmation"`

	Game        GameState `json:"game"`
	ReplayCount int       `json:"replay_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:           id,
		Phase:        PhaseUninitialized,
		Characters:   map[string]string{},
		OverallScore: map[string]int{},
	}
}

func (that *Session) CurrentPlayerKey() string {
	return PlayerKey(that.CurrentPlayer)
}

func (that *Session) CharacterOf(player int) string {
	return that.Characters[PlayerKey(player)]
}

// SelectionComplete reports whether every player has a character.
func (that *Session) SelectionComplete() bool {
	return that.PlayerCount > 0 && len(that.Characters) == that.PlayerCount
}

// DeviceOf returns the button a player presses. Players share buttons round-robin.
func (that *Session) DeviceOf(player int) (string, bool) {
	if len(that.DeviceIDs) == 0 || player < 1 {
		return "", false
	}

	return that.DeviceIDs[(player-1)%len(that.DeviceIDs)], true
}

func (that *Session) IsRegistered(deviceID string) bool {
	return slices.Contains(that.DeviceIDs, deviceID)
}

func (that *Session) HandlerArmed() bool {
	return that.InputHandlerID != ""
}

// ResetPlayers clears everything chosen after roll call.
func (that *Session) ResetPlayers() {
	that.PlayerCount = 0
	that.CurrentPlayer = 0
	that.Characters = map[string]string{}
	that.ChosenCharacters = nil
	that.OverallScore = map[string]int{}
	that.Game = GameState{}
}

// ResetScores zeroes the overall score of every player.
func (that *Session) ResetScores() {
	that.OverallScore = make(map[string]int, that.PlayerCount)
	for player := 1; player <= that.PlayerCount; player++ {
		that.OverallScore[PlayerKey(player)] = 0
	}
}

// CheckConsistency verifies the invariants the state machine relies on for the current phase.
func (that *Session) CheckConsistency(minPlayers, maxPlayers int) error {
	if _, ok := phaseNames[that.Phase]; !ok {
		return fmt.Errorf("%w: %v", apperror.ErrInternalInconsistency, that.Phase)
	}

	if that.Phase < PhaseChooseCharacter || that.Phase == PhaseExit && that.PlayerCount == 0 {
		return nil
	}

	if that.PlayerCount < minPlayers || that.PlayerCount > maxPlayers {
		return fmt.Errorf("%w: player count %d in phase %s",
			apperror.ErrInternalInconsistency, that.PlayerCount, that.Phase)
	}

	if that.CurrentPlayer < 1 || that.CurrentPlayer > that.PlayerCount {
		return fmt.Errorf("%w: current player %d of %d",
			apperror.ErrInternalInconsistency, that.CurrentPlayer, that.PlayerCount)
	}

	if that.Phase == PhasePlay {
		if !that.SelectionComplete() {
			return fmt.Errorf("%w: playing without characters", apperror.ErrInternalInconsistency)
		}

		if !that.Game.Board.IsGenerated() || len(that.DeviceIDs) == 0 {
			return fmt.Errorf("%w: playing without board or buttons", apperror.ErrInternalInconsistency)
		}
	}

	return nil
}
