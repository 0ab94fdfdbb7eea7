package monster

import (
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

func (that *Machine) onPlayerCount(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	again := tr.T(msgPlayersAgain)
	reprompt := tr.T(msgPlayersReprompt, that.rules.MinPlayers, that.rules.MaxPlayers)

	if event.PlayerCount == nil {
		return &entity.Response{Speech: again, Reprompt: reprompt, OpenMicrophone: true},
			apperror.ErrUndefinedPlayerCount
	}

	count := *event.PlayerCount

	switch {
	case count > that.rules.MaxPlayers:
		return &entity.Response{
			Speech:         speak(tr.T(msgPlayersTooMany, that.rules.MaxPlayers), again),
			Reprompt:       reprompt,
			OpenMicrophone: true,
		}, fmt.Errorf("%w: %d", apperror.ErrTooManyPlayers, count)
	case count < that.rules.MinPlayers:
		return &entity.Response{
			Speech:         speak(tr.T(msgPlayersTooFew, that.rules.MinPlayers), again),
			Reprompt:       reprompt,
			OpenMicrophone: true,
		}, fmt.Errorf("%w: %d", apperror.ErrTooFewPlayers, count)
	}

	session.PlayerCount = count
	session.CurrentPlayer = 1
	session.Characters = map[string]string{}
	session.ChosenCharacters = nil
	session.ResetScores()
	session.Phase = entity.PhaseChooseCharacter

	options := that.characterList(session, tr)

	return &entity.Response{
		Speech: speak(
			tr.T(msgPlayersConfirmed, count),
			tr.T(msgChooseIntro),
			tr.T(msgChooseOptions, options),
			tr.T(msgChooseFirst),
		),
		Reprompt:       tr.T(msgChooseNextReprompt, 1, options),
		OpenMicrophone: true,
	}, nil
}

// onCharacterChosen assigns a character to the current player. When only the
// last player and the last character are left they are paired without asking.
func (that *Machine) onCharacterChosen(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	character, ok := entity.FindCharacter(event.Character)
	if !ok {
		options := that.characterList(session, tr)

		return &entity.Response{
			Speech:         tr.T(msgChooseUndefined, options),
			Reprompt:       tr.T(msgChooseNextReprompt, session.CurrentPlayer, options),
			OpenMicrophone: true,
		}, fmt.Errorf("%w: %q", apperror.ErrUndefinedCharacter, event.Character)
	}

	if slices.Contains(session.ChosenCharacters, character.Name) {
		options := that.characterList(session, tr)

		return &entity.Response{
			Speech:         speak(tr.T(msgChooseUnavailable), tr.T(msgChooseAnother, options)),
			Reprompt:       tr.T(msgChooseNextReprompt, session.CurrentPlayer, options),
			OpenMicrophone: true,
		}, fmt.Errorf("%w: %s", apperror.ErrAlreadyChosen, character.Name)
	}

	chosen := []pick{{player: session.CurrentPlayer, character: character}}

	remaining := entity.RemainingCharacters(append(slices.Clone(session.ChosenCharacters), character.Name))
	if session.CurrentPlayer == session.PlayerCount-1 && len(remaining) == 1 {
		chosen = append(chosen, pick{player: session.PlayerCount, character: remaining[0], forced: true})
	}

	complete := len(session.Characters)+len(chosen) == session.PlayerCount

	var board entity.Board
	if complete {
		var err error
		if board, err = GenerateBoard(that.rules, that.source); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInternalInconsistency, err)
		}
	}

	response := &entity.Response{OpenMicrophone: true}
	confirmations := make([]string, 0, len(chosen))

	for _, p := range chosen {
		session.Characters[entity.PlayerKey(p.player)] = p.character.Name
		session.ChosenCharacters = append(session.ChosenCharacters, p.character.Name)

		if p.forced {
			confirmations = append(confirmations, tr.T(msgChooseNoChoice, p.player, p.character.Name, p.character.Color))
		} else {
			confirmations = append(confirmations, tr.T(msgPlayerConfirmed, p.player, p.character.Name, p.character.Color))
		}

		that.characterLight(session, response, p.player, p.character.Color)
	}

	if complete {
		that.startGame(session, board, response, tr, confirmations)
		return response, nil
	}

	session.CurrentPlayer = entity.NextPlayer(session.CurrentPlayer, session.PlayerCount)
	options := that.characterList(session, tr)

	response.Speech = speak(
		speak(confirmations...),
		tr.T(msgChooseRemaining, options),
		tr.T(msgChooseNext, session.CurrentPlayer),
	)
	response.Reprompt = tr.T(msgChooseNextReprompt, session.CurrentPlayer, options)

	return response, nil
}

type pick struct {
	player    int
	character entity.Character
	forced    bool
}

func (that *Machine) startGame(
	session *entity.Session, board entity.Board, response *entity.Response, tr Translator, confirmations []string,
) {
	session.Game = entity.GameState{Board: board}
	session.CurrentPlayer = 1
	session.Phase = entity.PhasePlay

	first := session.CharacterOf(1)

	response.Speech = speak(
		speak(confirmations...),
		tr.T(msgChooseDone),
		tr.T(msgInstructionsStory),
		tr.T(msgInstructionsRules, that.rules.MaxStepsPerTurn, that.rules.MineCount),
		tr.T(msgInstructionsGoal),
		tr.T(msgInstructionsStart, first),
	)
	response.Reprompt = tr.T(msgHelpPlay, 1, first)
}

func (that *Machine) characterList(session *entity.Session, tr Translator) string {
	return tr.List(entity.CharacterNames(entity.RemainingCharacters(session.ChosenCharacters)))
}

func (that *Machine) characterLight(session *entity.Session, response *entity.Response, player int, color string) {
	device, ok := session.DeviceOf(player)
	if !ok {
		return
	}

	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerIdle,
		DeviceIDs: []string{device},
		Animation: entity.AnimationBlink,
		Color:     color,
		Duration:  500 * time.Millisecond,
		Repeat:    3,
	}))
}
