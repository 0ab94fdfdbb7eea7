package monster

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

// Machine drives a session through its phases. It holds no per-session state:
// everything it needs arrives with the session, so one Machine serves all requests.
type Machine struct {
	logger *slog.Logger
	rules  entity.Rules
	source boardSource
}

func NewMachine(logger *slog.Logger, rules entity.Rules, source boardSource) *Machine {
	return &Machine{
		logger: logger,
		rules:  rules,
		source: source,
	}
}

func (that *Machine) Rules() entity.Rules {
	return that.rules
}

// Dispatch applies event to session in place and returns the response to send.
// Recoverable errors come with a response; at most the armed handler is stopped.
// An ErrInternalInconsistency comes with a nil response, unless the event is one
// that starts over.
func (that *Machine) Dispatch(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	log := that.logger.With("method", "Dispatch", "session", session.ID, "event", event.Kind)

	if err := session.CheckConsistency(that.rules.MinPlayers, that.rules.MaxPlayers); err != nil {
		if !canRecover(event) {
			return nil, err
		}

		// a broken record must never lock players out of stop or a fresh start.
		log.Warn("discarding inconsistent session", "phase", session.Phase, "error", err)
		discard(session)
	}

	from := session.Phase

	response, err := that.route(session, event, tr)
	if err != nil && !apperror.IsRecoverable(err) {
		return nil, err
	}

	if from != session.Phase {
		log.Debug("phase changed", "from", from, "to", session.Phase)
	}

	return response, err
}

func (that *Machine) route(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	switch {
	case event.Kind == entity.EventStop:
		return that.exit(session, tr), nil
	case event.Kind == entity.EventSessionEnded:
		return that.sessionEnded(session), nil
	case event.Kind == entity.EventHelp:
		return that.help(session, event, tr, ""), nil
	case event.IsInputHandlerEvent():
		return that.correlate(session, event, tr)
	case event.Kind == entity.EventLaunch:
		return that.launch(session, event, tr)
	}

	switch session.Phase {
	case entity.PhaseRollCall:
		return that.onRollCallAnswer(session, event, tr)
	case entity.PhasePlayerCount:
		if event.Kind == entity.EventPlayerCountGiven {
			return that.onPlayerCount(session, event, tr)
		}
	case entity.PhaseChooseCharacter:
		if event.Kind == entity.EventCharacterChosen {
			return that.onCharacterChosen(session, event, tr)
		}
	case entity.PhasePlay:
		switch event.Kind {
		case entity.EventGo:
			if !session.Game.Turn.Active {
				return that.onGo(session, event, tr), nil
			}
		case entity.EventPass:
			return that.onPass(session, tr), nil
		}
	case entity.PhaseEndGame:
		switch event.Kind {
		case entity.EventYes:
			return that.replay(session, tr, "")
		case entity.EventNo:
			return that.exit(session, tr), nil
		}
	}

	return that.misunderstood(session, event, tr)
}

// launch resumes a completed selection with a new game, or starts over at roll call.
func (that *Machine) launch(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	switch session.Phase {
	case entity.PhasePlay, entity.PhaseEndGame, entity.PhaseExit:
		if session.SelectionComplete() && len(session.DeviceIDs) > 0 {
			return that.replay(session, tr, tr.T(msgWelcomeBack, tr.T(msgSkillName)))
		}
	}

	session.ResetPlayers()
	session.DeviceIDs = nil

	welcome := tr.T(msgWelcome, tr.T(msgSkillName))

	return that.startRollCall(session, event, tr, that.rules.RollCallTimeout, welcome), nil
}

// replay starts a new game with the same players and characters.
func (that *Machine) replay(session *entity.Session, tr Translator, greeting string) (*entity.Response, error) {
	board, err := GenerateBoard(that.rules, that.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInternalInconsistency, err)
	}

	response := &entity.Response{}
	that.stopHandler(session, response)

	session.ResetScores()
	session.Game = entity.GameState{Board: board}
	session.CurrentPlayer = 1
	session.ReplayCount++
	session.Phase = entity.PhasePlay

	first := session.CharacterOf(1)
	response.Speech = speak(greeting, tr.T(msgPlayAgain, that.rules.MineCount, first))
	response.Reprompt = tr.T(msgHelpPlay, 1, first)
	response.OpenMicrophone = true
	that.idleLights(session, response, "white")

	return response, nil
}

func (that *Machine) exit(session *entity.Session, tr Translator) *entity.Response {
	response := &entity.Response{
		Speech:     tr.T(msgExit),
		EndSession: true,
	}

	that.stopHandler(session, response)
	session.Game.Turn.Active = false
	session.ExpectingConfirmation = false
	session.Phase = entity.PhaseExit

	for _, device := range session.DeviceIDs {
		response.AddDirective(entity.SetLightDirective(entity.Light{
			Trigger:   entity.TriggerIdle,
			DeviceIDs: []string{device},
			Animation: entity.AnimationSolid,
			Color:     "black",
		}))
	}

	return response
}

// sessionEnded is the platform closing the conversation. Nothing may be spoken.
func (that *Machine) sessionEnded(session *entity.Session) *entity.Response {
	session.InputHandlerID = ""
	session.Game.Turn.Active = false
	session.ExpectingConfirmation = false
	session.Phase = entity.PhaseExit

	return &entity.Response{EndSession: true}
}

// misunderstood answers events that make no sense in the current phase.
func (that *Machine) misunderstood(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	response := that.help(session, event, tr, tr.T(msgHelpSympathy))

	if event.Kind == entity.EventUnrecognized {
		return response, nil
	}

	return response, fmt.Errorf("%w: %s in %s", apperror.ErrIllegalTransition, event.Kind, session.Phase)
}

// canRecover reports whether event may start over from an inconsistent session.
func canRecover(event entity.Event) bool {
	switch event.Kind {
	case entity.EventLaunch, entity.EventStop, entity.EventSessionEnded:
		return true
	default:
		return false
	}
}

// discard drops everything but the session identity.
func discard(session *entity.Session) {
	session.ResetPlayers()
	session.DeviceIDs = nil
	session.InputHandlerID = ""
	session.ExpectingConfirmation = false
	session.Phase = entity.PhaseUninitialized
}

// stopHandler disarms the current input handler, if any.
func (that *Machine) stopHandler(session *entity.Session, response *entity.Response) {
	if !session.HandlerArmed() {
		return
	}

	response.AddDirective(entity.StopInputHandlerDirective(session.InputHandlerID))
	session.InputHandlerID = ""
}

func (that *Machine) idleLights(session *entity.Session, response *entity.Response, color string) {
	if len(session.DeviceIDs) == 0 {
		return
	}

	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerIdle,
		DeviceIDs: session.DeviceIDs,
		Animation: entity.AnimationBreathe,
		Color:     color,
		Repeat:    1,
	}))
}

// IsInconsistent reports whether err means the stored session cannot be trusted.
func IsInconsistent(err error) bool {
	return errors.Is(err, apperror.ErrInternalInconsistency)
}
