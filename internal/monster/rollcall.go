package monster

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

const (
	checkInRecognizer = "button_down_recognizer"
	timedOut          = "timed out"
)

// startRollCall arms a handler waiting for the first button press. The
// request that arms it becomes the correlation token.
func (that *Machine) startRollCall(
	session *entity.Session, event entity.Event, tr Translator, timeout time.Duration, intro string,
) *entity.Response {
	response := &entity.Response{
		Speech: speak(intro, tr.T(msgRollCallInstruction)),
	}

	that.stopHandler(session, response)

	session.Phase = entity.PhaseRollCall
	session.ExpectingConfirmation = false
	session.InputHandlerID = event.RequestID

	response.AddDirective(entity.StartInputHandlerDirective(entity.InputHandler{
		Timeout: timeout,
		Recognizers: []entity.Recognizer{
			{Name: checkInRecognizer, Actions: []string{"down"}},
		},
		Events: []entity.HandlerEvent{
			{Name: entity.EventButtonCheckedIn, Meets: []string{checkInRecognizer}, EndsHandler: true, MaximumInvocations: 1},
			{Name: entity.EventTimeout, Meets: []string{timedOut}, EndsHandler: true},
		},
	}))

	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerButtonDown,
		Animation: entity.AnimationFadeOut,
		Color:     "blue",
		Duration:  200 * time.Millisecond,
		Repeat:    1,
	}))
	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerButtonUp,
		Animation: entity.AnimationSolid,
		Color:     "black",
		Duration:  100 * time.Millisecond,
		Repeat:    1,
	}))

	return response
}

// onCheckIn registers the pressed button and moves on to counting players.
// A check-in that names no button leaves roll call armed as it was.
func (that *Machine) onCheckIn(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	if event.DeviceID == "" {
		return &entity.Response{Speech: tr.T(msgRollCallInstruction)},
			fmt.Errorf("%w: check-in without a button", apperror.ErrValidation)
	}

	if !session.IsRegistered(event.DeviceID) {
		session.DeviceIDs = append(session.DeviceIDs, event.DeviceID)
	}

	session.ResetPlayers()
	session.InputHandlerID = ""
	session.ExpectingConfirmation = false
	session.Phase = entity.PhasePlayerCount

	response := &entity.Response{
		Speech:         speak(tr.T(msgRollCallConfirmation), tr.T(msgPlayersPrompt)),
		Reprompt:       tr.T(msgPlayersReprompt, that.rules.MinPlayers, that.rules.MaxPlayers),
		OpenMicrophone: true,
	}

	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerIdle,
		DeviceIDs: session.DeviceIDs,
		Animation: entity.AnimationSolid,
		Color:     "green",
		Duration:  2 * time.Second,
		Repeat:    1,
	}))

	return response, nil
}

// onRollCallTimeout asks whether the players need more time to find a button.
func (that *Machine) onRollCallTimeout(session *entity.Session, tr Translator) *entity.Response {
	session.InputHandlerID = ""
	session.ExpectingConfirmation = true

	return &entity.Response{
		Speech:         tr.T(msgRollCallTimeout),
		Reprompt:       tr.T(msgHelpRollCallOptions),
		OpenMicrophone: true,
	}
}

// onRollCallAnswer handles yes or no after a roll call timeout or help.
func (that *Machine) onRollCallAnswer(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	if !session.ExpectingConfirmation {
		return that.misunderstood(session, event, tr)
	}

	switch event.Kind {
	case entity.EventYes:
		return that.startRollCall(session, event, tr, that.rules.RollCallRetryTimeout, tr.T(msgRollCallRetry)), nil
	case entity.EventNo:
		return that.exit(session, tr), nil
	default:
		return that.misunderstood(session, event, tr)
	}
}
