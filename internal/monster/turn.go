package monster

import (
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

const stepRecognizer = "step_recognizer"

// onGo starts the current player's turn by arming a step handler on their button.
func (that *Machine) onGo(session *entity.Session, event entity.Event, tr Translator) *entity.Response {
	response := &entity.Response{}
	that.stopHandler(session, response)

	device, _ := session.DeviceOf(session.CurrentPlayer)

	session.InputHandlerID = event.RequestID
	session.Game.Turn = entity.TurnState{
		Active: true,
		Player: session.CurrentPlayer,
	}

	response.AddDirective(entity.StartInputHandlerDirective(entity.InputHandler{
		Timeout:   that.rules.StepTimeout,
		DeviceIDs: []string{device},
		Recognizers: []entity.Recognizer{
			{Name: stepRecognizer, Actions: []string{"down", "up"}, DeviceIDs: []string{device}},
		},
		Events: []entity.HandlerEvent{
			{Name: entity.EventStep, Meets: []string{stepRecognizer}, MaximumInvocations: that.rules.MaxStepsPerTurn},
			{Name: entity.EventTimeout, Meets: []string{timedOut}, EndsHandler: true},
		},
	}))

	color := entity.CharacterColor(session.CharacterOf(session.CurrentPlayer))
	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerIdle,
		DeviceIDs: []string{device},
		Animation: entity.AnimationSolid,
		Color:     color,
		Duration:  that.rules.StepTimeout,
		Repeat:    1,
	}))
	response.AddDirective(entity.SetLightDirective(entity.Light{
		Trigger:   entity.TriggerButtonDown,
		DeviceIDs: []string{device},
		Animation: entity.AnimationFadeOut,
		Color:     color,
		Duration:  300 * time.Millisecond,
		Repeat:    1,
	}))

	response.Speech = tr.T(msgTakeSteps, int(that.rules.StepTimeout/time.Second), that.rules.MaxStepsPerTurn)

	return response
}

// onStep resolves one button press on the board for the running turn.
func (that *Machine) onStep(session *entity.Session, event entity.Event, tr Translator) *entity.Response {
	if !session.IsRegistered(event.DeviceID) {
		return &entity.Response{Speech: tr.T(msgUnregisteredInput)}
	}

	turn := &session.Game.Turn
	if !turn.Active {
		return &entity.Response{}
	}

	outcome := session.Game.Board.Step()
	turn.Steps++

	switch outcome {
	case entity.OutcomeMine:
		session.Game.TrapsTriggered++
		if session.Game.TrapsTriggered >= that.rules.MineCount {
			return that.gameOver(session, tr)
		}

		response := &entity.Response{}
		that.stopHandler(session, response)
		that.finishTurn(session)

		next := session.CharacterOf(session.CurrentPlayer)
		response.Speech = speak(tr.T(msgTrapSetOff), tr.T(msgPassOrGo, next))
		response.Reprompt = tr.T(msgHelpPlay, session.CurrentPlayer, next)
		response.OpenMicrophone = true
		that.idleLights(session, response, "red")

		return response
	case entity.OutcomeBean:
		turn.Score++
		session.OverallScore[entity.PlayerKey(turn.Player)]++
	}

	found := tr.T(msgBeanNotFound)
	if outcome == entity.OutcomeBean {
		found = tr.T(msgBeanFound)
	}

	if turn.Steps < that.rules.MaxStepsPerTurn {
		return &entity.Response{Speech: found}
	}

	response := &entity.Response{}
	that.stopHandler(session, response)
	that.summarizeTurn(session, response, tr, found, tr.T(msgStepsUsed))

	return response
}

// onPlayTimeout closes a turn whose step window expired on the platform.
func (that *Machine) onPlayTimeout(session *entity.Session, tr Translator) *entity.Response {
	session.InputHandlerID = ""

	if !session.Game.Turn.Active {
		return &entity.Response{}
	}

	response := &entity.Response{}
	that.summarizeTurn(session, response, tr, tr.T(msgTurnTimeout))

	if device, ok := session.DeviceOf(session.Game.Turn.Player); ok {
		response.AddDirective(entity.SetLightDirective(entity.Light{
			Trigger:   entity.TriggerIdle,
			DeviceIDs: []string{device},
			Animation: entity.AnimationFadeOut,
			Color:     entity.CharacterColor(session.CharacterOf(session.Game.Turn.Player)),
			Duration:  time.Second,
			Repeat:    1,
		}))
	}

	return response
}

// onPass skips the current player. A running turn ends with whatever it scored.
func (that *Machine) onPass(session *entity.Session, tr Translator) *entity.Response {
	response := &entity.Response{OpenMicrophone: true}
	that.stopHandler(session, response)

	skipped := session.CharacterOf(session.CurrentPlayer)

	if session.Game.Turn.Active {
		that.finishTurn(session)
	} else {
		session.CurrentPlayer = entity.NextPlayer(session.CurrentPlayer, session.PlayerCount)
	}

	next := session.CharacterOf(session.CurrentPlayer)
	response.Speech = speak(tr.T(msgSkip, skipped), tr.T(msgPassOrGo, next))
	response.Reprompt = tr.T(msgHelpPlay, session.CurrentPlayer, next)

	if device, ok := session.DeviceOf(session.CurrentPlayer); ok {
		response.AddDirective(entity.SetLightDirective(entity.Light{
			Trigger:   entity.TriggerIdle,
			DeviceIDs: []string{device},
			Animation: entity.AnimationFadeIn,
			Color:     entity.CharacterColor(next),
			Duration:  time.Second,
			Repeat:    1,
		}))
	}

	return response
}

// summarizeTurn ends the turn and reports what the player collected.
func (that *Machine) summarizeTurn(session *entity.Session, response *entity.Response, tr Translator, lead ...string) {
	turn := session.Game.Turn
	that.finishTurn(session)

	next := session.CharacterOf(session.CurrentPlayer)

	response.Speech = speak(
		speak(lead...),
		tr.T(msgTurnScore, turn.Score),
		tr.T(msgBeanTotal, session.OverallScore[entity.PlayerKey(turn.Player)]),
		tr.T(msgPassOrGo, next),
	)
	response.Reprompt = tr.T(msgHelpPlay, session.CurrentPlayer, next)
	response.OpenMicrophone = true
}

// finishTurn closes the turn and hands play to the player after the one who took it.
func (that *Machine) finishTurn(session *entity.Session) {
	turn := &session.Game.Turn
	turn.Active = false
	session.InputHandlerID = ""
	session.CurrentPlayer = entity.NextPlayer(turn.Player, session.PlayerCount)
}

// gameOver ends the game once the last trap wakes the monster.
func (that *Machine) gameOver(session *entity.Session, tr Translator) *entity.Response {
	response := &entity.Response{GameOver: true, OpenMicrophone: true}
	that.stopHandler(session, response)

	session.Game.Turn.Active = false
	session.Game.Winners = entity.ComputeWinners(session.OverallScore, session.PlayerCount)
	session.Phase = entity.PhaseEndGame

	names := make([]string, len(session.Game.Winners))
	for i, key := range session.Game.Winners {
		names[i] = session.Characters[key]
	}

	var result string
	if len(names) == 1 {
		result = tr.T(msgWinner, names[0], session.OverallScore[session.Game.Winners[0]])
	} else {
		result = tr.T(msgDraw, tr.List(names))
	}

	response.Speech = speak(tr.T(msgGameOver), result, tr.T(msgPlayAgainAsk))
	response.Reprompt = tr.T(msgHelpEndGame)
	that.idleLights(session, response, "red")

	return response
}
