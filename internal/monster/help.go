package monster

import "github.com/rocketscienceinc/dontwakethemonster/internal/entity"

// help explains what can be said in the current phase. Any armed handler is
// stopped. A running turn is paused, not passed on: the same player may say
// go again. A session that never started is put into roll call explicitly.
func (that *Machine) help(session *entity.Session, event entity.Event, tr Translator, lead string) *entity.Response {
	if session.Phase == entity.PhaseUninitialized {
		return that.startRollCall(session, event, tr, that.rules.RollCallTimeout,
			speak(lead, tr.T(msgHelpRollCallNeed), tr.T(msgHelpRollCallPress)))
	}

	response := &entity.Response{OpenMicrophone: true}
	that.stopHandler(session, response)
	session.Game.Turn.Active = false

	switch session.Phase {
	case entity.PhaseRollCall:
		session.ExpectingConfirmation = true
		response.Speech = speak(lead, tr.T(msgHelpRollCallNeed), tr.T(msgHelpRollCallPress), tr.T(msgHelpRollCallAsk))
		response.Reprompt = tr.T(msgHelpRollCallOptions)
	case entity.PhasePlayerCount:
		response.Speech = speak(lead, tr.T(msgHelpPlayerCount, that.rules.MinPlayers, that.rules.MaxPlayers))
		response.Reprompt = tr.T(msgPlayersReprompt, that.rules.MinPlayers, that.rules.MaxPlayers)
	case entity.PhaseChooseCharacter:
		options := that.characterList(session, tr)
		response.Speech = speak(lead, tr.T(msgHelpChoose, session.CurrentPlayer, options))
		response.Reprompt = tr.T(msgChooseNextReprompt, session.CurrentPlayer, options)
	case entity.PhasePlay:
		character := session.CharacterOf(session.CurrentPlayer)
		response.Speech = speak(lead, tr.T(msgHelpPlay, session.CurrentPlayer, character))
		response.Reprompt = tr.T(msgPassOrGo, character)
	case entity.PhaseEndGame:
		response.Speech = speak(lead, tr.T(msgHelpEndGame))
		response.Reprompt = tr.T(msgPlayAgainAsk)
	default:
		response.Speech = speak(lead, tr.T(msgHelpExit))
		response.Reprompt = tr.T(msgHelpPrompt)
	}

	return response
}
