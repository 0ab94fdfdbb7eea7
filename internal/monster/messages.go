package monster

import "strings"

// Translator renders localized prompts by message key.
type Translator interface {
	T(key string, args ...any) string
	List(items []string) string
}

const (
	msgSkillName   = "SKILL_NAME"
	msgWelcome     = "WELCOME_MESSAGE"
	msgWelcomeBack = "WELCOME_BACK_MESSAGE"
	msgExit        = "EXIT_MESSAGE"
	msgApology     = "INTERNAL_ERROR"

	msgRollCallInstruction  = "ROLL_CALL_INSTRUCTION"
	msgRollCallConfirmation = "ROLL_CALL_CONFIRMATION"
	msgRollCallRetry        = "SECOND_THOUGHT_REGISTER_BUTTON"
	msgRollCallTimeout      = "TIMEOUT_ROLL_CALL"

	msgPlayersPrompt      = "NUM_PLAYERS_PROMPT"
	msgPlayersReprompt    = "NUM_PLAYERS_REPROMPT"
	msgPlayersTooMany     = "NUM_PLAYERS_TOO_MANY_PLAYERS"
	msgPlayersTooFew      = "NUM_PLAYERS_TOO_FEW_PLAYERS"
	msgPlayersAgain       = "NUM_PLAYERS_GIVE_NUMBER_AGAIN"
	msgPlayersConfirmed   = "NUM_PLAYERS_ADDED_CONFIRMATION"
	msgChooseIntro        = "CHOOSE_CHARACTER_INSTRUCTION_1"
	msgChooseOptions      = "CHOOSE_CHARACTER_INSTRUCTION_2"
	msgChooseFirst        = "CHOOSE_CHARACTER_INSTRUCTION_3"
	msgChooseUndefined    = "CHOOSE_CHARACTER_UNDEFINED"
	msgChooseUnavailable  = "CHOOSE_CHARACTER_UNAVAILABLE"
	msgChooseAnother      = "CHOOSE_CHARACTER_UNAVAILABLE_REPROMPT"
	msgChooseRemaining    = "CHOOSE_CHARACTER_REMAINING_CHARACTERS"
	msgChooseNext         = "CHOOSE_CHARACTER_NEXT_PLAYER"
	msgChooseNextReprompt = "CHOOSE_CHARACTER_NEXT_PLAYER_REPROMPT"
	msgChooseDone         = "CHOOSE_CHARACTER_DONE"
	msgChooseNoChoice     = "CHOOSE_CHARACTER_NO_CHOICE"
	msgPlayerConfirmed    = "PLAYER_CONFIRMATION"

	msgInstructionsStory = "GAME_INSTRUCTIONS_1"
	msgInstructionsRules = "GAME_INSTRUCTIONS_2"
	msgInstructionsGoal  = "GAME_INSTRUCTIONS_3"
	msgInstructionsStart = "GAME_INSTRUCTIONS_START"

	msgTakeSteps         = "INCREMENT_STEP_MESSAGE"
	msgBeanFound         = "BEAN_FOUND"
	msgBeanNotFound      = "BEAN_NOT_FOUND"
	msgTrapSetOff        = "TRAP_SET_OFF"
	msgStepsUsed         = "STEPS_USED"
	msgTurnTimeout       = "TIMEOUT_PLAY_MODE"
	msgTurnScore         = "TURN_SCORE"
	msgBeanTotal         = "BEAN_TOTAL"
	msgPassOrGo          = "PASS_OR_GO"
	msgSkip              = "SKIP_MESSAGE"
	msgUnregisteredInput = "UNREGISTERED_BUTTON"

	msgGameOver     = "GAME_OVER_MESSAGE"
	msgWinner       = "WINNER_MESSAGE"
	msgDraw         = "DRAW_MESSAGE"
	msgPlayAgainAsk = "PLAY_AGAIN_ASK"
	msgPlayAgain    = "PLAY_AGAIN_MESSAGE"

	msgHelpSympathy        = "HELP_SYMPATHY"
	msgHelpPrompt          = "HELP_PROMPT"
	msgHelpRollCallNeed    = "HELP_ROLL_CALL_INCOMPLETE_1"
	msgHelpRollCallPress   = "HELP_ROLL_CALL_INCOMPLETE_2"
	msgHelpRollCallAsk     = "HELP_ROLL_CALL_INCOMPLETE_3"
	msgHelpRollCallOptions = "HELP_ROLL_CALL_INCOMPLETE_REPROMPT"
	msgHelpPlayerCount     = "HELP_COMPLETE_ROLL_CALL"
	msgHelpChoose          = "HELP_CHOOSE_CHARACTER"
	msgHelpPlay            = "HELP_PLAY_GAME"
	msgHelpEndGame         = "HELP_END_GAME_MODE"
	msgHelpExit            = "HELP_EXIT_MODE_MESSAGE"
)

// MessageKeys lists every key the machine renders. Catalogs must define all of them.
var MessageKeys = []string{
	msgSkillName, msgWelcome, msgWelcomeBack, msgExit, msgApology,
	msgRollCallInstruction, msgRollCallConfirmation, msgRollCallRetry, msgRollCallTimeout,
	msgPlayersPrompt, msgPlayersReprompt, msgPlayersTooMany, msgPlayersTooFew, msgPlayersAgain,
	msgPlayersConfirmed, msgChooseIntro, msgChooseOptions, msgChooseFirst, msgChooseUndefined,
	msgChooseUnavailable, msgChooseAnother, msgChooseRemaining, msgChooseNext,
	msgChooseNextReprompt, msgChooseDone, msgChooseNoChoice, msgPlayerConfirmed,
	msgInstructionsStory, msgInstructionsRules, msgInstructionsGoal, msgInstructionsStart,
	msgTakeSteps, msgBeanFound, msgBeanNotFound, msgTrapSetOff, msgStepsUsed, msgTurnTimeout,
	msgTurnScore, msgBeanTotal, msgPassOrGo, msgSkip, msgUnregisteredInput,
	msgGameOver, msgWinner, msgDraw, msgPlayAgainAsk, msgPlayAgain,
	msgHelpSympathy, msgHelpPrompt, msgHelpRollCallNeed, msgHelpRollCallPress, msgHelpRollCallAsk,
	msgHelpRollCallOptions, msgHelpPlayerCount, msgHelpChoose, msgHelpPlay, msgHelpEndGame,
	msgHelpExit,
}

// Apology is the response for a request that could not be served.
func Apology(tr Translator) string {
	return tr.T(msgApology)
}

func speak(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, " ")
}
