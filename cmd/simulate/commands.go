package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

var (
	errEmptyCommand = errors.New("empty command")
	errQuit         = errors.New("quit")
)

const commandHelp = `commands:
  launch              open the skill
  check [device]      press a button during roll call
  players <n>         say how many are playing
  pick <character>    choose a character
  go | pass           take or skip the turn
  step [device]       press the button during a turn
  wait                let the armed input handler time out
  yes | no | help | stop
  quit`

// parseCommand turns one typed line into the event the platform would send.
// Button and timeout events are completed by the simulator with the armed token.
func parseCommand(line string) (entity.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return entity.Event{}, errEmptyCommand
	}

	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "quit", "exit":
		return entity.Event{}, errQuit
	case "launch", "open":
		return entity.Event{Kind: entity.EventLaunch}, nil
	case "check":
		return entity.Event{Kind: entity.EventButtonCheckedIn, DeviceID: firstOr(args, "")}, nil
	case "step", "press":
		return entity.Event{Kind: entity.EventStep, DeviceID: firstOr(args, "")}, nil
	case "wait", "timeout":
		return entity.Event{Kind: entity.EventTimeout}, nil
	case "players":
		if len(args) == 0 {
			return entity.Event{Kind: entity.EventPlayerCountGiven}, nil
		}

		count, err := strconv.Atoi(args[0])
		if err != nil {
			return entity.Event{}, fmt.Errorf("player count %q is not a number", args[0])
		}

		return entity.Event{Kind: entity.EventPlayerCountGiven, PlayerCount: &count}, nil
	case "pick":
		return entity.Event{Kind: entity.EventCharacterChosen, Character: strings.Join(args, " ")}, nil
	case "go":
		return entity.Event{Kind: entity.EventGo}, nil
	case "pass", "skip":
		return entity.Event{Kind: entity.EventPass}, nil
	case "yes":
		return entity.Event{Kind: entity.EventYes}, nil
	case "no":
		return entity.Event{Kind: entity.EventNo}, nil
	case "help":
		return entity.Event{Kind: entity.EventHelp}, nil
	case "stop":
		return entity.Event{Kind: entity.EventStop}, nil
	default:
		return entity.Event{Kind: entity.EventUnrecognized}, nil
	}
}

func firstOr(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}

	return args[0]
}
