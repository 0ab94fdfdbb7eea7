package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/usecase"
)

const maxAutoRequests = 500

var (
	errGameNotFinished = errors.New("game did not finish")
	errBadPlayers      = errors.New("autoplay needs between two and four players")
)

type sessionManager interface {
	Handle(ctx context.Context, request usecase.Request) (*entity.Response, error)
}

// simulator plays the voice platform: it wraps typed commands into requests
// and remembers which input handler is armed.
type simulator struct {
	logger  *slog.Logger
	manager sessionManager
	out     io.Writer

	sessionID string
	locale    string
	device    string
	token     string
}

func newSimulator(logger *slog.Logger, manager sessionManager, out io.Writer, locale string) *simulator {
	return &simulator{
		logger:    logger,
		manager:   manager,
		out:       out,
		sessionID: uuid.NewString(),
		locale:    locale,
		device:    "button-1",
	}
}

func (that *simulator) send(ctx context.Context, event entity.Event) (*entity.Response, error) {
	requestID := uuid.NewString()

	if event.IsInputHandlerEvent() {
		event.OriginatingRequestID = that.token
		if event.DeviceID == "" && event.Kind != entity.EventTimeout {
			event.DeviceID = that.device
		}
	}

	if event.Kind == entity.EventButtonCheckedIn {
		that.device = event.DeviceID
	}

	that.logger.Debug("sending event", "request", requestID, "type", event.Kind, "token", event.OriginatingRequestID)

	response, err := that.manager.Handle(ctx, usecase.Request{
		SessionID: that.sessionID,
		RequestID: requestID,
		Locale:    that.locale,
		Event:     event,
	})
	if err != nil {
		return nil, fmt.Errorf("failed handle %s: %w", event.Kind, err)
	}

	that.track(requestID, event, response)
	that.print(response)

	return response, nil
}

// track follows the handler lifecycle the way the platform would.
func (that *simulator) track(requestID string, event entity.Event, response *entity.Response) {
	if event.Kind == entity.EventButtonCheckedIn || event.Kind == entity.EventTimeout {
		that.token = ""
	}

	for _, directive := range response.Directives {
		switch directive.Type {
		case entity.DirectiveStopInputHandler:
			if directive.Token == that.token {
				that.token = ""
			}
		case entity.DirectiveStartInputHandler:
			that.token = requestID
		}
	}
}

func (that *simulator) print(response *entity.Response) {
	if response.Speech != "" {
		fmt.Fprintf(that.out, "monster> %s\n", response.Speech)
	}

	for _, directive := range response.Directives {
		if directive.Type == entity.DirectiveSetLight && directive.Light != nil {
			that.logger.Debug("light", "trigger", directive.Light.Trigger,
				"animation", directive.Light.Animation, "color", directive.Light.Color)
		}
	}

	if response.EndSession {
		fmt.Fprintln(that.out, "(session ended)")
	}
}

// autoplay runs a whole game for players players, picking characters in pool
// order and stepping until the monster wakes up.
func (that *simulator) autoplay(ctx context.Context, players int) error {
	if players < 2 || players > len(entity.CharacterPool) {
		return fmt.Errorf("%w: %d players", errBadPlayers, players)
	}

	script := []entity.Event{
		{Kind: entity.EventLaunch},
		{Kind: entity.EventButtonCheckedIn},
		{Kind: entity.EventPlayerCountGiven, PlayerCount: &players},
	}

	// the last of a full table is assigned the remaining character.
	picks := players
	if picks == len(entity.CharacterPool) {
		picks--
	}

	for _, name := range entity.CharacterNames(entity.CharacterPool[:picks]) {
		script = append(script, entity.Event{Kind: entity.EventCharacterChosen, Character: name})
	}

	for _, event := range script {
		fmt.Fprintf(that.out, "you> %s\n", describe(event))

		if _, err := that.send(ctx, event); err != nil {
			return err
		}
	}

	for range maxAutoRequests {
		event := entity.Event{Kind: entity.EventStep}
		if that.token == "" {
			event = entity.Event{Kind: entity.EventGo}
		}

		fmt.Fprintf(that.out, "you> %s\n", describe(event))

		response, err := that.send(ctx, event)
		if err != nil {
			return err
		}

		if response.GameOver {
			return nil
		}
	}

	return errGameNotFinished
}

func describe(event entity.Event) string {
	parts := []string{string(event.Kind)}

	if event.PlayerCount != nil {
		parts = append(parts, fmt.Sprint(*event.PlayerCount))
	}

	if event.Character != "" {
		parts = append(parts, event.Character)
	}

	return strings.Join(parts, " ")
}
