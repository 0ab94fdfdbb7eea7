package entity

type EventKind string

const (
	EventLaunch           EventKind = "launch"
	EventButtonCheckedIn  EventKind = "button_checked_in"
	EventStep             EventKind = "step_event"
	EventTimeout          EventKind = "timeout"
	EventPlayerCountGiven EventKind = "player_count"
	EventCharacterChosen  EventKind = "character_chosen"
	EventGo               EventKind = "go"
	EventPass             EventKind = "pass"
	EventYes              EventKind = "yes"
	EventNo               EventKind = "no"
	EventHelp             EventKind = "help"
	EventStop             EventKind = "stop"
	EventSessionEnded     EventKind = "session_ended"
	EventUnrecognized     EventKind = "unrecognized"
)

// Event is a normalized user or hardware event. RequestID identifies the
// request carrying it and becomes the token of any input handler it arms.
type Event struct {
	Kind                 EventKind `json:"type"`
	RequestID            string    `json:"request_id,omitempty"`
	DeviceID             string    `json:"device_id,omitempty"`
	OriginatingRequestID string    `json:"originating_request_id,omitempty"`
	PlayerCount          *int      `json:"player_count,omitempty"`
	Character            string    `json:"character,omitempty"`
}

// IsInputHandlerEvent reports whether the event was emitted by an armed input handler.
func (that Event) IsInputHandlerEvent() bool {
	switch that.Kind {
	case EventButtonCheckedIn, EventStep, EventTimeout:
		return true
	default:
		return false
	}
}

var knownEventKinds = map[EventKind]bool{
	EventLaunch: true, EventButtonCheckedIn: true, EventStep: true, EventTimeout: true,
	EventPlayerCountGiven: true, EventCharacterChosen: true, EventGo: true, EventPass: true,
	EventYes: true, EventNo: true, EventHelp: true, EventStop: true, EventSessionEnded: true,
	EventUnrecognized: true,
}

func (that EventKind) IsKnown() bool {
	return knownEventKinds[that]
}
