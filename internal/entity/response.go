package entity

import "time"

type DirectiveType string

const (
	DirectiveStartInputHandler DirectiveType = "start_input_handler"
	DirectiveStopInputHandler  DirectiveType = "stop_input_handler"
	DirectiveSetLight          DirectiveType = "set_light"
)

type LightTrigger string

const (
	TriggerIdle       LightTrigger = "idle"
	TriggerButtonDown LightTrigger = "button_down"
	TriggerButtonUp   LightTrigger = "button_up"
)

type AnimationKind string

const (
	AnimationSolid   AnimationKind = "solid"
	AnimationBlink   AnimationKind = "blink"
	AnimationFadeIn  AnimationKind = "fade_in"
	AnimationFadeOut AnimationKind = "fade_out"
	AnimationBreathe AnimationKind = "breathe"
)

// Directive is a platform instruction attached to a response. Exactly one of
// InputHandler, Token or Light is set, depending on Type.
type Directive struct {
	Type         DirectiveType `json:"type"`
	InputHandler *InputHandler `json:"input_handler,omitempty"`
	Token        string        `json:"token,omitempty"`
	Light        *Light        `json:"light,omitempty"`
}

// InputHandler describes a button listener armed on the platform.
// Timeout is enforced by the platform, never by the backend.
type InputHandler struct {
	Timeout     time.Duration  `json:"timeout"`
	DeviceIDs   []string       `json:"device_ids,omitempty"`
	Recognizers []Recognizer   `json:"recognizers"`
	Events      []HandlerEvent `json:"events"`
}

// Recognizer matches a sequence of button actions on the given devices.
type Recognizer struct {
	Name      string   `json:"name"`
	Actions   []string `json:"actions"`
	DeviceIDs []string `json:"device_ids,omitempty"`
}

type HandlerEvent struct {
	Name               EventKind `json:"name"`
	Meets              []string  `json:"meets"`
	EndsHandler        bool      `json:"ends_handler"`
	MaximumInvocations int       `json:"maximum_invocations,omitempty"`
}

type Light struct {
	Trigger   LightTrigger  `json:"trigger"`
	DeviceIDs []string      `json:"device_ids,omitempty"`
	Animation AnimationKind `json:"animation"`
	Color     string        `json:"color"`
	Duration  time.Duration `json:"duration"`
	Repeat    int           `json:"repeat"`
}

// Response is what the skill answers for one request.
type Response struct {
	Speech         string      `json:"speech,omitempty"`
	Reprompt       string      `json:"reprompt,omitempty"`
	Directives     []Directive `json:"directives,omitempty"`
	OpenMicrophone bool        `json:"open_microphone"`
	EndSession     bool        `json:"end_session"`
	GameOver       bool        `json:"game_over"`
}

func (that *Response) AddDirective(directive Directive) {
	that.Directives = append(that.Directives, directive)
}

func StartInputHandlerDirective(handler InputHandler) Directive {
	return Directive{Type: DirectiveStartInputHandler, InputHandler: &handler}
}

func StopInputHandlerDirective(token string) Directive {
	return Directive{Type: DirectiveStopInputHandler, Token: token}
}

func SetLightDirective(light Light) Directive {
	return Directive{Type: DirectiveSetLight, Light: &light}
}
