package monster

import (
	"fmt"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

// correlate routes an input handler event to roll call or the turn engine.
// Events from any handler other than the armed one are dropped before the
// session is touched.
func (that *Machine) correlate(session *entity.Session, event entity.Event, tr Translator) (*entity.Response, error) {
	if !session.HandlerArmed() || event.OriginatingRequestID != session.InputHandlerID {
		return &entity.Response{}, fmt.Errorf("%w: got %q, armed %q",
			apperror.ErrStaleEvent, event.OriginatingRequestID, session.InputHandlerID)
	}

	switch session.Phase {
	case entity.PhaseRollCall:
		switch event.Kind {
		case entity.EventButtonCheckedIn:
			return that.onCheckIn(session, event, tr)
		case entity.EventTimeout:
			return that.onRollCallTimeout(session, tr), nil
		}
	case entity.PhasePlay:
		switch event.Kind {
		case entity.EventStep:
			return that.onStep(session, event, tr), nil
		case entity.EventTimeout:
			return that.onPlayTimeout(session, tr), nil
		}
	}

	return &entity.Response{}, nil
}
