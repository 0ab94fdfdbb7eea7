package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/i18n"
	"github.com/rocketscienceinc/dontwakethemonster/internal/monster"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type localizer interface {
	Translator(locale string) *i18n.Translator
}

// Request is one platform request addressed to a session.
type Request struct {
	SessionID string
	RequestID string
	Locale    string
	Event     entity.Event
}

// SessionManager loads a session, runs the event through the machine and
// persists the outcome. Requests for one session must not run concurrently.
type SessionManager struct {
	logger *slog.Logger
	clock  quartz.Clock

	machine   *monster.Machine
	localizer localizer

	sessionRepo sessionRepo
	resultRepo  resultRepo
}

func NewSessionManager(
	logger *slog.Logger,
	clock quartz.Clock,
	machine *monster.Machine,
	localizer localizer,
	sessionRepo sessionRepo,
	resultRepo resultRepo,
) *SessionManager {
	return &SessionManager{
		logger: logger,
		clock:  clock,

		machine:   machine,
		localizer: localizer,

		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
	}
}

func (that *SessionManager) Handle(ctx context.Context, request Request) (*entity.Response, error) {
	log := that.logger.With("method", "Handle", "session", request.SessionID, "event", request.Event.Kind)

	session, err := that.getOrCreateSession(ctx, request.SessionID)
	if errors.Is(err, apperror.ErrInternalInconsistency) {
		log.Error("stored session is unreadable", "error", err)
		return that.apology(request.Locale), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed get session: %w", err)
	}

	if request.Locale != "" {
		session.Locale = request.Locale
	}

	event := request.Event
	event.RequestID = request.RequestID

	response, err := that.machine.Dispatch(session, event, that.localizer.Translator(session.Locale))
	switch {
	case errors.Is(err, apperror.ErrStaleEvent):
		log.Debug("dropped stale input handler event", "error", err)
		return response, nil
	case errors.Is(err, apperror.ErrInternalInconsistency):
		log.Error("session state is inconsistent", "phase", session.Phase, "error", err)
		return that.apology(session.Locale), nil
	case err != nil && apperror.IsRecoverable(err):
		log.Info("asking again", "phase", session.Phase, "reason", err)
	case err != nil:
		return nil, fmt.Errorf("failed dispatch event: %w", err)
	}

	now := that.clock.Now()
	session.UpdatedAt = now

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update session: %w", err)
	}

	if response.GameOver {
		that.recordResult(ctx, log, entity.NewGameResult(session, now))
	}

	return response, nil
}

// RecentResults lists the latest finished games, newest first.
func (that *SessionManager) RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	results, err := that.resultRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed list results: %w", err)
	}

	return results, nil
}

func (that *SessionManager) getOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		session = entity.NewSession(id)
		session.CreatedAt = that.clock.Now()

		return session, nil
	}

	if err != nil {
		return nil, err
	}

	return session, nil
}

// recordResult keeps the game history. A failure here must not lose the reply to the players.
func (that *SessionManager) recordResult(ctx context.Context, log *slog.Logger, result *entity.GameResult) {
	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to record game result", "error", err)
		return
	}

	log.Info("game finished", "winners", result.Winners, "replay", result.ReplayCount)
}

func (that *SessionManager) apology(locale string) *entity.Response {
	return &entity.Response{
		Speech:         monster.Apology(that.localizer.Translator(locale)),
		OpenMicrophone: true,
	}
}
