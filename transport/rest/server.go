package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/usecase"
)

type sessionManager interface {
	Handle(ctx context.Context, request usecase.Request) (*entity.Response, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port, defaultLocale string, manager sessionManager) *Server {
	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewHandler(logger, defaultLocale, manager),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewHandler routes the skill endpoints. Requests without a locale are
// answered in defaultLocale.
func NewHandler(logger *slog.Logger, defaultLocale string, manager sessionManager) http.Handler {
	skill := NewSkillHandler(logger, defaultLocale, manager)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", NewPingHandler().PingHandler)
	mux.HandleFunc("POST /skill", skill.Skill)
	mux.HandleFunc("GET /results", skill.Results)

	return mux
}

// Start serves until Shutdown is called.
func (that *Server) Start() error {
	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
