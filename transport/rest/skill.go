package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/usecase"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
	maxBodyBytes        = 64 << 10
)

var errBadRequest = errors.New("bad request")

// skillRequest is the envelope the voice platform posts for every user or button event.
type skillRequest struct {
	SessionID string       `json:"session_id"`
	RequestID string       `json:"request_id"`
	Locale    string       `json:"locale"`
	Event     entity.Event `json:"event"`
}

func (that skillRequest) validate() error {
	switch {
	case that.SessionID == "":
		return fmt.Errorf("%w: session_id is required", errBadRequest)
	case that.RequestID == "":
		return fmt.Errorf("%w: request_id is required", errBadRequest)
	case !that.Event.Kind.IsKnown():
		return fmt.Errorf("%w: unknown event type %q", errBadRequest, that.Event.Kind)
	case that.Event.Kind == entity.EventButtonCheckedIn || that.Event.Kind == entity.EventStep:
		if that.Event.DeviceID == "" {
			return fmt.Errorf("%w: %s needs a device_id", errBadRequest, that.Event.Kind)
		}
	}

	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type SkillHandler struct {
	logger        *slog.Logger
	defaultLocale string
	manager       sessionManager
}

func NewSkillHandler(logger *slog.Logger, defaultLocale string, manager sessionManager) *SkillHandler {
	return &SkillHandler{
		logger:        logger,
		defaultLocale: defaultLocale,
		manager:       manager,
	}
}

func (that *SkillHandler) Skill(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Skill")

	var request skillRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&request); err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	if err := request.validate(); err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if request.Locale == "" {
		request.Locale = that.defaultLocale
	}

	response, err := that.manager.Handle(r.Context(), usecase.Request{
		SessionID: request.SessionID,
		RequestID: request.RequestID,
		Locale:    request.Locale,
		Event:     request.Event,
	})
	if err != nil {
		log.Error("failed to handle skill request", "session", request.SessionID, "error", err)
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{Error: "internal error"})

		return
	}

	writeJSON(w, log, http.StatusOK, response)
}

func (that *SkillHandler) Results(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Results")

	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}

		limit = min(parsed, maxResultsLimit)
	}

	results, err := that.manager.RecentResults(r.Context(), limit)
	if err != nil {
		log.Error("failed to list results", "error", err)
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{Error: "internal error"})

		return
	}

	if results == nil {
		results = []*entity.GameResult{}
	}

	writeJSON(w, log, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
