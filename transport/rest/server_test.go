package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/usecase"
	"github.com/rocketscienceinc/dontwakethemonster/testing/suite"
)

type mockManager struct {
	mock.Mock
}

func (that *mockManager) Handle(ctx context.Context, request usecase.Request) (*entity.Response, error) {
	args := that.Called(ctx, request)

	response, _ := args.Get(0).(*entity.Response)

	return response, args.Error(1)
}

func (that *mockManager) RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	args := that.Called(ctx, limit)

	results, _ := args.Get(0).([]*entity.GameResult)

	return results, args.Error(1)
}

func serve(t *testing.T, manager *mockManager, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	NewHandler(suite.NewLogger(), "en-US", manager).ServeHTTP(recorder, request)

	return recorder
}

func TestPing(t *testing.T) {
	recorder := serve(t, &mockManager{}, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestSkill(t *testing.T) {
	t.Run("Forwards a button event and returns the response", func(t *testing.T) {
		manager := &mockManager{}
		defer manager.AssertExpectations(t)

		expected := usecase.Request{
			SessionID: "s-1",
			RequestID: "r-2",
			Locale:    "en-GB",
			Event: entity.Event{
				Kind:                 entity.EventStep,
				DeviceID:             "btn-1",
				OriginatingRequestID: "r-1",
			},
		}
		manager.On("Handle", mock.Anything, expected).
			Return(&entity.Response{Speech: "Mmm, a magic bean!", OpenMicrophone: true}, nil).Once()

		// Given: a step event in the platform envelope
		body := `{"session_id":"s-1","request_id":"r-2","locale":"en-GB",` +
			`"event":{"type":"step_event","device_id":"btn-1","originating_request_id":"r-1"}}`

		// When: it is posted
		recorder := serve(t, manager, http.MethodPost, "/skill", body)

		// Then: the session manager's answer is encoded as JSON
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var response entity.Response
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "Mmm, a magic bean!", response.Speech)
		assert.True(t, response.OpenMicrophone)
	})

	t.Run("Rejects malformed envelopes", func(t *testing.T) {
		cases := map[string]string{
			"not json":        `{"session_id":`,
			"missing session": `{"request_id":"r-1","event":{"type":"launch"}}`,
			"missing request": `{"session_id":"s-1","event":{"type":"launch"}}`,
			"unknown event":   `{"session_id":"s-1","request_id":"r-1","event":{"type":"dance"}}`,
			"check-in without button": `{"session_id":"s-1","request_id":"r-2",` +
				`"event":{"type":"button_checked_in","originating_request_id":"r-1"}}`,
			"step without button": `{"session_id":"s-1","request_id":"r-2",` +
				`"event":{"type":"step_event","originating_request_id":"r-1"}}`,
		}

		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				manager := &mockManager{}

				recorder := serve(t, manager, http.MethodPost, "/skill", body)

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				manager.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Falls back to the default locale", func(t *testing.T) {
		manager := &mockManager{}
		defer manager.AssertExpectations(t)
		manager.On("Handle", mock.Anything, mock.MatchedBy(func(request usecase.Request) bool {
			return request.Locale == "en-US" && request.Event.Kind == entity.EventLaunch
		})).Return(&entity.Response{Speech: "Welcome"}, nil).Once()

		recorder := serve(t, manager, http.MethodPost, "/skill",
			`{"session_id":"s-1","request_id":"r-1","event":{"type":"launch"}}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Hides internal failures", func(t *testing.T) {
		manager := &mockManager{}
		manager.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()

		recorder := serve(t, manager, http.MethodPost, "/skill",
			`{"session_id":"s-1","request_id":"r-1","event":{"type":"launch"}}`)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"error":"internal error"}`, recorder.Body.String())
	})

	t.Run("Only POST is routed", func(t *testing.T) {
		recorder := serve(t, &mockManager{}, http.MethodGet, "/skill", "")

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}

func TestResults(t *testing.T) {
	t.Run("Uses the default limit", func(t *testing.T) {
		manager := &mockManager{}
		defer manager.AssertExpectations(t)
		manager.On("RecentResults", mock.Anything, defaultResultsLimit).
			Return([]*entity.GameResult{{SessionID: "s-1", Winners: []string{"player1"}}}, nil).Once()

		recorder := serve(t, manager, http.MethodGet, "/results", "")

		require.Equal(t, http.StatusOK, recorder.Code)

		var results []entity.GameResult
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&results))
		require.Len(t, results, 1)
		assert.Equal(t, "s-1", results[0].SessionID)
	})

	t.Run("Caps large limits", func(t *testing.T) {
		manager := &mockManager{}
		defer manager.AssertExpectations(t)
		manager.On("RecentResults", mock.Anything, maxResultsLimit).Return(nil, nil).Once()

		recorder := serve(t, manager, http.MethodGet, "/results?limit=5000", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[]`, recorder.Body.String())
	})

	t.Run("Rejects a bad limit", func(t *testing.T) {
		recorder := serve(t, &mockManager{}, http.MethodGet, "/results?limit=-3", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
