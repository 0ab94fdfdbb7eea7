package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/testing/suite"
)

func playingSession(id string) *entity.Session {
	session := entity.NewSession(id)
	session.Phase = entity.PhasePlay
	session.PlayerCount = 2
	session.CurrentPlayer = 2
	session.Characters = map[string]string{"player1": "furry potato", "player2": "fungus beetle"}
	session.ChosenCharacters = []string{"furry potato", "fungus beetle"}
	session.OverallScore = map[string]int{"player1": 3, "player2": 1}
	session.DeviceIDs = []string{"btn-1"}
	session.InputHandlerID = "req-7"
	session.Game = entity.GameState{
		Board: entity.Board{Length: 13, Mines: []int{2, 5, 9}, Beans: []int{0, 1, 3, 6, 7, 8}, Pointer: 4},
		Turn:  entity.TurnState{Active: true, Player: 2, Score: 1, Steps: 1},
	}

	return session
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a session in the middle of a turn
	session := playingSession("s-1")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: it is stored with an expiry
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:s-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := playingSession("s-1")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with its ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: every field survives the round trip
		require.NoError(t, err)
		assert.Equal(t, session, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with an unknown ID
		retrieved, err := sessionRepo.GetByID(ctx, "missing")

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("GetByID_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a record that is not a session
		require.NoError(t, st.Storage.Set(ctx, "session:bad", "{not json", 0).Err())

		// When: reading it
		_, err := sessionRepo.GetByID(ctx, "bad")

		// Then: the session is reported as inconsistent
		require.ErrorIs(t, err, apperror.ErrInternalInconsistency)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := playingSession("s-1")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: it can no longer be read
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: DeleteByID is called with an unknown ID
		err := sessionRepo.DeleteByID(ctx, "missing")

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
