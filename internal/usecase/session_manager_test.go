package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/i18n"
	"github.com/rocketscienceinc/dontwakethemonster/internal/monster"
	"github.com/rocketscienceinc/dontwakethemonster/internal/repository"
	"github.com/rocketscienceinc/dontwakethemonster/testing/suite"
)

var errDiskFull = errors.New("disk full")

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Save(ctx context.Context, result *entity.GameResult) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	args := that.Called(ctx, limit)
	return args.Get(0).([]*entity.GameResult), args.Error(1)
}

// minesFirst puts the three mines on the first three cells.
type minesFirst struct{}

func (minesFirst) Intn(int) int { return 0 }

func (minesFirst) PickUnique(_, _ int, exclude []int) ([]int, error) {
	if exclude == nil {
		return []int{0, 1, 2}, nil
	}

	return []int{3, 4, 5, 6, 7, 8}, nil
}

type fixture struct {
	t        *testing.T
	ctx      context.Context
	clock    *quartz.Mock
	sessions repository.SessionRepository
	results  *mockResultRepo
	manager  *SessionManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog, err := i18n.LoadEmbedded(monster.MessageKeys)
	require.NoError(t, err)

	logger := suite.NewLogger()
	clock := quartz.NewMock(t)
	sessions := repository.NewMemorySessionRepository()
	results := &mockResultRepo{}
	t.Cleanup(func() { results.AssertExpectations(t) })

	machine := monster.NewMachine(logger, entity.DefaultRules(), minesFirst{})

	return &fixture{
		t:        t,
		ctx:      context.Background(),
		clock:    clock,
		sessions: sessions,
		results:  results,
		manager:  NewSessionManager(logger, clock, machine, catalog, sessions, results),
	}
}

func (that *fixture) handle(requestID string, event entity.Event) *entity.Response {
	that.t.Helper()

	response, err := that.manager.Handle(that.ctx, Request{
		SessionID: "s-1",
		RequestID: requestID,
		Locale:    "en-US",
		Event:     event,
	})
	require.NoError(that.t, err)
	require.NotNil(that.t, response)

	return response
}

func (that *fixture) stored() *entity.Session {
	that.t.Helper()

	session, err := that.sessions.GetByID(that.ctx, "s-1")
	require.NoError(that.t, err)

	return session
}

func (that *fixture) setUpGame() {
	that.t.Helper()

	two := 2
	that.handle("r-launch", entity.Event{Kind: entity.EventLaunch})
	that.handle("r-check", entity.Event{Kind: entity.EventButtonCheckedIn, DeviceID: "btn-1", OriginatingRequestID: "r-launch"})
	that.handle("r-count", entity.Event{Kind: entity.EventPlayerCountGiven, PlayerCount: &two})
	that.handle("r-pick-1", entity.Event{Kind: entity.EventCharacterChosen, Character: "furry potato"})
	that.handle("r-pick-2", entity.Event{Kind: entity.EventCharacterChosen, Character: "star-nosed mole"})

	require.Equal(that.t, entity.PhasePlay, that.stored().Phase)
}

func TestSessionManager_Handle(t *testing.T) {
	t.Run("Creates and persists a new session on launch", func(t *testing.T) {
		f := newFixture(t)

		// When: a launch arrives for an unknown session
		response := f.handle("r-launch", entity.Event{Kind: entity.EventLaunch})

		// Then: the welcome is spoken and the session is stored with the clock's time
		assert.Contains(t, response.Speech, "Welcome to Don't Wake the Monster!")
		session := f.stored()
		assert.Equal(t, entity.PhaseRollCall, session.Phase)
		assert.Equal(t, "r-launch", session.InputHandlerID)
		assert.Equal(t, "en-US", session.Locale)
		assert.True(t, session.UpdatedAt.Equal(f.clock.Now()))
	})

	t.Run("Records the result when the monster wakes up", func(t *testing.T) {
		f := newFixture(t)
		f.setUpGame()

		f.results.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.GameResult) bool {
			return result.SessionID == "s-1" &&
				result.TrapsTriggered == 3 &&
				assert.ObjectsAreEqual([]string{"player1", "player2"}, result.Winners)
		})).Return(nil).Once()

		// When: three turns each step on a mine
		var response *entity.Response
		for i, id := range []string{"r-go-1", "r-go-2", "r-go-3"} {
			f.handle(id, entity.Event{Kind: entity.EventGo})
			response = f.handle("r-step-"+id, entity.Event{Kind: entity.EventStep, DeviceID: "btn-1", OriginatingRequestID: id})

			assert.Equal(t, i+1, f.stored().Game.TrapsTriggered)
		}

		// Then: the game is over and the players are asked to play again
		assert.True(t, response.GameOver)
		assert.Contains(t, response.Speech, "It's a tie between the furry potato and star-nosed mole.")
		assert.Equal(t, entity.PhaseEndGame, f.stored().Phase)
	})

	t.Run("A failing history store does not lose the reply", func(t *testing.T) {
		f := newFixture(t)
		f.setUpGame()
		f.results.On("Save", mock.Anything, mock.Anything).Return(errDiskFull).Once()

		var response *entity.Response
		for _, id := range []string{"r-go-1", "r-go-2", "r-go-3"} {
			f.handle(id, entity.Event{Kind: entity.EventGo})
			response = f.handle("r-step-"+id, entity.Event{Kind: entity.EventStep, DeviceID: "btn-1", OriginatingRequestID: id})
		}

		assert.True(t, response.GameOver)
		assert.Equal(t, entity.PhaseEndGame, f.stored().Phase)
	})

	t.Run("Stale events are not persisted", func(t *testing.T) {
		f := newFixture(t)
		f.handle("r-launch", entity.Event{Kind: entity.EventLaunch})
		before := f.stored()

		// Given: time moves on
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		f.clock.Advance(time.Minute).MustWait(ctx)

		// When: a check-in from an old handler arrives
		response := f.handle("r-late", entity.Event{Kind: entity.EventButtonCheckedIn, DeviceID: "btn-1", OriginatingRequestID: "r-old"})

		// Then: nothing is said and the stored session is untouched
		assert.Empty(t, response.Speech)
		assert.False(t, response.OpenMicrophone)
		assert.Equal(t, before, f.stored())
	})

	t.Run("Inconsistent session gets an apology and survives", func(t *testing.T) {
		f := newFixture(t)

		// Given: a stored session with an impossible player count
		broken := entity.NewSession("s-1")
		broken.Phase = entity.PhasePlay
		broken.PlayerCount = 9
		broken.CurrentPlayer = 1
		require.NoError(t, f.sessions.CreateOrUpdate(f.ctx, broken))

		// When: any request arrives
		response := f.handle("r-go", entity.Event{Kind: entity.EventGo})

		// Then: a generic apology is returned and the record is left alone
		assert.Equal(t, "Sorry, something went wrong on my side. Please try that again.", response.Speech)
		assert.Equal(t, 9, f.stored().PlayerCount)
	})

	t.Run("Validation errors reprompt and keep the phase", func(t *testing.T) {
		f := newFixture(t)
		f.handle("r-launch", entity.Event{Kind: entity.EventLaunch})
		f.handle("r-check", entity.Event{Kind: entity.EventButtonCheckedIn, DeviceID: "btn-1", OriginatingRequestID: "r-launch"})

		five := 5
		response := f.handle("r-count", entity.Event{Kind: entity.EventPlayerCountGiven, PlayerCount: &five})

		assert.Contains(t, response.Speech, "At most 4 can play.")
		assert.True(t, response.OpenMicrophone)
		assert.Equal(t, entity.PhasePlayerCount, f.stored().Phase)
	})
}

func TestSessionManager_RecentResults(t *testing.T) {
	f := newFixture(t)

	expected := []*entity.GameResult{{SessionID: "s-9", Winners: []string{"player2"}}}
	f.results.On("ListRecent", mock.Anything, 5).Return(expected, nil).Once()

	results, err := f.manager.RecentResults(f.ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, expected, results)
}
