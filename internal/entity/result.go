package entity

import "time"

// GameResult is the record kept for every game that ended with the monster waking up.
type GameResult struct {
	SessionID      string            `json:"session_id"`
	ReplayCount    int               `json:"replay_count"`
	PlayerCount    int               `json:"player_count"`
	TrapsTriggered int               `json:"traps_triggered"`
	Winners        []string          `json:"winners"`
	Scores         map[string]int    `json:"scores"`
	Characters     map[string]string `json:"characters"`
	FinishedAt     time.Time         `json:"finished_at"`
}

func NewGameResult(session *Session, finishedAt time.Time) *GameResult {
	scores := make(map[string]int, len(session.OverallScore))
	for key, score := range session.OverallScore {
		scores[key] = score
	}

	characters := make(map[string]string, len(session.Characters))
	for key, name := range session.Characters {
		characters[key] = name
	}

	return &GameResult{
		SessionID:      session.ID,
		ReplayCount:    session.ReplayCount,
		PlayerCount:    session.PlayerCount,
		TrapsTriggered: session.Game.TrapsTriggered,
		Winners:        append([]string(nil), session.Game.Winners...),
		Scores:         scores,
		Characters:     characters,
		FinishedAt:     finishedAt,
	}
}
