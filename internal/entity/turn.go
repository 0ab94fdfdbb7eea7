package entity

import "fmt"

// TurnState tracks the turn in progress. Player is the one who pressed go,
// so points are credited to them even if CurrentPlayer moved meanwhile.
type TurnState struct {
	Active bool `json:"active"`
	Player int  `json:"player"`
	Score  int  `json:"score"`
	Steps  int  `json:"steps"`
}

// GameState is the per-round state. A replay replaces it wholesale.
type GameState struct {
	Board          Board     `json:"board"`
	Turn           TurnState `json:"turn"`
	TrapsTriggered int       `json:"traps_triggered"`
	Winners        []string  `json:"winners,omitempty"`
}

func PlayerKey(player int) string {
	return fmt.Sprintf("player%d", player)
}

// NextPlayer returns the 1-indexed player after current, wrapping at count.
func NextPlayer(current, count int) int {
	if count <= 0 {
		return current
	}

	return current%count + 1
}

// ComputeWinners returns every player key tied at the top score, in player order.
func ComputeWinners(scores map[string]int, playerCount int) []string {
	var (
		winners []string
		best    int
	)

	for player := 1; player <= playerCount; player++ {
		key := PlayerKey(player)
		score := scores[key]

		switch {
		case len(winners) == 0 || score > best:
			best = score
			winners = []string{key}
		case score == best:
			winners = append(winners, key)
		}
	}

	return winners
}
