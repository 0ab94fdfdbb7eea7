package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPlayer(t *testing.T) {
	t.Run("Advances and wraps around", func(t *testing.T) {
		// Given: three players
		count := 3

		// When: advancing from every seat
		got := []int{NextPlayer(1, count), NextPlayer(2, count), NextPlayer(3, count)}

		// Then: the last player wraps to the first
		assert.Equal(t, []int{2, 3, 1}, got)
	})

	t.Run("Zero count leaves the player unchanged", func(t *testing.T) {
		assert.Equal(t, 1, NextPlayer(1, 0))
	})
}

func TestComputeWinners(t *testing.T) {
	t.Run("Single winner", func(t *testing.T) {
		// Given: a clear leader
		scores := map[string]int{"player1": 1, "player2": 4, "player3": 2}

		// When: computing winners
		winners := ComputeWinners(scores, 3)

		// Then: only the leader wins
		assert.Equal(t, []string{"player2"}, winners)
	})

	t.Run("Ties return every top player in order", func(t *testing.T) {
		// Given: two players tied at the top
		scores := map[string]int{"player1": 3, "player2": 1, "player3": 3, "player4": 0}

		// When: computing winners
		winners := ComputeWinners(scores, 4)

		// Then: both tied players are returned in player order
		assert.Equal(t, []string{"player1", "player3"}, winners)
	})

	t.Run("All zero is a draw between everyone", func(t *testing.T) {
		winners := ComputeWinners(map[string]int{}, 2)

		assert.Equal(t, []string{"player1", "player2"}, winners)
	})

	t.Run("No players, no winners", func(t *testing.T) {
		assert.Empty(t, ComputeWinners(map[string]int{"player1": 5}, 0))
	})
}
