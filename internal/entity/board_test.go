package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_Resolve(t *testing.T) {
	board := &Board{Length: 13, Mines: []int{2, 7, 11}, Beans: []int{0, 3, 4, 8, 9, 12}}

	t.Run("Returns the outcome for each kind of cell", func(t *testing.T) {
		assert.Equal(t, OutcomeMine, board.Resolve(7))
		assert.Equal(t, OutcomeBean, board.Resolve(3))
		assert.Equal(t, OutcomeEmpty, board.Resolve(5))
	})

	t.Run("Mines are checked before beans", func(t *testing.T) {
		// Given: a malformed board with a cell in both sets
		overlapping := &Board{Length: 5, Mines: []int{1}, Beans: []int{1}}

		// When: resolving that cell
		outcome := overlapping.Resolve(1)

		// Then: the mine wins
		assert.Equal(t, OutcomeMine, outcome)
	})

	t.Run("Positions past the end are empty", func(t *testing.T) {
		assert.Equal(t, OutcomeEmpty, board.Resolve(40))
	})
}

func TestBoard_Step(t *testing.T) {
	// Given: a board with a bean at zero and a mine at one
	board := &Board{Length: 4, Mines: []int{1}, Beans: []int{0}}

	// When: stepping three times
	outcomes := []Outcome{board.Step(), board.Step(), board.Step()}

	// Then: outcomes follow the cells and the pointer only moves forward
	assert.Equal(t, []Outcome{OutcomeBean, OutcomeMine, OutcomeEmpty}, outcomes)
	assert.Equal(t, 3, board.Pointer)
}
