package monster

import (
	"fmt"

	"github.com/rocketscienceinc/dontwakethemonster/internal/apperror"
	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

type boardSource interface {
	Intn(n int) int
	PickUnique(count, upper int, exclude []int) ([]int, error)
}

// GenerateBoard places the mines first and then the beans on the remaining cells.
func GenerateBoard(rules entity.Rules, source boardSource) (entity.Board, error) {
	length := rules.BoardLength
	if rules.BoardJitter > 0 {
		length += source.Intn(rules.BoardJitter + 1)
	}

	if length <= rules.MineCount+rules.BeanCount {
		return entity.Board{}, fmt.Errorf("%w: length %d, mines %d, beans %d",
			apperror.ErrBoardTooSmall, length, rules.MineCount, rules.BeanCount)
	}

	mines, err := source.PickUnique(rules.MineCount, length, nil)
	if err != nil {
		return entity.Board{}, fmt.Errorf("failed to place mines: %w", err)
	}

	beans, err := source.PickUnique(rules.BeanCount, length, mines)
	if err != nil {
		return entity.Board{}, fmt.Errorf("failed to place beans: %w", err)
	}

	return entity.Board{
		Length: length,
		Mines:  mines,
		Beans:  beans,
	}, nil
}
