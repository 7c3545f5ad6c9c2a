package entity

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

// Cell is a single board square. Value never changes, Marked only goes from false to true.
type Cell struct {
	Value  int  `json:"value"`
	Marked bool `json:"marked"`
}

// Board is a fixed width x height grid stored row-major. The board exclusively owns its cells.
type Board struct {
	width  int
	height int
	total  int
	cells  []Cell
}

// NewBoard builds a board from its rows. All rows must have the same non-zero length,
// values must be non-negative and their total must fit in an int.
func NewBoard(rows [][]int) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: board has no cells", apperror.ErrMalformedInput)
	}

	width := len(rows[0])
	cells := make([]Cell, 0, width*len(rows))
	var total uint64

	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: board row %d has %d cells, want %d", apperror.ErrMalformedInput, i, len(row), width)
		}

		for _, value := range row {
			if value < 0 {
				return nil, fmt.Errorf("%w: board row %d holds negative value %d", apperror.ErrMalformedInput, i, value)
			}

			var carry uint64
			total, carry = bits.Add64(total, uint64(value), 0)
			if carry != 0 || total > math.MaxInt {
				return nil, fmt.Errorf("%w: board values overflow at row %d", apperror.ErrMalformedInput, i)
			}

			cells = append(cells, Cell{Value: value})
		}
	}

	return &Board{
		width:  width,
		height: len(rows),
		total:  int(total),
		cells:  cells,
	}, nil
}

func (that *Board) Width() int {
	return that.width
}

func (that *Board) Height() int {
	return that.height
}

// Cell returns a copy of the cell at row, col.
func (that *Board) Cell(row, col int) (Cell, error) {
	if row < 0 || row >= that.height || col < 0 || col >= that.width {
		return Cell{}, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	return that.cells[row*that.width+col], nil
}

// Values returns the cell values in row-major order.
func (that *Board) Values() []int {
	return lo.Map(that.cells, func(cell Cell, _ int) int {
		return cell.Value
	})
}

// MaxScore is the score the board would get if it won on draw with nothing marked.
// Every real score against draw is bounded by it.
func (that *Board) MaxScore(draw int) (int, error) {
	if draw < 0 {
		return 0, fmt.Errorf("%w: negative draw %d", apperror.ErrMalformedInput, draw)
	}

	hi, product := bits.Mul64(uint64(that.total), uint64(draw))
	if hi != 0 || product > math.MaxInt {
		return 0, fmt.Errorf("%w: score of %d x %d overflows", apperror.ErrMalformedInput, that.total, draw)
	}

	return int(product), nil
}

func (that *Board) SameDimensions(other *Board) bool {
	return that.width == other.width && that.height == other.height
}

// MarkValue marks every cell holding value. Values need not be unique on a board.
func (that *Board) MarkValue(value int) {
	for i := range that.cells {
		if that.cells[i].Value == value {
			that.cells[i].Marked = true
		}
	}
}

// HasWon reports whether some full row or some full column is marked.
func (that *Board) HasWon() bool {
	for row := 0; row < that.height; row++ {
		if that.isRowMarked(row) {
			return true
		}
	}

	for col := 0; col < that.width; col++ {
		if that.isColumnMarked(col) {
			return true
		}
	}

	return false
}

func (that *Board) UnmarkedSum() int {
	return lo.SumBy(that.cells, func(cell Cell) int {
		if cell.Marked {
			return 0
		}
		return cell.Value
	})
}

func (that *Board) isRowMarked(row int) bool {
	return lo.EveryBy(that.cells[row*that.width:(row+1)*that.width], isMarked)
}

func (that *Board) isColumnMarked(col int) bool {
	return lo.EveryBy(lo.Range(that.height), func(row int) bool {
		return that.cells[row*that.width+col].Marked
	})
}

func isMarked(cell Cell) bool {
	return cell.Marked
}
