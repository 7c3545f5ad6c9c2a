package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

func TestPolicyByName(t *testing.T) {
	first, err := PolicyByName(PolicyFirst)
	require.NoError(t, err)
	assert.Equal(t, FirstWinner{}, first)

	last, err := PolicyByName(PolicyLast)
	require.NoError(t, err)
	assert.Equal(t, LastWinner{}, last)

	_, err = PolicyByName("middle")
	require.ErrorIs(t, err, apperror.ErrUnknownPolicy)
}

func TestLastWinner_Observe(t *testing.T) {
	boards := newBoards(t,
		[][]int{{1, 2}, {3, 4}},
		[][]int{{1, 2}, {5, 6}},
		[][]int{{1, 9}, {2, 9}},
		[][]int{{7, 8}, {9, 10}},
	)

	t.Run("Continues with the winners removed", func(t *testing.T) {
		// When: boards 0 and 2 win while four are live
		decision := LastWinner{}.Observe(Round{
			Number:  2,
			Draw:    2,
			Winners: []int{0, 2},
			Live:    []int{0, 1, 2, 3},
			Boards:  boards,
		})

		// Then: the live set keeps 1 and 3 in order
		assert.False(t, decision.IsTerminal())
		assert.Equal(t, []int{1, 3}, decision.Live)
	})

	t.Run("Terminal once the live set is empty", func(t *testing.T) {
		// When: the two remaining boards win together
		decision := LastWinner{}.Observe(Round{
			Number:  4,
			Draw:    10,
			Winners: []int{1, 3},
			Live:    []int{1, 3},
			Boards:  boards,
		})

		// Then: the higher index is reported
		require.True(t, decision.IsTerminal())
		assert.Equal(t, 3, decision.Outcome.BoardIndex)
		assert.Equal(t, 10, decision.Outcome.Draw)
		assert.Equal(t, 4, decision.Outcome.Round)
	})
}

func TestFirstWinner_Observe(t *testing.T) {
	boards := newBoards(t,
		[][]int{{1, 2}, {3, 4}},
		[][]int{{1, 2}, {5, 6}},
	)

	decision := FirstWinner{}.Observe(Round{
		Number:  1,
		Draw:    3,
		Winners: []int{0, 1},
		Live:    []int{0, 1},
		Boards:  boards,
	})

	require.True(t, decision.IsTerminal())
	assert.Equal(t, 0, decision.Outcome.BoardIndex)
	assert.Equal(t, 30, decision.Outcome.Score)
}
