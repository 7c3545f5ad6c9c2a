package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

const examplePuzzle = `7,4,9,5,11,17,23,2,0,14,21,24,10,16,13,6,15,25,12,22,18,20,8,19,3,26,1

22 13 17 11  0
 8  2 23  4 24
21  9 14 16  7
 6 10  3 18  5
 1 12 20 15 19

 3 15  0  2 22
 9 18 13 17  5
19  8  7 25 23
20 11 10 24  4
14 21 16 12  6

14 21 17 24  4
10 16 15  9 19
18  8 23 26 20
22 11 13  6  5
 2  0 12  3  7
`

func TestParse(t *testing.T) {
	t.Run("Parses draws and boards", func(t *testing.T) {
		// When: parsing the example puzzle
		input, err := Parse(strings.NewReader(examplePuzzle))

		// Then: 27 draws and three 5x5 boards come out in file order
		require.NoError(t, err)
		assert.Len(t, input.Draws, 27)
		assert.Equal(t, []int{7, 4, 9}, input.Draws[:3])
		require.Len(t, input.Boards, 3)

		for _, board := range input.Boards {
			assert.Equal(t, 5, board.Width())
			assert.Equal(t, 5, board.Height())
		}

		assert.Equal(t, []int{22, 13, 17, 11, 0}, input.Boards[0].Values()[:5])
		assert.Equal(t, []int{2, 0, 12, 3, 7}, input.Boards[2].Values()[20:])
	})

	t.Run("Accepts CRLF and extra blank lines", func(t *testing.T) {
		// Given: the example with windows line endings and padding
		text := "\r\n" + strings.ReplaceAll(examplePuzzle, "\n", "\r\n") + "\r\n\r\n"

		// When: parsing
		input, err := ParseBytes([]byte(text))

		// Then: the same puzzle comes out
		require.NoError(t, err)
		assert.Len(t, input.Draws, 27)
		assert.Len(t, input.Boards, 3)
	})

	t.Run("Boards of other sizes are kept as given", func(t *testing.T) {
		input, err := ParseBytes([]byte("1,2\n\n1 2 3\n4 5 6\n"))

		require.NoError(t, err)
		require.Len(t, input.Boards, 1)
		assert.Equal(t, 3, input.Boards[0].Width())
		assert.Equal(t, 2, input.Boards[0].Height())
	})
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty input":       "",
		"only draws":        "1,2,3\n",
		"trailing comma":    "1,2,\n\n1 2\n3 4\n",
		"letter in draws":   "1,x\n\n1 2\n3 4\n",
		"negative draw":     "1,-2\n\n1 2\n3 4\n",
		"letter on a board": "1,2\n\n1 2\n3 y\n",
		"negative on board": "1,2\n\n1 -2\n3 4\n",
		"ragged board":      "1,2\n\n1 2\n3\n",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			input, err := ParseBytes([]byte(text))

			require.ErrorIs(t, err, apperror.ErrMalformedInput)
			assert.Nil(t, input)
		})
	}
}
