package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const maxLineLength = 1 << 20

// Input is a fully materialized puzzle: the draw sequence and the boards in file order.
type Input struct {
	Draws  []int
	Boards []*entity.Board
}

// Parse reads a line of comma-separated draws followed by blank-line separated boards,
// each board being rows of whitespace-separated non-negative integers.
func Parse(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	input := &Input{}
	var rows [][]int
	ln := 0

	flush := func() error {
		if len(rows) == 0 {
			return nil
		}

		board, err := entity.NewBoard(rows)
		if err != nil {
			return fmt.Errorf("board %d ending at line %d: %w", len(input.Boards), ln, err)
		}

		input.Boards = append(input.Boards, board)
		rows = nil

		return nil
	}

	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "":
			if err := flush(); err != nil {
				return nil, err
			}
		case input.Draws == nil:
			draws, err := parseDraws(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}
			input.Draws = draws
		default:
			row, err := parseRow(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}
			rows = append(rows, row)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedInput, err)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	if len(input.Draws) == 0 {
		return nil, fmt.Errorf("%w: missing draw sequence", apperror.ErrMalformedInput)
	}

	if len(input.Boards) == 0 {
		return nil, fmt.Errorf("%w: no boards", apperror.ErrMalformedInput)
	}

	return input, nil
}

// ParseBytes is Parse over an in-memory puzzle.
func ParseBytes(data []byte) (*Input, error) {
	return Parse(bytes.NewReader(data))
}

func parseDraws(line string) ([]int, error) {
	fields := strings.Split(line, ",")
	draws := make([]int, 0, len(fields))

	for _, field := range fields {
		value, err := parseValue(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", len(draws), err)
		}
		draws = append(draws, value)
	}

	return draws, nil
}

func parseRow(line string) ([]int, error) {
	fields := strings.Fields(line)
	row := make([]int, 0, len(fields))

	for _, field := range fields {
		value, err := parseValue(field)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", len(row), err)
		}
		row = append(row, value)
	}

	return row, nil
}

func parseValue(field string) (int, error) {
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", apperror.ErrMalformedInput, field)
	}

	if value < 0 {
		return 0, fmt.Errorf("%w: %d is negative", apperror.ErrMalformedInput, value)
	}

	return value, nil
}
