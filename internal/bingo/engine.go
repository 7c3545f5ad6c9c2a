package bingo

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

// Run replays draws against boards until policy returns a terminal decision.
// Boards are marked in place. Input is validated before any draw is applied.
func Run(boards []*entity.Board, draws []int, policy Policy) (entity.Outcome, error) {
	if policy == nil {
		return entity.Outcome{}, fmt.Errorf("%w: no policy given", apperror.ErrUnknownPolicy)
	}

	if err := validate(boards, draws); err != nil {
		return entity.Outcome{}, err
	}

	live := lo.Range(len(boards))

	for i, draw := range draws {
		winners := playRound(boards, live, draw)
		if len(winners) == 0 {
			continue
		}

		decision := policy.Observe(Round{
			Number:  i + 1,
			Draw:    draw,
			Winners: winners,
			Live:    live,
			Boards:  boards,
		})

		if decision.IsTerminal() {
			outcome := *decision.Outcome
			outcome.Policy = policy.Name()

			return outcome, nil
		}

		live = decision.Live
	}

	return entity.Outcome{}, fmt.Errorf("%w: %d draws exhausted with %d of %d boards live under %s policy",
		apperror.ErrNoWinner, len(draws), len(live), len(boards), policy.Name())
}

// playRound marks draw on every live board and returns the live boards that now win.
func playRound(boards []*entity.Board, live []int, draw int) []int {
	var winners []int

	for _, index := range live {
		boards[index].MarkValue(draw)
	}

	for _, index := range live {
		if boards[index].HasWon() {
			winners = append(winners, index)
		}
	}

	return winners
}

func validate(boards []*entity.Board, draws []int) error {
	if len(boards) == 0 {
		return fmt.Errorf("%w: no boards", apperror.ErrMalformedInput)
	}

	if len(draws) == 0 {
		return fmt.Errorf("%w: empty draw sequence", apperror.ErrMalformedInput)
	}

	for i, board := range boards {
		if board == nil {
			return fmt.Errorf("%w: board %d is nil", apperror.ErrMalformedInput, i)
		}

		if !board.SameDimensions(boards[0]) {
			return fmt.Errorf("%w: board %d is %dx%d, board 0 is %dx%d", apperror.ErrMalformedInput,
				i, board.Width(), board.Height(), boards[0].Width(), boards[0].Height())
		}
	}

	if lowest := lo.Min(draws); lowest < 0 {
		return fmt.Errorf("%w: negative draw %d", apperror.ErrMalformedInput, lowest)
	}

	// unmarked sums only shrink, so the largest draw bounds every score of the run
	highest := lo.Max(draws)
	for i, board := range boards {
		if _, err := board.MaxScore(highest); err != nil {
			return fmt.Errorf("board %d: %w", i, err)
		}
	}

	return nil
}
