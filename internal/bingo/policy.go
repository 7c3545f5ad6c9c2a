package bingo

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const (
	PolicyFirst = "first"
	PolicyLast  = "last"
)

// Round is what a policy sees after a draw produced at least one winner.
// Winners and Live hold board indices in ascending order.
type Round struct {
	Number  int
	Draw    int
	Winners []int
	Live    []int
	Boards  []*entity.Board
}

// Decision either ends the run with an outcome or carries the live set into the next draw.
type Decision struct {
	Live    []int
	Outcome *entity.Outcome
}

func Continue(live []int) Decision {
	return Decision{Live: live}
}

func Terminal(outcome entity.Outcome) Decision {
	return Decision{Outcome: &outcome}
}

func (that Decision) IsTerminal() bool {
	return that.Outcome != nil
}

// Policy decides which board's win ends the simulation.
type Policy interface {
	Name() string
	Observe(round Round) Decision
}

// PolicyByName resolves "first" or "last".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyFirst:
		return FirstWinner{}, nil
	case PolicyLast:
		return LastWinner{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownPolicy, name)
	}
}

// FirstWinner ends on the first round with any winner, picking the lowest board index.
type FirstWinner struct{}

func (FirstWinner) Name() string {
	return PolicyFirst
}

func (FirstWinner) Observe(round Round) Decision {
	winner := round.Winners[0]

	return Terminal(entity.NewOutcome(winner, round.Boards[winner], round.Draw, round.Number))
}

// LastWinner drops winning boards until none are left. When several boards win in the
// round that empties the live set, the highest index among them is reported.
type LastWinner struct{}

func (LastWinner) Name() string {
	return PolicyLast
}

func (LastWinner) Observe(round Round) Decision {
	live := lo.Without(round.Live, round.Winners...)
	if len(live) > 0 {
		return Continue(live)
	}

	winner := round.Winners[len(round.Winners)-1]

	return Terminal(entity.NewOutcome(winner, round.Boards[winner], round.Draw, round.Number))
}
