package entity

// Outcome is the terminal result of a simulation run.
type Outcome struct {
	BoardIndex int    `json:"board"`
	Draw       int    `json:"draw"`
	Round      int    `json:"round"`
	Score      int    `json:"score"`
	Policy     string `json:"policy,omitempty"`
}

// NewOutcome scores board against the draw that made it win.
func NewOutcome(index int, board *Board, draw, round int) Outcome {
	return Outcome{
		BoardIndex: index,
		Draw:       draw,
		Round:      round,
		Score:      board.UnmarkedSum() * draw,
	}
}
