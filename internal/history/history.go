package history

import (
	"context"
	"time"
)

// Result is one finished match. Only results are kept, never game state.
type Result struct {
	ID         string    `json:"id"`
	P1         string    `json:"p1"`
	P2         string    `json:"p2"`
	Score1     int       `json:"score1"`
	Score2     int       `json:"score2"`
	Winner     string    `json:"winner"`
	Rounds     int       `json:"rounds"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Recorder interface {
	Record(ctx context.Context, r Result) error
	// Recent returns the player's latest results, newest first.
	Recent(ctx context.Context, player string, limit int) ([]Result, error)
}

const DefaultLimit = 20
