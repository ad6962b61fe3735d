package manager

import (
	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"
)

// 客户端 -> 服务端
const (
	EventFirstChoice = "first_choice"
	EventPlayCard    = "play_card"
	EventDropCard    = "drop_card"
	EventNextRound   = "next_round"
	EventLeave       = "leave"
)

// 服务端 -> 客户端
const (
	EventStarted   = "game_started"
	EventState     = "state"
	EventRejected  = "rejected"
	EventRoundOver = "round_over"
	EventMatchOver = "match_over"
)

type firstChoiceReq struct {
	Take bool `json:"take"`
}

type playCardReq struct {
	Index   int          `json:"index"`
	Capture []table.Card `json:"capture"`
}

type dropCardReq struct {
	Index int `json:"index"`
}

// StatePayload is one player's view. FirstCard is only shown to the first
// player while the start card is undecided.
type StatePayload struct {
	Session string `json:"session"`
	engine.View
	FirstCard *table.Card `json:"firstCard,omitempty"`
	Opponent  string      `json:"opponent"`
	Totals    [2]int      `json:"totals"`
	Round     int         `json:"round"`
}

type RejectedPayload struct {
	Event  string        `json:"event"`
	Status engine.Status `json:"status"`
	Error  string        `json:"error"`
}

type RoundOverPayload struct {
	Score  engine.Score `json:"score"`
	Totals [2]int       `json:"totals"`
	Round  int          `json:"round"`
}

type MatchOverPayload struct {
	Winner  string `json:"winner"`
	Totals  [2]int `json:"totals"`
	Rounds  int    `json:"rounds"`
	Forfeit bool   `json:"forfeit,omitempty"`
}
