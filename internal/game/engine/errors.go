package engine

import (
	"errors"

	"Shkuba/internal/game/dealer"
	"Shkuba/internal/game/table"
)

var (
	ErrNotAFit        = errors.New("selection does not add up to the played card")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardHasCapture = errors.New("card can capture, drop refused")
	ErrDeckExhausted  = errors.New("not enough cards left to deal")
	ErrWrongPhase     = errors.New("operation not allowed in this phase")
	ErrMatchOver      = errors.New("match is over")
	ErrNoRound        = errors.New("no round in progress")
)

// Status is the wire name of a call result.
type Status string

const (
	StatusOk             Status = "Ok"
	StatusNotAFit        Status = "NotAFit"
	StatusDuplicateCard  Status = "DuplicateCard"
	StatusInvalidIndex   Status = "InvalidIndex"
	StatusCardNotOnBoard Status = "CardNotOnBoard"
	StatusNotYourTurn    Status = "NotYourTurn"
	StatusCardHasCapture Status = "CardHasCapture"
	StatusDeckExhausted  Status = "DeckExhausted"
	StatusEmptyDeck      Status = "EmptyDeck"
	StatusWrongPhase     Status = "WrongPhase"
	StatusMatchOver      Status = "MatchOver"
	StatusUnknown        Status = "Unknown"
)

var statuses = []struct {
	err    error
	status Status
}{
	{ErrNotAFit, StatusNotAFit},
	{table.ErrDuplicateCard, StatusDuplicateCard},
	{table.ErrInvalidIndex, StatusInvalidIndex},
	{table.ErrCardNotOnBoard, StatusCardNotOnBoard},
	{ErrNotYourTurn, StatusNotYourTurn},
	{ErrCardHasCapture, StatusCardHasCapture},
	{ErrDeckExhausted, StatusDeckExhausted},
	{dealer.ErrEmptyDeck, StatusEmptyDeck},
	{ErrWrongPhase, StatusWrongPhase},
	{ErrNoRound, StatusWrongPhase},
	{ErrMatchOver, StatusMatchOver},
}

func StatusOf(err error) Status {
	if err == nil {
		return StatusOk
	}
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return StatusUnknown
}
