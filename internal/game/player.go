package game

import "time"

// PlayerScore accumulates one player's results within a single session.
// Records live and die with the owning session; the durable points
// ledger is updated separately per scoring event.
type PlayerScore struct {
	UserID      string
	DisplayName string

	Points       int
	CorrectCount int
	WrongCount   int
	HintsUsed    int

	// AnswerTime is the cumulative time spent on correct answers. It is
	// the final leaderboard tiebreaker: faster players rank first among
	// equal scorers.
	AnswerTime   time.Duration
	LastAnswerAt time.Time
}

// Standing is one row of a ranked leaderboard, either within a session
// or aggregated across live sessions.
type Standing struct {
	UserID       string
	DisplayName  string
	Points       int
	CorrectCount int
	AnswerTime   time.Duration
}
