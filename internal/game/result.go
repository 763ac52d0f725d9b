package game

// ResultKind tags the variant carried by a Result.
type ResultKind int

const (
	// ResultQuestion carries a new question to present.
	ResultQuestion ResultKind = iota

	// ResultCorrect carries the awarded points and either the next
	// question or, when the game just finished, the final standings.
	ResultCorrect

	// ResultIncorrect is a non-scoring rejection of an answer. The
	// round does not advance unless Question is set (timeout path).
	ResultIncorrect

	// ResultGameOver carries the final standings.
	ResultGameOver

	// ResultError carries one of the engine's sentinel errors.
	ResultError
)

// Result is the tagged outcome of every session operation. Exactly one
// Result is returned per call; presenters turn it into a chat message
// and never see engine internals beyond it.
type Result struct {
	Kind ResultKind

	// Question is the question to present next: the new question for
	// ResultQuestion, or the next round's question after a correct
	// answer or reveal. Nil when the session finished.
	Question  *Question
	Round     int
	MaxRounds int

	// Points awarded to the answering player (ResultCorrect only).
	Points int

	// Message carries feedback, reveal, or user-facing error text.
	Message string

	// Err is the sentinel behind a ResultError.
	Err error

	// GameOver marks results that ended the session; Standings is the
	// final leaderboard for those.
	GameOver  bool
	Standings []Standing

	// Bonuses maps user id to the perfect-game bonus awarded at
	// finish, so the caller can mirror it into the points ledger.
	Bonuses map[string]int
}

func errorResult(err error, msg string) Result {
	return Result{Kind: ResultError, Err: err, Message: msg}
}
