package game

import "errors"

// Errors surfaced by the engine. They never escape as panics; the
// session and registry convert them into Result values at the boundary.
var (
	ErrInvalidState       = errors.New("operation not valid in current session state")
	ErrNotJoinable        = errors.New("player cannot join this session")
	ErrAlreadyAnswered    = errors.New("player already answered this round")
	ErrNoActiveQuestion   = errors.New("no active question")
	ErrHintAlreadyUsed    = errors.New("hint already used this round")
	ErrQuestionGeneration = errors.New("failed to generate question")
	ErrUnknownGameKind    = errors.New("unknown game kind")
	ErrNoAcceptedAnswers  = errors.New("question has no accepted answers")
)
