// Package game implements the turn-based trivia engine: questions,
// sessions, scoring, and the room-keyed session registry. Concrete game
// variants plug in as QuestionSource implementations; the engine itself
// never changes per variant.
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Mode selects how many players a session accepts.
type Mode int

const (
	// ModeSingle admits exactly one player.
	ModeSingle Mode = iota

	// ModeGroup admits multiple players, one answer each per round.
	ModeGroup
)

// Status is the lifecycle state of a session. Transitions only move
// forward: WAITING -> ACTIVE -> FINISHED.
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusFinished
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Scoring constants for a correct answer.
const (
	// BasePoints is awarded for every correct answer.
	BasePoints = 10

	// DefaultHintPenalty is subtracted when a hint was used this round.
	DefaultHintPenalty = 5

	// DefaultPerfectBonus is awarded at finish to players who answered
	// every round correctly without hints.
	DefaultPerfectBonus = 10

	// DefaultMaxRounds is the session length when not configured.
	DefaultMaxRounds = 5

	// maxGenFailures is how many consecutive source failures a session
	// tolerates before stopping itself.
	maxGenFailures = 3
)

// ErrAnswerAlreadyUsed marks a chain-words submission that was already
// played earlier in the session. Distinct from a plain wrong answer.
var ErrAnswerAlreadyUsed = errors.New("answer already used in this session")

// ScoreCorrect computes the points for a correct answer: 10 base, a
// speed bonus of 5/3/1 under 5/10/15 seconds, minus the hint penalty
// when a hint was used this round, floored at zero.
func ScoreCorrect(taken time.Duration, hintUsed bool, penalty int) int {
	pts := BasePoints
	switch {
	case taken < 5*time.Second:
		pts += 5
	case taken < 10*time.Second:
		pts += 3
	case taken < 15*time.Second:
		pts += 1
	}
	if hintUsed {
		pts -= penalty
	}
	if pts < 0 {
		pts = 0
	}
	return pts
}

// SessionConfig holds the policy knobs that distinguish game variants.
// Concrete games are a QuestionSource plus one of these, never a new
// session type.
type SessionConfig struct {
	Mode       Mode
	MaxRounds  int
	MaxPlayers int // 0 = unlimited (GROUP mode only)

	HintPenalty  int
	PerfectBonus int

	// HintOncePerRound rejects a second hint request within the same
	// round instead of permissively re-serving it.
	HintOncePerRound bool

	// TimeLimit, when set, is the per-question limit. Enforcement is
	// cooperative: the next submission for an expired question reveals
	// the answer and advances the round without credit.
	TimeLimit time.Duration
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.MaxRounds < 1 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.HintPenalty <= 0 {
		c.HintPenalty = DefaultHintPenalty
	}
	if c.PerfectBonus <= 0 {
		c.PerfectBonus = DefaultPerfectBonus
	}
	return c
}

// Session is one played instance of a game kind in one room. All state
// is guarded by the session's own mutex so that simultaneous answers
// from a group are serialized deterministically; no lock is ever held
// across presenter or transport calls.
type Session struct {
	id   string
	kind string
	cfg  SessionConfig

	mu                sync.Mutex
	status            Status
	source            QuestionSource
	round             int
	question          *Question
	questionStartedAt time.Time
	players           map[string]*PlayerScore
	answered          map[string]struct{}
	hintUsed          bool
	genFailures       int

	createdAt    time.Time
	startedAt    time.Time
	lastActivity time.Time

	now func() time.Time
}

// NewSession creates a session in WAITING state.
func NewSession(id, kind string, source QuestionSource, cfg SessionConfig) *Session {
	s := &Session{
		id:       id,
		kind:     kind,
		cfg:      cfg.withDefaults(),
		status:   StatusWaiting,
		source:   source,
		players:  make(map[string]*PlayerScore),
		answered: make(map[string]struct{}),
		now:      time.Now,
	}
	s.createdAt = s.now()
	s.lastActivity = s.createdAt
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Kind returns the game kind this session plays.
func (s *Session) Kind() string { return s.kind }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Round returns the current round number (0 before Start).
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// LastActivity returns the time of the last operation on the session.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Start moves the session from WAITING to ACTIVE and generates the
// first question.
func (s *Session) Start() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()

	if s.status != StatusWaiting {
		return errorResult(ErrInvalidState, "توجد لعبة جارية بالفعل")
	}

	s.status = StatusActive
	s.startedAt = s.now()
	s.round = 1
	s.answered = make(map[string]struct{})

	if err := s.nextQuestionLocked(); err != nil {
		return s.genFailureLocked()
	}
	return Result{
		Kind:      ResultQuestion,
		Question:  s.question,
		Round:     s.round,
		MaxRounds: s.cfg.MaxRounds,
	}
}

// AddPlayer registers a player, creating their score record on first
// join. Idempotent for an already-registered user. Returns false when
// mode or capacity rules reject the join.
func (s *Session) AddPlayer(userID, displayName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPlayerLocked(userID, displayName)
}

func (s *Session) addPlayerLocked(userID, displayName string) bool {
	if _, ok := s.players[userID]; ok {
		return true
	}
	if s.cfg.Mode == ModeSingle && len(s.players) >= 1 {
		return false
	}
	if s.cfg.Mode == ModeGroup && s.cfg.MaxPlayers > 0 && len(s.players) >= s.cfg.MaxPlayers {
		return false
	}
	s.players[userID] = &PlayerScore{UserID: userID, DisplayName: displayName}
	return true
}

// Submit runs the state machine for one submitted answer.
func (s *Session) Submit(userID, displayName, text string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.lastActivity = now

	if s.status != StatusActive {
		return errorResult(ErrInvalidState, "لا توجد لعبة نشطة")
	}
	if s.question == nil {
		// A failed generation leaves the session without a question;
		// the next submission retries before giving up.
		if s.genFailures > 0 {
			if err := s.nextQuestionLocked(); err != nil {
				return s.genFailureLocked()
			}
			return Result{
				Kind:      ResultQuestion,
				Question:  s.question,
				Round:     s.round,
				MaxRounds: s.cfg.MaxRounds,
			}
		}
		return errorResult(ErrNoActiveQuestion, "لا يوجد سؤال حالي")
	}
	if !s.addPlayerLocked(userID, displayName) {
		return errorResult(ErrNotJoinable, "لا يمكنك الانضمام لهذه اللعبة")
	}
	ps := s.players[userID]

	if s.cfg.Mode == ModeGroup {
		if _, done := s.answered[userID]; done {
			return errorResult(ErrAlreadyAnswered, "لقد أجبت في هذه الجولة")
		}
	}

	taken := now.Sub(s.questionStartedAt)
	if taken < 0 {
		taken = 0
	}

	if s.cfg.TimeLimit > 0 && taken > s.cfg.TimeLimit {
		res := Result{
			Kind:    ResultIncorrect,
			Message: "انتهى الوقت! الاجابة الصحيحة: " + s.question.RevealText(),
		}
		return s.advanceLocked(res)
	}

	switch s.question.Match(text) {
	case OutcomeAlreadyUsed:
		ps.LastAnswerAt = now
		return Result{
			Kind:    ResultIncorrect,
			Err:     ErrAnswerAlreadyUsed,
			Message: "هذه الكلمة مستخدمة من قبل",
		}

	case OutcomeCorrect:
		pts := ScoreCorrect(taken, s.hintUsed, s.cfg.HintPenalty)
		ps.Points += pts
		ps.CorrectCount++
		ps.AnswerTime += taken
		ps.LastAnswerAt = now
		s.answered[userID] = struct{}{}

		res := Result{
			Kind:    ResultCorrect,
			Points:  pts,
			Message: s.question.FeedbackText(text),
		}
		return s.advanceLocked(res)

	default:
		ps.WrongCount++
		ps.LastAnswerAt = now
		// In a group, a wrong answer consumes the player's attempt for
		// the round; alone, the player may keep trying.
		if s.cfg.Mode == ModeGroup {
			s.answered[userID] = struct{}{}
			return Result{Kind: ResultIncorrect, Message: "اجابة خاطئة"}
		}
		return Result{Kind: ResultIncorrect, Message: "اجابة خاطئة، حاول مرة أخرى"}
	}
}

// Hint returns the current question's hint and records its use. The
// round does not advance. With HintOncePerRound set, a second request
// in the same round is rejected.
func (s *Session) Hint(userID, displayName string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()

	if s.status != StatusActive {
		return errorResult(ErrInvalidState, "لا توجد لعبة نشطة")
	}
	if s.question == nil {
		return errorResult(ErrNoActiveQuestion, "لا يوجد سؤال حالي")
	}
	if !s.addPlayerLocked(userID, displayName) {
		return errorResult(ErrNotJoinable, "لا يمكنك الانضمام لهذه اللعبة")
	}
	if s.cfg.HintOncePerRound && s.hintUsed {
		return errorResult(ErrHintAlreadyUsed, "استخدمت اللمحة في هذه الجولة")
	}

	s.hintUsed = true
	s.players[userID].HintsUsed++

	return Result{
		Kind:      ResultQuestion,
		Question:  s.question,
		Round:     s.round,
		MaxRounds: s.cfg.MaxRounds,
		Message:   "لمحة: " + s.question.HintText(),
	}
}

// Reveal discloses the accepted answers and forcibly advances the round
// without crediting any player.
func (s *Session) Reveal() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()

	if s.status != StatusActive {
		return errorResult(ErrInvalidState, "لا توجد لعبة نشطة")
	}
	if s.question == nil {
		return errorResult(ErrNoActiveQuestion, "لا يوجد سؤال حالي")
	}

	res := Result{
		Kind:    ResultQuestion,
		Message: "الاجابة الصحيحة: " + s.question.RevealText(),
	}
	res = s.advanceLocked(res)
	if res.GameOver && res.Kind != ResultError {
		res.Kind = ResultGameOver
	}
	return res
}

// Stop finishes the session early, from WAITING or ACTIVE, with final
// results computed from whatever scores exist so far.
func (s *Session) Stop() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()

	if s.status == StatusFinished {
		return errorResult(ErrInvalidState, "انتهت اللعبة بالفعل")
	}

	standings, bonuses := s.finishLocked()
	return Result{
		Kind:      ResultGameOver,
		GameOver:  true,
		Standings: standings,
		Bonuses:   bonuses,
		MaxRounds: s.cfg.MaxRounds,
	}
}

// Standings returns the session leaderboard: points descending, then
// correct answers descending, then cumulative answer time ascending.
func (s *Session) Standings() []Standing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.standingsLocked()
}

// advanceLocked applies the shared round-advance rule for the correct-
// answer, reveal, and timeout paths: bump the round, reset per-round
// state, then either finish the session or draw the next question.
func (s *Session) advanceLocked(res Result) Result {
	s.round++
	s.answered = make(map[string]struct{})
	s.hintUsed = false
	res.MaxRounds = s.cfg.MaxRounds

	if s.round > s.cfg.MaxRounds {
		standings, bonuses := s.finishLocked()
		res.GameOver = true
		res.Standings = standings
		res.Bonuses = bonuses
		res.Round = s.cfg.MaxRounds
		return res
	}

	if err := s.nextQuestionLocked(); err != nil {
		fail := s.genFailureLocked()
		// Keep the scoring part of the result; only the next question
		// is missing.
		fail.Points = res.Points
		if res.Kind == ResultCorrect {
			fail.Kind = ResultCorrect
		}
		return fail
	}

	res.Question = s.question
	res.Round = s.round
	return res
}

// nextQuestionLocked draws the next question from the source, guarding
// against panics and malformed questions so that a bad source never
// tears down the session.
func (s *Session) nextQuestionLocked() (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("session_id", s.id).Str("kind", s.kind).
				Interface("panic", r).Msg("question source panicked")
			s.question = nil
			s.genFailures++
			err = ErrQuestionGeneration
		}
	}()

	q, err := s.source.Next(s.round)
	if err != nil || q == nil || (len(q.Accepted) == 0 && q.Check == nil) {
		log.Error().Str("session_id", s.id).Str("kind", s.kind).Err(err).
			Int("round", s.round).Msg("question generation failed")
		s.question = nil
		s.genFailures++
		return ErrQuestionGeneration
	}

	s.genFailures = 0
	s.question = q
	s.questionStartedAt = s.now()
	return nil
}

// genFailureLocked converts a generation failure into a user-facing
// result. After repeated failures the session stops itself.
func (s *Session) genFailureLocked() Result {
	if s.genFailures >= maxGenFailures {
		log.Warn().Str("session_id", s.id).Str("kind", s.kind).
			Msg("stopping session after repeated generation failures")
		standings, bonuses := s.finishLocked()
		return Result{
			Kind:      ResultError,
			Err:       ErrQuestionGeneration,
			Message:   "هذه اللعبة غير متاحة حالياً",
			GameOver:  true,
			Standings: standings,
			Bonuses:   bonuses,
		}
	}
	return errorResult(ErrQuestionGeneration, "تعذر توليد السؤال، حاول مرة أخرى")
}

// finishLocked moves the session to FINISHED, applies perfect-game
// bonuses, and computes the final standings.
func (s *Session) finishLocked() ([]Standing, map[string]int) {
	s.status = StatusFinished
	s.question = nil

	var bonuses map[string]int
	for id, ps := range s.players {
		if ps.CorrectCount == s.cfg.MaxRounds && ps.HintsUsed == 0 {
			ps.Points += s.cfg.PerfectBonus
			if bonuses == nil {
				bonuses = make(map[string]int)
			}
			bonuses[id] = s.cfg.PerfectBonus
		}
	}
	return s.standingsLocked(), bonuses
}

func (s *Session) standingsLocked() []Standing {
	standings := make([]Standing, 0, len(s.players))
	for _, ps := range s.players {
		standings = append(standings, Standing{
			UserID:       ps.UserID,
			DisplayName:  ps.DisplayName,
			Points:       ps.Points,
			CorrectCount: ps.CorrectCount,
			AnswerTime:   ps.AnswerTime,
		})
	}
	sortStandings(standings)
	return standings
}
