package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Registry owns every live session, keyed by room id, and the map of
// registered game kinds. One session per room; creating a new one
// discards the previous session for that room.
//
// The registry mutex guards only structural map changes and counters.
// Each session serializes its own state behind its own lock, so two
// rooms never contend and the registry lock is never held during a
// session operation or any rendering.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	factories map[string]SourceFactory
	configs   map[string]SessionConfig

	createdAt        time.Time
	sessionsCreated  int
	sessionsFinished int
	usersSeen        map[string]struct{}
	perKind          map[string]int

	now func() time.Time
}

// RegistryStats is a snapshot of the registry's aggregate counters.
type RegistryStats struct {
	Live             int
	SessionsCreated  int
	SessionsFinished int
	DistinctUsers    int
	PerKind          map[string]int
	Uptime           time.Duration
}

// NewRegistry creates an empty registry. One instance is created at
// process start and handed to the transport layer; there is no package
// global.
func NewRegistry() *Registry {
	r := &Registry{
		sessions:  make(map[string]*Session),
		factories: make(map[string]SourceFactory),
		configs:   make(map[string]SessionConfig),
		usersSeen: make(map[string]struct{}),
		perKind:   make(map[string]int),
		now:       time.Now,
	}
	r.createdAt = r.now()
	return r
}

// RegisterKind registers a game kind with its source factory and the
// session policy new sessions of that kind use.
func (r *Registry) RegisterKind(kind string, factory SourceFactory, cfg SessionConfig) error {
	if kind == "" {
		return fmt.Errorf("game kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for kind %q", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
	r.configs[kind] = cfg
	return nil
}

// Kinds returns the registered game kinds.
func (r *Registry) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Create makes a new session for a room, discarding any previous one.
// Abandoning an active game is allowed, only logged.
func (r *Registry) Create(roomID, kind string, mode Mode) (*Session, error) {
	r.mu.Lock()
	factory, ok := r.factories[kind]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameKind, kind)
	}
	cfg := r.configs[kind]
	cfg.Mode = mode

	prev := r.sessions[roomID]
	sess := NewSession(uuid.NewString(), kind, factory(), cfg)
	r.sessions[roomID] = sess
	r.sessionsCreated++
	r.perKind[kind]++
	if prev != nil && prev.Status() == StatusFinished {
		r.sessionsFinished++
	}
	r.mu.Unlock()

	if prev != nil && prev.Status() == StatusActive {
		log.Warn().Str("room_id", roomID).Str("kind", prev.Kind()).
			Str("session_id", prev.ID()).Msg("abandoning active session")
	}
	log.Info().Str("room_id", roomID).Str("kind", kind).
		Str("session_id", sess.ID()).Msg("session created")

	return sess, nil
}

// Get returns the live session for a room, if any.
func (r *Registry) Get(roomID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[roomID]
	return s, ok
}

// Remove drops a room's session. Returns false when none existed.
func (r *Registry) Remove(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(roomID)
}

func (r *Registry) removeLocked(roomID string) bool {
	s, ok := r.sessions[roomID]
	if !ok {
		return false
	}
	if s.Status() == StatusFinished {
		r.sessionsFinished++
	}
	delete(r.sessions, roomID)
	return true
}

// Submit routes an answer to the room's session, records the user and
// removes the session once it finishes. The second return value is
// false when the room has no session.
func (r *Registry) Submit(roomID, userID, displayName, text string) (Result, bool) {
	r.mu.Lock()
	sess, ok := r.sessions[roomID]
	if ok {
		r.usersSeen[userID] = struct{}{}
	}
	r.mu.Unlock()
	if !ok {
		return Result{}, false
	}

	res := sess.Submit(userID, displayName, text)
	if res.GameOver {
		r.Remove(roomID)
	}
	return res, true
}

// Hint routes a hint request to the room's session.
func (r *Registry) Hint(roomID, userID, displayName string) (Result, bool) {
	sess, ok := r.Get(roomID)
	if !ok {
		return Result{}, false
	}
	return sess.Hint(userID, displayName), true
}

// Reveal routes a reveal request to the room's session.
func (r *Registry) Reveal(roomID string) (Result, bool) {
	sess, ok := r.Get(roomID)
	if !ok {
		return Result{}, false
	}
	res := sess.Reveal()
	if res.GameOver {
		r.Remove(roomID)
	}
	return res, true
}

// Stop finishes the room's session early and removes it.
func (r *Registry) Stop(roomID string) (Result, bool) {
	sess, ok := r.Get(roomID)
	if !ok {
		return Result{}, false
	}
	res := sess.Stop()
	r.Remove(roomID)
	return res, true
}

// CleanupExpired removes every session idle for longer than maxIdle and
// returns how many were removed. Safe to call concurrently with
// traffic; intended to be driven by a periodic sweep.
func (r *Registry) CleanupExpired(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var expired []string
	for roomID, sess := range r.sessions {
		if sess.LastActivity().Before(cutoff) {
			expired = append(expired, roomID)
		}
	}
	for _, roomID := range expired {
		r.removeLocked(roomID)
	}
	stats := r.statsLocked()
	r.mu.Unlock()

	if len(expired) > 0 {
		log.Info().Int("removed", len(expired)).Int("live", stats.Live).
			Int("created_total", stats.SessionsCreated).
			Msg("expired idle sessions")
	}
	return len(expired)
}

// Leaderboard aggregates player scores across all currently live
// sessions, summing points and correct answers per user, ordered by
// total points descending.
func (r *Registry) Leaderboard(limit int) []Standing {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	totals := make(map[string]*Standing)
	for _, s := range sessions {
		for _, st := range s.Standings() {
			agg, ok := totals[st.UserID]
			if !ok {
				agg = &Standing{UserID: st.UserID, DisplayName: st.DisplayName}
				totals[st.UserID] = agg
			}
			agg.Points += st.Points
			agg.CorrectCount += st.CorrectCount
			agg.AnswerTime += st.AnswerTime
		}
	}

	board := make([]Standing, 0, len(totals))
	for _, st := range totals {
		board = append(board, *st)
	}
	sortStandings(board)
	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board
}

// Stats returns a snapshot of the aggregate counters.
func (r *Registry) Stats() RegistryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statsLocked()
}

func (r *Registry) statsLocked() RegistryStats {
	perKind := make(map[string]int, len(r.perKind))
	for k, v := range r.perKind {
		perKind[k] = v
	}
	return RegistryStats{
		Live:             len(r.sessions),
		SessionsCreated:  r.sessionsCreated,
		SessionsFinished: r.sessionsFinished,
		DistinctUsers:    len(r.usersSeen),
		PerKind:          perKind,
		Uptime:           r.now().Sub(r.createdAt),
	}
}

// sortStandings orders by points desc, correct answers desc, then
// cumulative answer time asc (speed breaks ties).
func sortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].CorrectCount != standings[j].CorrectCount {
			return standings[i].CorrectCount > standings[j].CorrectCount
		}
		return standings[i].AnswerTime < standings[j].AnswerTime
	})
}
