package game

import "math/rand"

// QuestionSource produces the questions for a session, one per round.
// Sources may keep internal state (used-item sets, the previous word of
// a chain); that state belongs to the source, not the session.
//
// A source must be effectively infinite: a finite pool reshuffles and
// starts over once exhausted rather than failing. Repeats after
// exhaustion are acceptable.
type QuestionSource interface {
	// Next returns the question for the given round (1-based). The
	// round number lets procedural sources escalate difficulty.
	Next(round int) (*Question, error)
}

// SourceFactory creates a fresh source for a new session, so that
// per-session source state never leaks between rooms.
type SourceFactory func() QuestionSource

// Cycle iterates the indices 0..n-1 in shuffled order and reshuffles
// when exhausted. It is the building block for every fixed-pool source.
type Cycle struct {
	rng   *rand.Rand
	order []int
	pos   int
}

// NewCycle creates a cycle over n items using the given generator.
func NewCycle(rng *rand.Rand, n int) *Cycle {
	c := &Cycle{rng: rng, order: make([]int, n)}
	for i := range c.order {
		c.order[i] = i
	}
	c.shuffle()
	return c
}

// Next returns the next index, reshuffling once all n have been seen.
func (c *Cycle) Next() int {
	if c.pos >= len(c.order) {
		c.shuffle()
	}
	i := c.order[c.pos]
	c.pos++
	return i
}

func (c *Cycle) shuffle() {
	c.rng.Shuffle(len(c.order), func(i, j int) {
		c.order[i], c.order[j] = c.order[j], c.order[i]
	})
	c.pos = 0
}
