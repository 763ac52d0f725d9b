// Package mathgen procedurally generates arithmetic questions with
// difficulty scaling by round. Division problems are always exact: the
// divisor and quotient are drawn first and multiplied to form the
// dividend.
package mathgen

import (
	"fmt"
	"math/rand"

	"line-trivia-bot/internal/game"
)

// Op is an arithmetic operator.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "×"
	OpDiv Op = "÷"
)

// Problem is one generated arithmetic question.
type Problem struct {
	A, B   int
	Op     Op
	Answer int
}

// Config holds generation settings.
type Config struct {
	Seed int64 // 0 = time-seeded
}

// Source generates arithmetic problems.
type Source struct {
	rng *rand.Rand
}

// New creates an arithmetic source.
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Next generates the question for a round.
func (s *Source) Next(round int) (*game.Question, error) {
	p := Generate(s.rng, round)
	return &game.Question{
		Prompt:     fmt.Sprintf("كم ناتج %d %s %d؟", p.A, p.Op, p.B),
		Accepted:   []string{fmt.Sprintf("%d", p.Answer)},
		Difficulty: round,
		Strategy:   game.MatchExact,
	}, nil
}

// Generate produces one problem. Operand ranges grow with the round
// number so later rounds are harder.
func Generate(rng *rand.Rand, round int) Problem {
	if round < 1 {
		round = 1
	}
	limit := 10 * round

	switch Op([]Op{OpAdd, OpSub, OpMul, OpDiv}[rng.Intn(4)]) {
	case OpSub:
		a := rng.Intn(limit) + 2
		b := rng.Intn(a) + 1 // keep results non-negative
		return Problem{A: a, B: b, Op: OpSub, Answer: a - b}

	case OpMul:
		a := rng.Intn(9+round) + 2
		b := rng.Intn(9) + 2
		return Problem{A: a, B: b, Op: OpMul, Answer: a * b}

	case OpDiv:
		b := rng.Intn(8) + 2
		q := rng.Intn(9+round) + 2
		return Problem{A: b * q, B: b, Op: OpDiv, Answer: q}

	default:
		a := rng.Intn(limit) + 1
		b := rng.Intn(limit) + 1
		return Problem{A: a, B: b, Op: OpAdd, Answer: a + b}
	}
}
