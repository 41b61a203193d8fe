package game

import (
	"math/rand"
	"time"
)

// Rand is the single source of randomness for a match: coin flips and
// deck shuffles.
type Rand interface {
	Heads() bool
	Shuffle(n int, swap func(i, j int))
}

// SeededRand is a fair coin backed by math/rand.
type SeededRand struct {
	r *rand.Rand
}

// NewSeededRand returns a reproducible source. A zero seed uses the clock.
func NewSeededRand(seed int64) *SeededRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededRand) Heads() bool {
	return s.r.Intn(2) == 0
}

func (s *SeededRand) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Intn exposes the generator for deck building.
func (s *SeededRand) Intn(n int) int {
	return s.r.Intn(n)
}

// ScriptedRand replays a fixed sequence of flips and never reorders decks.
// Once the script runs out every flip is Fallback.
type ScriptedRand struct {
	Flips    []bool
	Fallback bool
	pos      int
}

func NewScriptedRand(flips ...bool) *ScriptedRand {
	return &ScriptedRand{Flips: flips}
}

func (s *ScriptedRand) Heads() bool {
	if s.pos >= len(s.Flips) {
		return s.Fallback
	}
	f := s.Flips[s.pos]
	s.pos++
	return f
}

func (s *ScriptedRand) Shuffle(n int, swap func(i, j int)) {}

// Used returns how many scripted flips were consumed.
func (s *ScriptedRand) Used() int {
	return s.pos
}
