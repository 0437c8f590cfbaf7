// Package dice implements the pair of dice rolled each turn.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrEmptyPool indicates a die was given no faces to draw from.
var ErrEmptyPool = errors.New("die pool must contain at least one face")

// Roll is the result of rolling both dice once.
type Roll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// Total returns the sum of both faces.
func (r Roll) Total() int {
	return r.Die1 + r.Die2
}

// IsDouble reports whether both dice show the same face.
func (r Roll) IsDouble() bool {
	return r.Die1 == r.Die2
}

func (r Roll) String() string {
	return fmt.Sprintf("Die 1: %d, Die 2: %d", r.Die1, r.Die2)
}

// Roller produces a new independent Roll on every call.
type Roller interface {
	Roll() Roll
}

// Pair is a Roller drawing each die uniformly from its own pool of faces.
type Pair struct {
	pool1 []int
	pool2 []int
	rng   *rand.Rand
}

// NewPair creates a pair of dice sharing the same pool of faces.
func NewPair(pool []int, rng *rand.Rand) (*Pair, error) {
	return newPair(pool, pool, rng)
}

// NewFixedPair creates a pair whose dice always show die1 and die2.
func NewFixedPair(die1, die2 int) *Pair {
	// a single-face pool never consults the generator
	p, _ := newPair([]int{die1}, []int{die2}, nil)
	return p
}

func newPair(pool1, pool2 []int, rng *rand.Rand) (*Pair, error) {
	if len(pool1) == 0 || len(pool2) == 0 {
		return nil, ErrEmptyPool
	}
	if rng == nil && (len(pool1) > 1 || len(pool2) > 1) {
		return nil, fmt.Errorf("a random source is required for a pool of %d faces", max(len(pool1), len(pool2)))
	}
	return &Pair{
		pool1: append([]int(nil), pool1...),
		pool2: append([]int(nil), pool2...),
		rng:   rng,
	}, nil
}

// Roll rolls both dice.
func (p *Pair) Roll() Roll {
	return Roll{
		Die1: p.draw(p.pool1),
		Die2: p.draw(p.pool2),
	}
}

func (p *Pair) draw(pool []int) int {
	if len(pool) == 1 {
		return pool[0]
	}
	return pool[p.rng.Intn(len(pool))]
}

// Sequence is a Roller that replays a fixed list of rolls, then repeats the last one.
type Sequence struct {
	rolls []Roll
	next  int
}

// NewSequence creates a Roller returning rolls in order.
func NewSequence(rolls ...Roll) *Sequence {
	return &Sequence{rolls: rolls}
}

func (s *Sequence) Roll() Roll {
	if len(s.rolls) == 0 {
		return Roll{}
	}
	r := s.rolls[s.next]
	if s.next < len(s.rolls)-1 {
		s.next++
	}
	return r
}
