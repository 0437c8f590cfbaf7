package game

import (
	"math/rand"

	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/dice"
	"github.com/cbodonnell/monopoly/pkg/game/types"
)

// scriptedDecider answers each prompt kind from a queue of answers and falls
// back to a fixed answer per kind once the queue is empty. Every prompt is recorded.
type scriptedDecider struct {
	script  map[PromptKind][]int
	always  map[PromptKind]int
	prompts []Prompt
}

func newScriptedDecider(always map[PromptKind]int) *scriptedDecider {
	if always == nil {
		always = map[PromptKind]int{}
	}
	return &scriptedDecider{
		script: map[PromptKind][]int{},
		always: always,
	}
}

func (d *scriptedDecider) then(kind PromptKind, answers ...int) *scriptedDecider {
	d.script[kind] = append(d.script[kind], answers...)
	return d
}

func (d *scriptedDecider) Choose(prompt Prompt) int {
	d.prompts = append(d.prompts, prompt)
	if answers := d.script[prompt.Kind]; len(answers) > 0 {
		d.script[prompt.Kind] = answers[1:]
		return answers[0]
	}
	return d.always[prompt.Kind]
}

func (d *scriptedDecider) promptsOf(kind PromptKind) []Prompt {
	var prompts []Prompt
	for _, p := range d.prompts {
		if p.Kind == kind {
			prompts = append(prompts, p)
		}
	}
	return prompts
}

type eventRecorder struct {
	events []types.Event
}

func (r *eventRecorder) Notify(event types.Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(t types.EventType) []types.Event {
	var events []types.Event
	for _, e := range r.events {
		if e.Type == t {
			events = append(events, e)
		}
	}
	return events
}

func (r *eventRecorder) positions(t types.EventType) []int {
	var positions []int
	for _, e := range r.ofType(t) {
		positions = append(positions, e.Position)
	}
	return positions
}

type roster []*types.Player

func (r roster) PlayerByID(id int) (*types.Player, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

type engineFixture struct {
	engine   *Engine
	board    *board.Board
	rules    config.Rules
	players  roster
	decider  *scriptedDecider
	recorder *eventRecorder
}

func newEngineFixture(roller dice.Roller, decider *scriptedDecider, playerCount int) *engineFixture {
	rules := config.Default().Rules
	b := board.NewStandard()
	if decider == nil {
		decider = newScriptedDecider(map[PromptKind]int{PromptKindBuyProperty: OptionNo})
	}
	players := make(roster, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		players = append(players, types.NewPlayer(i, tokenFor(i), rules.Salary))
	}
	recorder := &eventRecorder{}
	engine := NewEngine(NewEngineOptions{
		Board:    b,
		Dice:     roller,
		Rand:     rand.New(rand.NewSource(1)),
		Rules:    rules,
		Decider:  decider,
		Notifier: recorder,
		Roster:   players,
	})
	return &engineFixture{
		engine:   engine,
		board:    b,
		rules:    rules,
		players:  players,
		decider:  decider,
		recorder: recorder,
	}
}

func (f *engineFixture) square(position int) *board.Square {
	sq, ok := f.board.Get(position)
	if !ok {
		panic("no square")
	}
	return sq
}

func tokenFor(i int) string {
	return []string{"Player 1", "Player 2", "Player 3", "Player 4", "Player 5", "Player 6"}[i]
}

func roll(d1, d2 int) dice.Roll {
	return dice.Roll{Die1: d1, Die2: d2}
}
