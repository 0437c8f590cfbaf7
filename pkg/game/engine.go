package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/dice"
	"github.com/cbodonnell/monopoly/pkg/game/types"
	"github.com/cbodonnell/monopoly/pkg/log"
)

var (
	// ErrOwnerNotFound is returned when a property's owner is not in the roster.
	ErrOwnerNotFound = errors.New("property owner not found")
	// ErrPlayerExited is returned when an exited player is asked to take a turn.
	ErrPlayerExited = errors.New("player has exited the game")
	// ErrInvalidSteps is returned when a move is not at least one square.
	ErrInvalidSteps = errors.New("steps must be positive")
)

// Roster looks up players by id.
type Roster interface {
	PlayerByID(id int) (*types.Player, bool)
}

// Engine resolves turns for individual players: dice, movement, square
// effects and the jail state machine. It holds no turn order of its own.
type Engine struct {
	board    *board.Board
	dice     dice.Roller
	rng      *rand.Rand
	rules    config.Rules
	decider  Decider
	notifier Notifier
	roster   Roster
}

// NewEngineOptions contains options for creating a new Engine.
type NewEngineOptions struct {
	Board *board.Board
	Dice  dice.Roller
	// Rand drives chance draws
	Rand     *rand.Rand
	Rules    config.Rules
	Decider  Decider
	Notifier Notifier
	Roster   Roster
}

func NewEngine(opts NewEngineOptions) *Engine {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		board:    opts.Board,
		dice:     opts.Dice,
		rng:      opts.Rand,
		rules:    opts.Rules,
		decider:  opts.Decider,
		notifier: notifier,
		roster:   opts.Roster,
	}
}

func (e *Engine) Board() *board.Board {
	return e.board
}

// PlayTurn plays one turn for p.
func (e *Engine) PlayTurn(p *types.Player) error {
	if p.HasExited {
		return fmt.Errorf("%w: %s", ErrPlayerExited, p.Token)
	}
	e.notify(p, types.EventTypeTurnStarted, 0, "%s's turn", p.Token)

	if !p.IsJailed {
		roll := e.roll(p)
		return e.MoveAndLand(p, roll.Total())
	}

	if p.JailStrategy == types.JailStrategyUnset {
		e.selectJailStrategy(p)
	}
	if p.JailStrategy == types.JailStrategyFeelingLucky {
		return e.playFeelingLucky(p)
	}
	return e.playBail(p)
}

// MoveAndLand moves p forward by steps, applying the pass-through effect of
// every intermediate square and the landing effect of the destination.
func (e *Engine) MoveAndLand(p *types.Player, steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}
	start := p.Position
	for i := 1; i < steps; i++ {
		sq, ok := e.board.Get(e.board.Wrap(start, i))
		if !ok {
			return fmt.Errorf("no square at position %d", e.board.Wrap(start, i))
		}
		if err := e.PassThrough(p, sq); err != nil {
			return err
		}
	}

	destination := e.board.Wrap(start, steps)
	sq, ok := e.board.Get(destination)
	if !ok {
		return fmt.Errorf("no square at position %d", destination)
	}
	p.Position = destination
	return e.Land(p, sq)
}

// PassThrough applies the effect of moving through sq without stopping on it.
func (e *Engine) PassThrough(p *types.Player, sq *board.Square) error {
	e.notifyAt(p, types.EventTypePassedSquare, sq.Position, 0, "%s passes through %s", p.Token, sq)
	if effect, ok := passEffects[sq.Kind]; ok {
		return effect(e, sq, p)
	}
	return nil
}

// Land applies the effect of sq on a player who has stopped on it.
func (e *Engine) Land(p *types.Player, sq *board.Square) error {
	e.notifyAt(p, types.EventTypeLandedOnSquare, sq.Position, 0, "%s landed on %s", p.Token, describeSquare(sq))
	if effect, ok := landEffects[sq.Kind]; ok {
		return effect(e, sq, p)
	}
	return nil
}

func (e *Engine) roll(p *types.Player) dice.Roll {
	roll := e.dice.Roll()
	e.notify(p, types.EventTypeDiceRolled, roll.Total(), "%s rolled %s", p.Token, roll)
	return roll
}

// ask puts a prompt to the decider and falls back when the answer is not one
// of the presented options.
func (e *Engine) ask(prompt Prompt) int {
	choice := e.decider.Choose(prompt)
	if prompt.Valid(choice) {
		return choice
	}
	log.Debug("Invalid %s choice %d, falling back to %d", prompt.Kind, choice, prompt.Fallback)
	var playerID int
	var token string
	if prompt.Player != nil {
		playerID = prompt.Player.ID
		token = prompt.Player.Token
	}
	e.notifier.Notify(types.Event{
		Type:     types.EventTypeInvalidChoice,
		PlayerID: playerID,
		Token:    token,
		Amount:   choice,
		Message:  fmt.Sprintf("Invalid choice %d, defaulting to %d", choice, prompt.Fallback),
	})
	return prompt.Fallback
}

func (e *Engine) notify(p *types.Player, t types.EventType, amount int, format string, args ...interface{}) {
	e.notifyAt(p, t, p.Position, amount, format, args...)
}

func (e *Engine) notifyAt(p *types.Player, t types.EventType, position int, amount int, format string, args ...interface{}) {
	e.notifier.Notify(types.Event{
		Type:     t,
		PlayerID: p.ID,
		Token:    p.Token,
		Position: position,
		Amount:   amount,
		Balance:  p.Balance,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (e *Engine) notifyBalance(p *types.Player) {
	e.notify(p, types.EventTypeBalance, 0, "%s's balance is now %s", p.Token, e.money(p.Balance))
}

func (e *Engine) money(amount int) string {
	return fmt.Sprintf("%s %d", e.rules.Currency, amount)
}

func describeSquare(sq *board.Square) string {
	if sq.IsProperty() {
		return fmt.Sprintf("%s, %s", sq, sq.Name)
	}
	return sq.String()
}
