package game

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/dice"
	"github.com/cbodonnell/monopoly/pkg/game/types"
	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/random"
	"github.com/cbodonnell/monopoly/pkg/workers"
	"github.com/google/uuid"
)

// Outcome is how a call to Run ended.
type Outcome uint8

const (
	// OutcomeFinished means the game reached a termination condition
	OutcomeFinished Outcome = iota
	// OutcomeSaved means a player chose to save and exit
	OutcomeSaved
	// OutcomeInterrupted means the context was cancelled between turns
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeSaved:
		return "saved"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Game owns the player roster and turn order and drives the Engine until the
// game is over.
type Game struct {
	id           string
	name         string
	rules        config.Rules
	board        *board.Board
	engine       *Engine
	players      []*types.Player
	round        int
	currentIndex int
	decider      Decider
	notifier     Notifier
	saveChan     chan<- workers.SaveGameRequest
}

// NewGameOptions contains options for creating a new Game.
type NewGameOptions struct {
	// ID identifies the game in the repository. A new id is generated when empty.
	ID   string
	Name string
	// PlayerCount is ignored when restoring from a snapshot
	PlayerCount int
	Rules       config.Rules
	// Board defaults to the standard board
	Board *board.Board
	// Dice defaults to a pair drawing from Rules.DiePool
	Dice dice.Roller
	// Rand drives dice and chance draws. A randomly seeded source is used when nil.
	Rand *rand.Rand
	// Decider defaults to the configured default answers
	Decider  Decider
	Notifier Notifier
	// SaveChan receives a save request at the end of every round when set
	SaveChan chan<- workers.SaveGameRequest
}

// NewGame creates a game with PlayerCount players named "Player 1", "Player 2"
// and so on, each starting on Go with one salary.
func NewGame(opts NewGameOptions) (*Game, error) {
	if err := opts.Rules.ValidatePlayerCount(opts.PlayerCount); err != nil {
		return nil, err
	}

	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	for i := 0; i < opts.PlayerCount; i++ {
		g.players = append(g.players, types.NewPlayer(i, fmt.Sprintf("Player %d", i+1), opts.Rules.Salary))
	}
	return g, nil
}

func newGame(opts NewGameOptions) (*Game, error) {
	b := opts.Board
	if b == nil {
		b = board.NewStandard()
	}

	rng := opts.Rand
	if rng == nil {
		r, seed, err := random.NewRand(0)
		if err != nil {
			return nil, fmt.Errorf("failed to seed random source: %v", err)
		}
		log.Debug("Seeded game with %d", seed)
		rng = r
	}

	roller := opts.Dice
	if roller == nil {
		pair, err := dice.NewPair(opts.Rules.DiePool, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create dice: %v", err)
		}
		roller = pair
	}

	decider := opts.Decider
	if decider == nil {
		decider = NewDefaultDecider(config.Default().Defaults)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	g := &Game{
		id:       id,
		name:     opts.Name,
		rules:    opts.Rules,
		board:    b,
		round:    1,
		decider:  decider,
		notifier: notifier,
		saveChan: opts.SaveChan,
	}
	g.engine = NewEngine(NewEngineOptions{
		Board:    b,
		Dice:     roller,
		Rand:     rng,
		Rules:    opts.Rules,
		Decider:  decider,
		Notifier: NotifierFunc(g.notify),
		Roster:   g,
	})
	return g, nil
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Name() string {
	return g.name
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Engine() *Engine {
	return g.engine
}

func (g *Game) Round() int {
	return g.round
}

// Players returns the roster in turn order, including exited players.
func (g *Game) Players() []*types.Player {
	players := make([]*types.Player, len(g.players))
	copy(players, g.players)
	return players
}

// CurrentPlayer returns the player whose turn is next.
func (g *Game) CurrentPlayer() *types.Player {
	return g.players[g.currentIndex]
}

func (g *Game) PlayerByID(id int) (*types.Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) PlayerByToken(token string) (*types.Player, bool) {
	for _, p := range g.players {
		if p.Token == token {
			return p, true
		}
	}
	return nil, false
}

// ActivePlayers returns the players who have not exited.
func (g *Game) ActivePlayers() []*types.Player {
	var active []*types.Player
	for _, p := range g.players {
		if !p.HasExited {
			active = append(active, p)
		}
	}
	return active
}

// IsOver reports whether at most one player remains or the round limit has passed.
func (g *Game) IsOver() bool {
	return len(g.ActivePlayers()) <= 1 || g.round > g.rules.MaxRounds
}

// Winners returns the active players sharing the highest balance, in roster order.
func (g *Game) Winners() []*types.Player {
	active := g.ActivePlayers()
	if len(active) == 0 {
		return nil
	}
	highest := active[0].Balance
	for _, p := range active[1:] {
		if p.Balance > highest {
			highest = p.Balance
		}
	}
	var winners []*types.Player
	for _, p := range active {
		if p.Balance == highest {
			winners = append(winners, p)
		}
	}
	return winners
}

// Standings returns the players ordered by balance, highest first, with
// exited players last.
func (g *Game) Standings() []*types.Player {
	standings := g.Players()
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].HasExited != standings[j].HasExited {
			return !standings[i].HasExited
		}
		return standings[i].Balance > standings[j].Balance
	})
	return standings
}

// PlayTurn plays the current player's turn, exits them if they went bankrupt
// and passes the turn on. Errors from the engine are fatal to the game and
// leave the turn order unchanged.
func (g *Game) PlayTurn(ctx context.Context) error {
	player := g.CurrentPlayer()
	if !player.HasExited {
		if err := g.engine.PlayTurn(player); err != nil {
			return fmt.Errorf("failed to play turn for %s: %w", player.Token, err)
		}
		if player.IsBankrupt() {
			g.exitPlayer(player)
		}
	}
	g.advance(ctx)
	return nil
}

func (g *Game) exitPlayer(p *types.Player) {
	disowned := p.ExitGame(g.board)
	g.notify(types.Event{
		Type:     types.EventTypePlayerExited,
		PlayerID: p.ID,
		Token:    p.Token,
		Position: p.Position,
		Balance:  p.Balance,
		Message:  fmt.Sprintf("%s is bankrupt and has left the game", p.Token),
	})
	for _, sq := range disowned {
		g.notify(types.Event{
			Type:     types.EventTypePropertyDisowned,
			PlayerID: p.ID,
			Token:    p.Token,
			Position: sq.Position,
			Balance:  p.Balance,
			Message:  fmt.Sprintf("%s is for sale again", sq.Name),
		})
	}
}

// advance moves the turn to the next player who has not exited. Wrapping
// around the roster ends the round.
func (g *Game) advance(ctx context.Context) {
	for range g.players {
		g.currentIndex++
		if g.currentIndex == len(g.players) {
			g.currentIndex = 0
			g.endRound(ctx)
		}
		if !g.players[g.currentIndex].HasExited {
			return
		}
	}
}

func (g *Game) endRound(ctx context.Context) {
	g.round++
	g.requestSave(ctx)
	if !g.IsOver() {
		g.notify(types.Event{
			Type:    types.EventTypeRoundStarted,
			Message: fmt.Sprintf("Current round: %d", g.round),
		})
	}
}

func (g *Game) requestSave(ctx context.Context) {
	if g.saveChan == nil {
		return
	}
	req := workers.SaveGameRequest{Game: g.SavedGame()}
	select {
	case g.saveChan <- req:
	case <-ctx.Done():
	default:
		log.Warn("Save queue is full, skipping autosave of game %s at round %d", g.id, g.round)
	}
}

// Run plays turns until the game is over or the current player chooses to
// save and exit. Cancelling ctx stops the game between turns.
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	if !g.IsOver() {
		g.notify(types.Event{
			Type:    types.EventTypeRoundStarted,
			Message: fmt.Sprintf("Current round: %d", g.round),
		})
	}

	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return OutcomeInterrupted, err
		}

		player := g.CurrentPlayer()
		if player.HasExited {
			g.advance(ctx)
			continue
		}

		action := g.engine.ask(Prompt{
			Kind:     PromptKindTurnAction,
			Player:   player.Copy(),
			Question: fmt.Sprintf("%s, what would you like to do?", player.Token),
			Options:  []string{"Play your turn", "Save and exit"},
			Fallback: OptionSaveAndExit,
		})
		if action == OptionSaveAndExit {
			return OutcomeSaved, nil
		}

		if err := g.PlayTurn(ctx); err != nil {
			return OutcomeFinished, err
		}
	}

	g.announceResult()
	return OutcomeFinished, nil
}

func (g *Game) announceResult() {
	g.notify(types.Event{
		Type:    types.EventTypeGameOver,
		Message: "Game over",
	})
	for _, p := range g.Winners() {
		g.notify(types.Event{
			Type:     types.EventTypeWinner,
			PlayerID: p.ID,
			Token:    p.Token,
			Position: p.Position,
			Balance:  p.Balance,
			Message:  fmt.Sprintf("%s wins with %s %d", p.Token, g.rules.Currency, p.Balance),
		})
	}
}

func (g *Game) notify(event types.Event) {
	event.Round = g.round
	g.notifier.Notify(event)
}
