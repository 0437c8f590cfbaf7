package game

import (
	"fmt"
	"time"

	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/types"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
)

// ErrInvalidSnapshot is returned when a snapshot cannot be restored into a game.
var ErrInvalidSnapshot = models.ErrInvalidSnapshot

// Snapshot captures the game between turns.
func (g *Game) Snapshot() *models.GameSnapshot {
	players := make([]models.PlayerSnapshot, 0, len(g.players))
	for _, p := range g.players {
		players = append(players, PlayerSnapshotFromState(p, g.board.OwnedBy(p.ID)))
	}
	return &models.GameSnapshot{
		Players:         players,
		CurrentPlayerID: g.CurrentPlayer().ID,
		CurrentRound:    g.round,
	}
}

// SavedGame wraps the current snapshot for the repository.
func (g *Game) SavedGame() *models.SavedGame {
	return &models.SavedGame{
		ID:           g.id,
		Name:         g.name,
		CurrentRound: g.round,
		Snapshot:     g.Snapshot(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func PlayerSnapshotFromState(p *types.Player, owned []*board.Square) models.PlayerSnapshot {
	properties := make([]int, 0, len(owned))
	for _, sq := range owned {
		properties = append(properties, sq.Position)
	}
	return models.PlayerSnapshot{
		Token:                p.Token,
		PlayerID:             p.ID,
		Balance:              p.Balance,
		IsJailed:             p.IsJailed,
		SquarePosition:       p.Position,
		MoveCountSinceJail:   p.JailTurns,
		JailBailMode:         p.JailStrategy == types.JailStrategyBail,
		JailFeelingLuckyMode: p.JailStrategy == types.JailStrategyFeelingLucky,
		HasExited:            p.HasExited,
		Properties:           properties,
	}
}

func PlayerStateFromSnapshot(s models.PlayerSnapshot) (*types.Player, error) {
	if s.JailBailMode && s.JailFeelingLuckyMode {
		return nil, fmt.Errorf("%w: %s has two jail strategies", ErrInvalidSnapshot, s.Token)
	}
	p := &types.Player{
		ID:        s.PlayerID,
		Token:     s.Token,
		Balance:   s.Balance,
		Position:  s.SquarePosition,
		IsJailed:  s.IsJailed,
		JailTurns: s.MoveCountSinceJail,
		HasExited: s.HasExited,
	}
	switch {
	case s.JailBailMode:
		p.JailStrategy = types.JailStrategyBail
	case s.JailFeelingLuckyMode:
		p.JailStrategy = types.JailStrategyFeelingLucky
	}
	return p, nil
}

// FromSnapshot restores a game saved with Snapshot. opts.PlayerCount is ignored.
func FromSnapshot(opts NewGameOptions, snapshot *models.GameSnapshot) (*Game, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: snapshot is empty", ErrInvalidSnapshot)
	}
	if err := validateSnapshot(opts.Rules, snapshot); err != nil {
		return nil, err
	}

	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	for _, sq := range g.board.Squares() {
		sq.Disown()
	}

	for i, ps := range snapshot.Players {
		if ps.PlayerID != i {
			return nil, fmt.Errorf("%w: player %d has id %d", ErrInvalidSnapshot, i, ps.PlayerID)
		}
		if _, ok := g.board.Get(ps.SquarePosition); !ok {
			return nil, fmt.Errorf("%w: %s is off the board at %d", ErrInvalidSnapshot, ps.Token, ps.SquarePosition)
		}
		if ps.HasExited && len(ps.Properties) > 0 {
			return nil, fmt.Errorf("%w: %s has exited but owns properties", ErrInvalidSnapshot, ps.Token)
		}

		p, err := PlayerStateFromSnapshot(ps)
		if err != nil {
			return nil, err
		}
		if err := validateJailState(opts.Rules, p); err != nil {
			return nil, err
		}
		for _, position := range ps.Properties {
			sq, ok := g.board.Get(position)
			if !ok || !sq.IsProperty() {
				return nil, fmt.Errorf("%w: %s owns %d which is not a property", ErrInvalidSnapshot, ps.Token, position)
			}
			if _, owned := sq.Owner(); owned {
				return nil, fmt.Errorf("%w: %s is owned twice", ErrInvalidSnapshot, sq)
			}
			if err := sq.SetOwner(p.ID); err != nil {
				return nil, err
			}
		}
		g.players = append(g.players, p)
	}

	g.round = snapshot.CurrentRound
	g.currentIndex = snapshot.CurrentPlayerID
	return g, nil
}

func validateSnapshot(rules config.Rules, snapshot *models.GameSnapshot) error {
	if err := rules.ValidatePlayerCount(len(snapshot.Players)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snapshot.CurrentRound < 1 {
		return fmt.Errorf("%w: round %d", ErrInvalidSnapshot, snapshot.CurrentRound)
	}
	if snapshot.CurrentPlayerID < 0 || snapshot.CurrentPlayerID >= len(snapshot.Players) {
		return fmt.Errorf("%w: no player with id %d", ErrInvalidSnapshot, snapshot.CurrentPlayerID)
	}
	return nil
}

// validateJailState rejects jail state the engine cannot reach. A jailed
// player stands on the jail square, except one who declined bail and has
// already moved once.
func validateJailState(rules config.Rules, p *types.Player) error {
	if !p.IsJailed {
		if p.JailStrategy != types.JailStrategyUnset || p.JailTurns != 0 {
			return fmt.Errorf("%w: %s is free but has jail state", ErrInvalidSnapshot, p.Token)
		}
		return nil
	}

	maxTurns := 0
	switch p.JailStrategy {
	case types.JailStrategyFeelingLucky:
		maxTurns = rules.MaxJailRollAttempts - 1
	case types.JailStrategyBail:
		maxTurns = 1
	}
	if p.JailTurns < 0 || p.JailTurns > maxTurns {
		return fmt.Errorf("%w: %s has %d jail turns with strategy %s", ErrInvalidSnapshot, p.Token, p.JailTurns, p.JailStrategy)
	}

	movedOnBail := p.JailStrategy == types.JailStrategyBail && p.JailTurns == 1
	if p.Position != rules.JailPosition && !movedOnBail {
		return fmt.Errorf("%w: %s is jailed at %d", ErrInvalidSnapshot, p.Token, p.Position)
	}
	return nil
}
