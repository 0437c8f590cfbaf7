package types

import (
	"math/rand"

	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/constants"
)

// JailStrategy is how a jailed player has chosen to get out of jail.
type JailStrategy uint8

const (
	JailStrategyUnset JailStrategy = iota
	// JailStrategyFeelingLucky rolls for a double on each of the next turns
	JailStrategyFeelingLucky
	// JailStrategyBail pays the fine within the next two turns
	JailStrategyBail
)

func (s JailStrategy) String() string {
	switch s {
	case JailStrategyUnset:
		return "unset"
	case JailStrategyFeelingLucky:
		return "feeling-lucky"
	case JailStrategyBail:
		return "bail"
	default:
		return "unknown"
	}
}

// Player is the mutable state of one player. Balance may go negative during a
// turn; the game checks for bankruptcy once the turn is complete.
type Player struct {
	ID       int
	Token    string
	Balance  int
	Position int

	IsJailed bool
	// JailTurns counts the turns taken since being jailed. It is reset on jailing and release.
	JailTurns    int
	JailStrategy JailStrategy

	HasExited bool
}

// NewPlayer creates a player standing on Go with the given balance.
func NewPlayer(id int, token string, balance int) *Player {
	return &Player{
		ID:       id,
		Token:    token,
		Balance:  balance,
		Position: 1,
	}
}

// Copy returns a copy of the player state
func (p *Player) Copy() *Player {
	c := *p
	return &c
}

func (p *Player) CollectSalary(salary int) {
	p.Balance += salary
}

// PayTax deducts ten percent of the balance, rounded down to a multiple of 10,
// and returns the amount deducted. No tax is due on a balance below 100.
func (p *Player) PayTax() int {
	tax := 0
	if p.Balance > 0 {
		raw := p.Balance / 10
		tax = raw - raw%10
	}
	p.Balance -= tax
	return tax
}

// GoToJail jails the player on the jail square and clears any previous jail strategy.
func (p *Player) GoToJail(jailPosition int) {
	p.IsJailed = true
	p.JailTurns = 0
	p.JailStrategy = JailStrategyUnset
	p.Position = jailPosition
}

// Release frees the player from jail. The position is left unchanged.
func (p *Player) Release() {
	p.IsJailed = false
	p.JailTurns = 0
	p.JailStrategy = JailStrategyUnset
}

func (p *Player) PayFine(fine int) {
	p.Balance -= fine
}

// GainFromChance credits a random multiple of 10 between 10 and maxAmount.
func (p *Player) GainFromChance(rng *rand.Rand, maxAmount int) int {
	amount := chanceAmount(rng, maxAmount)
	p.Balance += amount
	return amount
}

// LoseToChance debits a random multiple of 10 between 10 and maxAmount.
func (p *Player) LoseToChance(rng *rand.Rand, maxAmount int) int {
	amount := chanceAmount(rng, maxAmount)
	p.Balance -= amount
	return amount
}

func chanceAmount(rng *rand.Rand, maxAmount int) int {
	steps := maxAmount / constants.ChanceStep
	if steps < 1 {
		steps = 1
	}
	return (rng.Intn(steps) + 1) * constants.ChanceStep
}

// PayRent moves rent from this player to owner as one step.
func (p *Player) PayRent(rent int, owner *Player) {
	p.Balance -= rent
	owner.Balance += rent
}

// BuyProperty buys the square for its price. It returns false without
// changing anything when the square already has an owner.
func (p *Player) BuyProperty(sq *board.Square) (bool, error) {
	if _, owned := sq.Owner(); owned {
		return false, nil
	}
	if err := sq.SetOwner(p.ID); err != nil {
		return false, err
	}
	p.Balance -= sq.Price
	return true, nil
}

func (p *Player) IsBankrupt() bool {
	return p.Balance < 0
}

// Properties returns the squares on b owned by this player.
func (p *Player) Properties(b *board.Board) []*board.Square {
	return b.OwnedBy(p.ID)
}

// ExitGame removes the player from the game and disowns every property they hold.
// The disowned squares are returned. Calling ExitGame again has no effect.
func (p *Player) ExitGame(b *board.Board) []*board.Square {
	if p.HasExited {
		return nil
	}
	p.HasExited = true
	disowned := p.Properties(b)
	for _, sq := range disowned {
		sq.Disown()
	}
	return disowned
}
