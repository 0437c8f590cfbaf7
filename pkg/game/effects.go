package game

import (
	"fmt"

	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/types"
)

// squareEffect applies the behaviour of a square to a player.
type squareEffect func(e *Engine, sq *board.Square, p *types.Player) error

// landEffects maps each square kind to its landing effect.
// Kinds without an entry do nothing when landed on.
var landEffects = map[board.Kind]squareEffect{
	board.KindGo:        collectSalary,
	board.KindProperty:  landOnProperty,
	board.KindIncomeTax: landOnIncomeTax,
	board.KindGoToJail:  landOnGoToJail,
	board.KindChance:    landOnChance,
}

// passEffects maps each square kind to its pass-through effect.
// Only Go does anything when passed.
var passEffects = map[board.Kind]squareEffect{
	board.KindGo: collectSalary,
}

func collectSalary(e *Engine, _ *board.Square, p *types.Player) error {
	p.CollectSalary(e.rules.Salary)
	e.notify(p, types.EventTypeSalaryCollected, e.rules.Salary, "%s collected a salary of %s", p.Token, e.money(e.rules.Salary))
	e.notifyBalance(p)
	return nil
}

func landOnProperty(e *Engine, sq *board.Square, p *types.Player) error {
	ownerID, owned := sq.Owner()
	if !owned {
		return e.offerProperty(sq, p)
	}
	if ownerID == p.ID {
		return nil
	}

	owner, ok := e.roster.PlayerByID(ownerID)
	if !ok {
		return fmt.Errorf("%w: player %d owns %s", ErrOwnerNotFound, ownerID, sq)
	}
	p.PayRent(sq.Rent, owner)
	e.notify(p, types.EventTypeRentPaid, sq.Rent, "%s paid %s rent to %s", p.Token, e.money(sq.Rent), owner.Token)
	e.notify(owner, types.EventTypeRentCollected, sq.Rent, "%s collected %s rent from %s", owner.Token, e.money(sq.Rent), p.Token)
	e.notifyBalance(p)
	return nil
}

func (e *Engine) offerProperty(sq *board.Square, p *types.Player) error {
	e.notify(p, types.EventTypePurchaseOffered, sq.Price, "%s is for sale at %s with a rent of %s", sq.Name, e.money(sq.Price), e.money(sq.Rent))
	choice := e.ask(Prompt{
		Kind:     PromptKindBuyProperty,
		Player:   p.Copy(),
		Square:   sq,
		Question: fmt.Sprintf("Would you like to buy %s for %s?", sq.Name, e.money(sq.Price)),
		Options:  []string{"Yes", "No"},
		Fallback: OptionNo,
	})
	if choice != OptionYes {
		e.notify(p, types.EventTypePurchaseDeclined, sq.Price, "%s did not buy %s", p.Token, sq.Name)
		return nil
	}

	bought, err := p.BuyProperty(sq)
	if err != nil {
		return err
	}
	if !bought {
		return nil
	}
	e.notify(p, types.EventTypePropertyBought, sq.Price, "%s bought %s for %s", p.Token, sq.Name, e.money(sq.Price))
	e.notifyBalance(p)
	return nil
}

func landOnIncomeTax(e *Engine, _ *board.Square, p *types.Player) error {
	tax := p.PayTax()
	e.notify(p, types.EventTypeTaxPaid, tax, "%s paid %s in income tax", p.Token, e.money(tax))
	e.notifyBalance(p)
	return nil
}

func landOnGoToJail(e *Engine, _ *board.Square, p *types.Player) error {
	p.GoToJail(e.rules.JailPosition)
	e.notify(p, types.EventTypeJailed, 0, "%s was sent to jail", p.Token)
	return nil
}

func landOnChance(e *Engine, _ *board.Square, p *types.Player) error {
	if e.rng.Intn(2) == 0 {
		amount := p.GainFromChance(e.rng, e.rules.ChanceGainMax)
		e.notify(p, types.EventTypeChanceGained, amount, "%s gained %s", p.Token, e.money(amount))
	} else {
		amount := p.LoseToChance(e.rng, e.rules.ChanceLossMax)
		e.notify(p, types.EventTypeChanceLost, amount, "%s lost %s", p.Token, e.money(amount))
	}
	e.notifyBalance(p)
	return nil
}
