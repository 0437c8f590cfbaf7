package game

import (
	"fmt"

	"github.com/cbodonnell/monopoly/pkg/game/types"
)

// selectJailStrategy asks a newly jailed player how they want to get out.
// Anything other than a valid answer means bail.
func (e *Engine) selectJailStrategy(p *types.Player) {
	choice := e.ask(Prompt{
		Kind:     PromptKindJailStrategy,
		Player:   p.Copy(),
		Question: fmt.Sprintf("%s, how do you want to get out of jail?", p.Token),
		Options: []string{
			fmt.Sprintf("Roll for a double on each of the next %d turns. Pay %s if you fail by your last turn.", e.rules.MaxJailRollAttempts, e.money(e.rules.JailFine)),
			fmt.Sprintf("Pay %s in either of the next 2 turns.", e.money(e.rules.JailFine)),
		},
		Fallback: OptionBail,
	})

	if choice == OptionFeelingLucky {
		p.JailStrategy = types.JailStrategyFeelingLucky
	} else {
		p.JailStrategy = types.JailStrategyBail
	}
	e.notify(p, types.EventTypeJailStrategy, 0, "%s chose %s", p.Token, p.JailStrategy)
}

// playFeelingLucky rolls for a double. A double releases the player, and the
// last allowed attempt releases them for the fine. Either way they move by the roll.
func (e *Engine) playFeelingLucky(p *types.Player) error {
	roll := e.roll(p)
	p.JailTurns++

	if roll.IsDouble() {
		p.Release()
		e.notify(p, types.EventTypeReleased, 0, "%s rolled a double and is out of jail", p.Token)
		return e.MoveAndLand(p, roll.Total())
	}

	if p.JailTurns < e.rules.MaxJailRollAttempts {
		e.notify(p, types.EventTypeStayedInJail, p.JailTurns, "%s did not roll a double and stays in jail", p.Token)
		return nil
	}

	e.payFine(p)
	p.Release()
	e.notify(p, types.EventTypeReleased, 0, "%s did not roll a double by the last attempt and is out of jail", p.Token)
	return e.MoveAndLand(p, roll.Total())
}

// playBail offers to pay the fine on the first jailed turn and forces it on
// any later one. A player who declines still rolls and moves this turn while
// remaining jailed.
func (e *Engine) playBail(p *types.Player) error {
	if p.JailTurns == 0 {
		choice := e.ask(Prompt{
			Kind:     PromptKindBailPayNow,
			Player:   p.Copy(),
			Question: fmt.Sprintf("%s, do you want to pay %s now?", p.Token, e.money(e.rules.JailFine)),
			Options:  []string{"Yes", "No"},
			Fallback: OptionYes,
		})
		if choice == OptionYes {
			e.payFine(p)
			p.Release()
			e.notify(p, types.EventTypeReleased, 0, "%s paid bail and is out of jail", p.Token)
		} else {
			e.notify(p, types.EventTypeBailDeferred, 0, "%s will pay bail next turn", p.Token)
		}
	} else {
		e.payFine(p)
		p.Release()
		e.notify(p, types.EventTypeReleased, 0, "%s paid bail and is out of jail", p.Token)
	}

	roll := e.roll(p)
	if p.IsJailed {
		p.JailTurns++
	}
	return e.MoveAndLand(p, roll.Total())
}

func (e *Engine) payFine(p *types.Player) {
	p.PayFine(e.rules.JailFine)
	e.notify(p, types.EventTypeFinePaid, e.rules.JailFine, "%s paid a fine of %s", p.Token, e.money(e.rules.JailFine))
	e.notifyBalance(p)
}
