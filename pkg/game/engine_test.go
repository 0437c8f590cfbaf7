package game

import (
	"testing"

	"github.com/cbodonnell/monopoly/pkg/game/dice"
	"github.com/cbodonnell/monopoly/pkg/game/types"
	"github.com/stretchr/testify/assert"
)

func TestEngine_MoveAndLand(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		steps       int
		wantPassed  []int
		wantLanded  int
		wantBalance int
	}{
		{
			name:        "simple move",
			start:       1,
			steps:       4,
			wantPassed:  []int{2, 3, 4},
			wantLanded:  5,
			wantBalance: 1500,
		},
		{
			name:        "wraps past go",
			start:       19,
			steps:       4,
			wantPassed:  []int{20, 1, 2},
			wantLanded:  3,
			wantBalance: 3000,
		},
		{
			name:        "lands on go",
			start:       18,
			steps:       3,
			wantPassed:  []int{19, 20},
			wantLanded:  1,
			wantBalance: 3000,
		},
		{
			name:        "single step onto go",
			start:       20,
			steps:       1,
			wantPassed:  nil,
			wantLanded:  1,
			wantBalance: 3000,
		},
		{
			name:        "full lap",
			start:       5,
			steps:       20,
			wantPassed:  []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 1, 2, 3, 4},
			wantLanded:  5,
			wantBalance: 3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
			p := f.players[0]
			p.Position = tt.start

			err := f.engine.MoveAndLand(p, tt.steps)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPassed, f.recorder.positions(types.EventTypePassedSquare))
			assert.Equal(t, []int{tt.wantLanded}, f.recorder.positions(types.EventTypeLandedOnSquare))
			assert.Equal(t, tt.wantLanded, p.Position)
			assert.Equal(t, tt.wantBalance, p.Balance)
		})
	}
}

func TestEngine_MoveAndLandInvalidSteps(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]

	for _, steps := range []int{0, -3} {
		err := f.engine.MoveAndLand(p, steps)
		assert.ErrorIs(t, err, ErrInvalidSteps)
	}
	assert.Equal(t, 1, p.Position)
	assert.Empty(t, f.recorder.events)
}

func TestEngine_MoveAndLandNeverLeavesTheBoard(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]

	for start := 1; start <= f.board.Size(); start++ {
		for steps := 1; steps <= 2*f.board.Size(); steps++ {
			p.Position = start
			p.IsJailed = false
			assert.NoError(t, f.engine.MoveAndLand(p, steps))
			if !p.IsJailed {
				assert.Equal(t, f.board.Wrap(start, steps), p.Position)
			}
			assert.GreaterOrEqual(t, p.Position, 1)
			assert.LessOrEqual(t, p.Position, f.board.Size())
		}
	}
}

func TestEngine_IncomeTax(t *testing.T) {
	tests := []struct {
		balance int
		want    int
	}{
		{balance: 300, want: 270},
		{balance: 420, want: 380},
		{balance: 30, want: 30},
		{balance: 0, want: 0},
		{balance: -50, want: -50},
		{balance: 1500, want: 1350},
		{balance: 1995, want: 1805},
	}

	for _, tt := range tests {
		f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
		p := f.players[0]
		p.Balance = tt.balance

		assert.NoError(t, f.engine.Land(p, f.square(4)))
		assert.Equal(t, tt.want, p.Balance, "balance %d", tt.balance)
		if taxes := f.recorder.ofType(types.EventTypeTaxPaid); assert.Len(t, taxes, 1) {
			assert.Equal(t, tt.balance-tt.want, taxes[0].Amount)
		}
	}
}

func TestEngine_PassingIncomeTaxIsFree(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]

	assert.NoError(t, f.engine.MoveAndLand(p, 5))
	assert.Equal(t, 6, p.Position)
	assert.Equal(t, 1500, p.Balance)
	assert.False(t, p.IsJailed)
}

func TestEngine_GoToJail(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]
	p.Position = 15
	p.JailTurns = 2
	p.JailStrategy = types.JailStrategyBail

	assert.NoError(t, f.engine.MoveAndLand(p, 1))

	assert.True(t, p.IsJailed)
	assert.Equal(t, f.rules.JailPosition, p.Position)
	assert.Equal(t, 0, p.JailTurns)
	assert.Equal(t, types.JailStrategyUnset, p.JailStrategy)
	assert.Equal(t, 1500, p.Balance)
	assert.Len(t, f.recorder.ofType(types.EventTypeJailed), 1)
}

func TestEngine_NoOpSquares(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]

	for _, position := range []int{6, 11} {
		p.Position = position
		assert.NoError(t, f.engine.Land(p, f.square(position)))
		assert.Equal(t, 1500, p.Balance)
		assert.False(t, p.IsJailed)
		assert.Equal(t, position, p.Position)
	}
}

func TestEngine_BuyProperty(t *testing.T) {
	tests := []struct {
		name         string
		answer       int
		wantBalance  int
		wantOwned    bool
		wantInvalid  int
		wantDeclined int
	}{
		{name: "buys", answer: OptionYes, wantBalance: 700, wantOwned: true},
		{name: "declines", answer: OptionNo, wantBalance: 1500, wantDeclined: 1},
		{name: "invalid answer declines", answer: 3, wantBalance: 1500, wantInvalid: 1, wantDeclined: 1},
		{name: "zero answer declines", answer: 0, wantBalance: 1500, wantInvalid: 1, wantDeclined: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decider := newScriptedDecider(map[PromptKind]int{PromptKindBuyProperty: tt.answer})
			f := newEngineFixture(dice.NewFixedPair(1, 1), decider, 2)
			p := f.players[0]
			central := f.square(2)

			assert.NoError(t, f.engine.Land(p, central))

			assert.Equal(t, tt.wantBalance, p.Balance)
			assert.Equal(t, tt.wantOwned, central.IsOwnedBy(p.ID))
			assert.Len(t, f.recorder.ofType(types.EventTypeInvalidChoice), tt.wantInvalid)
			assert.Len(t, f.recorder.ofType(types.EventTypePurchaseDeclined), tt.wantDeclined)
			if prompts := decider.promptsOf(PromptKindBuyProperty); assert.Len(t, prompts, 1) {
				assert.Equal(t, central, prompts[0].Square)
				assert.Equal(t, OptionNo, prompts[0].Fallback)
			}
		})
	}
}

func TestEngine_LandingOnOwnPropertyChangesNothing(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{PromptKindBuyProperty: OptionYes})
	f := newEngineFixture(dice.NewFixedPair(1, 1), decider, 2)
	p := f.players[0]
	central := f.square(2)

	assert.NoError(t, f.engine.Land(p, central))
	assert.Equal(t, 700, p.Balance)

	assert.NoError(t, f.engine.Land(p, central))
	assert.Equal(t, 700, p.Balance)
	assert.True(t, central.IsOwnedBy(p.ID))
	assert.Len(t, decider.promptsOf(PromptKindBuyProperty), 1)
	assert.Empty(t, f.recorder.ofType(types.EventTypeRentPaid))
}

func TestEngine_Rent(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 3)
	payer, owner, bystander := f.players[0], f.players[1], f.players[2]
	central := f.square(2)
	assert.NoError(t, central.SetOwner(owner.ID))

	total := payer.Balance + owner.Balance + bystander.Balance
	assert.NoError(t, f.engine.Land(payer, central))

	assert.Equal(t, 1500-central.Rent, payer.Balance)
	assert.Equal(t, 1500+central.Rent, owner.Balance)
	assert.Equal(t, 1500, bystander.Balance)
	assert.Equal(t, total, payer.Balance+owner.Balance+bystander.Balance)
	assert.True(t, central.IsOwnedBy(owner.ID))
	assert.Empty(t, f.decider.prompts)

	collected := f.recorder.ofType(types.EventTypeRentCollected)
	if assert.Len(t, collected, 1) {
		assert.Equal(t, owner.ID, collected[0].PlayerID)
		assert.Equal(t, central.Rent, collected[0].Amount)
	}
}

func TestEngine_RentOwnerNotFound(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]
	central := f.square(2)
	assert.NoError(t, central.SetOwner(9))

	err := f.engine.Land(p, central)

	assert.ErrorIs(t, err, ErrOwnerNotFound)
	assert.Equal(t, 1500, p.Balance)
}

func TestEngine_Chance(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(1, 1), nil, 2)
	p := f.players[0]
	chance := f.square(9)

	var gains, losses int
	for i := 0; i < 200; i++ {
		p.Balance = 1500
		f.recorder.events = nil

		assert.NoError(t, f.engine.Land(p, chance))

		delta := p.Balance - 1500
		assert.NotZero(t, delta)
		assert.Zero(t, delta%10, "chance amounts are multiples of 10")
		if delta > 0 {
			gains++
			assert.LessOrEqual(t, delta, f.rules.ChanceGainMax)
			assert.Len(t, f.recorder.ofType(types.EventTypeChanceGained), 1)
		} else {
			losses++
			assert.GreaterOrEqual(t, delta, -f.rules.ChanceLossMax)
			assert.Len(t, f.recorder.ofType(types.EventTypeChanceLost), 1)
		}
	}
	assert.Positive(t, gains)
	assert.Positive(t, losses)
}

func TestEngine_PlayTurnNotJailed(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(2, 3), nil, 2)
	p := f.players[0]

	assert.NoError(t, f.engine.PlayTurn(p))

	assert.Equal(t, 6, p.Position)
	assert.False(t, p.IsJailed, "the jail square is only visited")
	rolled := f.recorder.ofType(types.EventTypeDiceRolled)
	if assert.Len(t, rolled, 1) {
		assert.Equal(t, 5, rolled[0].Amount)
	}
}

func TestEngine_PlayTurnExitedPlayer(t *testing.T) {
	f := newEngineFixture(dice.NewFixedPair(2, 3), nil, 2)
	p := f.players[0]
	p.HasExited = true

	assert.ErrorIs(t, f.engine.PlayTurn(p), ErrPlayerExited)
	assert.Equal(t, 1, p.Position)
}

func jailed(f *engineFixture) *types.Player {
	p := f.players[0]
	p.GoToJail(f.rules.JailPosition)
	return p
}

func TestEngine_FeelingLuckyDoubleOnFirstTurn(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: OptionFeelingLucky,
		PromptKindBuyProperty:  OptionNo,
	})
	f := newEngineFixture(dice.NewSequence(roll(2, 2)), decider, 2)
	p := jailed(f)

	assert.NoError(t, f.engine.PlayTurn(p))

	assert.False(t, p.IsJailed)
	assert.Equal(t, 10, p.Position)
	assert.Equal(t, 0, p.JailTurns)
	assert.Equal(t, 1500, p.Balance)
	assert.Len(t, decider.promptsOf(PromptKindJailStrategy), 1)
}

func TestEngine_FeelingLuckyDoubleOnLastAttempt(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: OptionFeelingLucky,
		PromptKindBuyProperty:  OptionNo,
	})
	f := newEngineFixture(dice.NewSequence(roll(1, 2), roll(1, 3), roll(3, 3)), decider, 2)
	p := jailed(f)

	for attempt := 1; attempt <= 2; attempt++ {
		assert.NoError(t, f.engine.PlayTurn(p))
		assert.True(t, p.IsJailed)
		assert.Equal(t, 6, p.Position)
		assert.Equal(t, attempt, p.JailTurns)
		assert.Equal(t, types.JailStrategyFeelingLucky, p.JailStrategy)
	}

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.False(t, p.IsJailed)
	assert.Equal(t, 12, p.Position)
	assert.Equal(t, 1500, p.Balance)
	assert.Len(t, decider.promptsOf(PromptKindJailStrategy), 1)
	assert.Len(t, f.recorder.ofType(types.EventTypeStayedInJail), 2)
}

func TestEngine_FeelingLuckyThreeFailuresPaysFine(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: OptionFeelingLucky,
	})
	f := newEngineFixture(dice.NewSequence(roll(1, 2), roll(1, 3), roll(2, 3)), decider, 2)
	p := jailed(f)

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.NoError(t, f.engine.PlayTurn(p))
	assert.True(t, p.IsJailed)
	assert.Equal(t, 6, p.Position)
	assert.Equal(t, 1500, p.Balance)

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.False(t, p.IsJailed)
	assert.Equal(t, 11, p.Position)
	assert.Equal(t, 1500-f.rules.JailFine, p.Balance)
	assert.Len(t, f.recorder.ofType(types.EventTypeFinePaid), 1)
}

func TestEngine_BailPayNow(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: OptionBail,
		PromptKindBailPayNow:   OptionYes,
		PromptKindBuyProperty:  OptionNo,
	})
	f := newEngineFixture(dice.NewSequence(roll(1, 3)), decider, 2)
	p := jailed(f)

	assert.NoError(t, f.engine.PlayTurn(p))

	assert.False(t, p.IsJailed)
	assert.Equal(t, 10, p.Position)
	assert.Equal(t, 1350, p.Balance)
	assert.Equal(t, 0, p.JailTurns)
}

// A player who declines bail on their first jailed turn still rolls and
// moves this turn while remaining jailed. The next turn forces payment and
// moves them on from wherever they ended up.
func TestEngine_BailDeclinedStillMovesWhileJailed(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: OptionBail,
		PromptKindBailPayNow:   OptionNo,
		PromptKindBuyProperty:  OptionNo,
	})
	f := newEngineFixture(dice.NewSequence(roll(1, 3), roll(1, 1)), decider, 2)
	p := jailed(f)

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.True(t, p.IsJailed, "declining bail leaves the player jailed")
	assert.Equal(t, 10, p.Position, "declining bail still moves the player")
	assert.Equal(t, 1, p.JailTurns)
	assert.Equal(t, 1500, p.Balance)
	assert.Len(t, f.recorder.ofType(types.EventTypeBailDeferred), 1)

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.False(t, p.IsJailed)
	assert.Equal(t, 12, p.Position)
	assert.Equal(t, 1350, p.Balance)
	assert.Len(t, decider.promptsOf(PromptKindBailPayNow), 1, "payment is forced on the second turn")
	assert.Len(t, decider.promptsOf(PromptKindJailStrategy), 1)
}

func TestEngine_BailForcedWhenTurnsElapsed(t *testing.T) {
	decider := newScriptedDecider(nil)
	f := newEngineFixture(dice.NewSequence(roll(1, 3)), decider, 2)
	p := jailed(f)
	p.JailStrategy = types.JailStrategyBail
	p.JailTurns = 1

	assert.NoError(t, f.engine.PlayTurn(p))

	assert.False(t, p.IsJailed)
	assert.Equal(t, 1350, p.Balance)
	assert.Empty(t, decider.promptsOf(PromptKindBailPayNow))
	assert.Empty(t, decider.promptsOf(PromptKindJailStrategy))
}

func TestEngine_InvalidJailAnswersFallBack(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: 5,
		PromptKindBailPayNow:   -1,
	})
	f := newEngineFixture(dice.NewSequence(roll(1, 3)), decider, 2)
	p := jailed(f)

	assert.NoError(t, f.engine.PlayTurn(p))

	assert.Equal(t, types.JailStrategyUnset, p.JailStrategy, "released players have no strategy")
	assert.False(t, p.IsJailed, "invalid bail answer pays now")
	assert.Equal(t, 1350, p.Balance)
	assert.Len(t, f.recorder.ofType(types.EventTypeInvalidChoice), 3)
	strategy := f.recorder.ofType(types.EventTypeJailStrategy)
	if assert.Len(t, strategy, 1) {
		assert.Contains(t, strategy[0].Message, "bail")
	}
}

func TestEngine_JailedAgainAfterRelease(t *testing.T) {
	decider := newScriptedDecider(map[PromptKind]int{
		PromptKindJailStrategy: OptionBail,
		PromptKindBailPayNow:   OptionYes,
	})
	// 6 -> 16 sends the player straight back to jail
	f := newEngineFixture(dice.NewSequence(roll(5, 5), roll(1, 3)), decider, 2)
	p := jailed(f)

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.True(t, p.IsJailed)
	assert.Equal(t, 6, p.Position)
	assert.Equal(t, 0, p.JailTurns)
	assert.Equal(t, types.JailStrategyUnset, p.JailStrategy)

	assert.NoError(t, f.engine.PlayTurn(p))
	assert.False(t, p.IsJailed)
	assert.Len(t, decider.promptsOf(PromptKindJailStrategy), 2)
	assert.Equal(t, 1500-2*f.rules.JailFine, p.Balance)
}
