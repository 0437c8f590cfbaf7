package game

import (
	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/game/board"
	"github.com/cbodonnell/monopoly/pkg/game/types"
)

type PromptKind uint8

const (
	PromptKindBuyProperty PromptKind = iota
	PromptKindJailStrategy
	PromptKindBailPayNow
	PromptKindTurnAction
)

func (k PromptKind) String() string {
	switch k {
	case PromptKindBuyProperty:
		return "buy_property"
	case PromptKindJailStrategy:
		return "jail_strategy"
	case PromptKindBailPayNow:
		return "bail_pay_now"
	case PromptKindTurnAction:
		return "turn_action"
	default:
		return "unknown"
	}
}

// Option numbers shared by the prompts. Options are numbered from 1.
const (
	OptionYes = 1
	OptionNo  = 2

	OptionFeelingLucky = 1
	OptionBail         = 2

	OptionPlayTurn    = 1
	OptionSaveAndExit = 2
)

// Prompt is an enumerated choice put to a player.
type Prompt struct {
	Kind PromptKind
	// Player is a copy of the deciding player's state
	Player *types.Player
	// Square is set for purchase offers
	Square   *board.Square
	Question string
	Options  []string
	// Fallback is used when the answer is not one of the options
	Fallback int
}

// Valid reports whether choice is one of the prompt's options.
func (p Prompt) Valid(choice int) bool {
	return choice >= 1 && choice <= len(p.Options)
}

// Decider answers prompts on behalf of players. Answers outside the presented
// options are replaced with the prompt's Fallback.
type Decider interface {
	Choose(prompt Prompt) int
}

// DeciderFunc adapts a function to a Decider.
type DeciderFunc func(prompt Prompt) int

func (f DeciderFunc) Choose(prompt Prompt) int {
	return f(prompt)
}

// DefaultDecider answers every prompt with the configured default for its kind.
type DefaultDecider struct {
	defaults config.Defaults
}

func NewDefaultDecider(defaults config.Defaults) *DefaultDecider {
	return &DefaultDecider{defaults: defaults}
}

func (d *DefaultDecider) Choose(prompt Prompt) int {
	switch prompt.Kind {
	case PromptKindBuyProperty:
		return d.defaults.BuyProperty
	case PromptKindJailStrategy:
		return d.defaults.JailStrategy
	case PromptKindBailPayNow:
		return d.defaults.BailPayNow
	case PromptKindTurnAction:
		return d.defaults.TurnAction
	default:
		return prompt.Fallback
	}
}
