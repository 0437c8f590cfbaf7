package types

type EventType string

const (
	EventTypeRoundStarted     EventType = "round_started"
	EventTypeTurnStarted      EventType = "turn_started"
	EventTypeDiceRolled       EventType = "dice_rolled"
	EventTypePassedSquare     EventType = "passed_square"
	EventTypeLandedOnSquare   EventType = "landed_on_square"
	EventTypeSalaryCollected  EventType = "salary_collected"
	EventTypePurchaseOffered  EventType = "purchase_offered"
	EventTypePropertyBought   EventType = "property_bought"
	EventTypePurchaseDeclined EventType = "purchase_declined"
	EventTypeRentPaid         EventType = "rent_paid"
	EventTypeRentCollected    EventType = "rent_collected"
	EventTypeTaxPaid          EventType = "tax_paid"
	EventTypeChanceGained     EventType = "chance_gained"
	EventTypeChanceLost       EventType = "chance_lost"
	EventTypeJailed           EventType = "jailed"
	EventTypeJailStrategy     EventType = "jail_strategy"
	EventTypeStayedInJail     EventType = "stayed_in_jail"
	EventTypeBailDeferred     EventType = "bail_deferred"
	EventTypeFinePaid         EventType = "fine_paid"
	EventTypeReleased         EventType = "released"
	EventTypeBalance          EventType = "balance"
	EventTypeInvalidChoice    EventType = "invalid_choice"
	EventTypePlayerExited     EventType = "player_exited"
	EventTypePropertyDisowned EventType = "property_disowned"
	EventTypeGameSaved        EventType = "game_saved"
	EventTypeGameOver         EventType = "game_over"
	EventTypeWinner           EventType = "winner"
)

// Event is a human-readable account of something that happened in the game.
// Events are informational only; nothing in the game reads them back.
type Event struct {
	Type     EventType `json:"type"`
	Round    int       `json:"round,omitempty"`
	PlayerID int       `json:"player_id"`
	Token    string    `json:"token,omitempty"`
	Position int       `json:"position,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	Balance  int       `json:"balance"`
	Message  string    `json:"message"`
}
