package constants

const (
	// Currency is the display currency for balances
	Currency string = "HKD"
	// Salary is paid when passing or landing on Go, and is each player's starting balance
	Salary int = 1500
	// JailFine is the amount paid to leave jail
	JailFine int = 150
	// JailSquarePosition is where jailed players are held
	JailSquarePosition int = 6
	// BoardSize is the number of squares on the board
	BoardSize int = 20

	// MinPlayerCount is the minimum number of players in a game
	MinPlayerCount int = 2
	// MaxPlayerCount is the maximum number of players in a game
	MaxPlayerCount int = 6
	// MaxRoundCount is the last round played before the game ends
	MaxRoundCount int = 100

	// MaxJailRollAttempts is the number of rolls a feeling-lucky player gets before paying the fine
	MaxJailRollAttempts int = 3

	// ChanceGainMax is the largest amount a chance square can pay out
	ChanceGainMax int = 200
	// ChanceLossMax is the largest amount a chance square can take
	ChanceLossMax int = 300
	// ChanceStep is the granularity of chance amounts
	ChanceStep int = 10
)

// DiePool is the set of faces each die is drawn from.
var DiePool = []int{1, 2, 3, 4}

const (
	// ChoiceYes is the first option of a yes/no prompt
	ChoiceYes int = 1
	// ChoiceNo is the second option of a yes/no prompt
	ChoiceNo int = 2

	// DefaultBuyPropertyChoice is used when no player is answering the purchase prompt
	DefaultBuyPropertyChoice int = ChoiceNo
	// DefaultJailStrategyChoice is used when no player is answering the jail strategy prompt
	DefaultJailStrategyChoice int = 1
	// DefaultBailPayNowChoice is used when no player is answering the bail prompt
	DefaultBailPayNowChoice int = ChoiceYes
	// DefaultTurnActionChoice is used when no player is answering the turn prompt
	DefaultTurnActionChoice int = 1
)
