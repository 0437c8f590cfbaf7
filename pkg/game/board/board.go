package board

import (
	"errors"
	"fmt"
)

// ErrNotProperty is returned when ownership is changed on a square that cannot be owned.
var ErrNotProperty = errors.New("square is not a property")

type Kind uint8

const (
	KindGo Kind = iota
	KindProperty
	KindIncomeTax
	KindJailOrVisiting
	KindFreeParking
	KindGoToJail
	KindChance
)

func (k Kind) String() string {
	switch k {
	case KindGo:
		return "Go"
	case KindProperty:
		return "Property"
	case KindIncomeTax:
		return "IncomeTax"
	case KindJailOrVisiting:
		return "JailOrVisiting"
	case KindFreeParking:
		return "FreeParking"
	case KindGoToJail:
		return "GoToJail"
	case KindChance:
		return "Chance"
	default:
		return "Unknown"
	}
}

// Square is one position on the board. Price and Rent are only set for properties.
// The owner is held as a player id and resolved against the roster by callers.
type Square struct {
	Position int
	Name     string
	Kind     Kind
	Price    int
	Rent     int

	ownerID int
	owned   bool
}

func (s *Square) String() string {
	return fmt.Sprintf("Square %d (%s)", s.Position, s.Name)
}

func (s *Square) IsProperty() bool {
	return s.Kind == KindProperty
}

// Owner returns the id of the owning player, if any.
func (s *Square) Owner() (int, bool) {
	return s.ownerID, s.owned
}

// IsOwnedBy reports whether the player with the given id owns this square.
func (s *Square) IsOwnedBy(playerID int) bool {
	return s.owned && s.ownerID == playerID
}

// SetOwner records playerID as the owner of a property square.
func (s *Square) SetOwner(playerID int) error {
	if !s.IsProperty() {
		return fmt.Errorf("%w: %s", ErrNotProperty, s)
	}
	s.ownerID = playerID
	s.owned = true
	return nil
}

// Disown clears the owner of the square.
func (s *Square) Disown() {
	s.ownerID = 0
	s.owned = false
}

// Board is the fixed, ordered sequence of squares. Positions are 1-based.
type Board struct {
	squares []*Square
}

// New creates a board from squares, which must be given in position order starting at 1.
func New(squares []*Square) (*Board, error) {
	if len(squares) == 0 {
		return nil, fmt.Errorf("board must have at least one square")
	}
	for i, sq := range squares {
		if sq.Position != i+1 {
			return nil, fmt.Errorf("square %q has position %d, want %d", sq.Name, sq.Position, i+1)
		}
		if sq.IsProperty() && (sq.Price <= 0 || sq.Rent <= 0 || sq.Rent >= sq.Price) {
			return nil, fmt.Errorf("property %q must have 0 < rent < price", sq.Name)
		}
	}
	return &Board{squares: squares}, nil
}

// Size returns the number of squares on the board.
func (b *Board) Size() int {
	return len(b.squares)
}

// Get returns the square at position, or false when position is off the board.
func (b *Board) Get(position int) (*Square, bool) {
	if position <= 0 || position > len(b.squares) {
		return nil, false
	}
	return b.squares[position-1], true
}

// Squares returns the squares in position order.
func (b *Board) Squares() []*Square {
	squares := make([]*Square, len(b.squares))
	copy(squares, b.squares)
	return squares
}

// OwnedBy returns the properties owned by the player, in position order.
func (b *Board) OwnedBy(playerID int) []*Square {
	var owned []*Square
	for _, sq := range b.squares {
		if sq.IsOwnedBy(playerID) {
			owned = append(owned, sq)
		}
	}
	return owned
}

// Wrap maps position+steps back onto the board, never yielding position 0.
func (b *Board) Wrap(position, steps int) int {
	return ((position+steps-1)%len(b.squares)+len(b.squares))%len(b.squares) + 1
}
