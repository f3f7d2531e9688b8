package weizen

import (
	"errors"
	"fmt"
)

// ErrNotPlayersTurn is returned when it's not the player's turn
var ErrNotPlayersTurn = errors.New("not player's turn")

// ErrWrongPhase is an error when an action is attempted in the wrong game phase
var ErrWrongPhase = errors.New("action not allowed in the current phase")

// ErrCardNotInHand happens when the player tries to play a card they don't have
var ErrCardNotInHand = errors.New("card is not in player's hand")

// ErrMustFollowSuit happens when a player holds the led suit and plays a different one
var ErrMustFollowSuit = errors.New("player must follow the led suit")

// ErrTroelRequiresAces is an error when troel is declared with fewer than three aces
var ErrTroelRequiresAces = errors.New("troel requires at least three aces in hand")

// ErrMeegaanRequiresVraag is an error when meegaan is declared without a prior vraag
var ErrMeegaanRequiresVraag = errors.New("meegaan requires a prior vraag declaration")

// ErrMeegaanAlreadyTaken is an error when a second meegaan is declared in one auction
var ErrMeegaanAlreadyTaken = errors.New("only one meegaan is allowed per auction")

// ErrPlayerNotSeated is an error when an unknown player sends an action
var ErrPlayerNotSeated = errors.New("player is not seated at this game")

// ErrAlreadyVoted is an error when a player casts a second cheat vote
var ErrAlreadyVoted = errors.New("player has already voted")

// ErrGameNotOver is an error when settlement is requested before the game finished
var ErrGameNotOver = errors.New("game is not over")

// UnknownActionError is an error for an action the game does not recognize
type UnknownActionError string

func (u UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action: %s", string(u))
}

// UnknownBidError is an error for a bid type that does not exist
type UnknownBidError string

func (u UnknownBidError) Error() string {
	return fmt.Sprintf("unknown bid type: %s", string(u))
}

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected exactly %d players, got %d", numSeats, int(p))
}
