package weizen

import (
	"weizen-server/pkg/deck"
	"weizen-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Phase       Phase                `json:"phase"`
	Round       int                  `json:"round"`
	Rounds      int                  `json:"rounds"`
	DealerID    int64                `json:"dealerId"`
	TrumpCard   *deck.Card           `json:"trumpCard"`
	Contract    *Contract            `json:"contract"`
	Bids        []*BidEntry          `json:"bids"`
	PlayedCards map[int64]*deck.Card `json:"playedCards"`
	LedSuit     *deck.Suit           `json:"ledSuit"`
	CurrentTurn int64                `json:"currentTurn"`
	Players     []*GameStatePlayer   `json:"players"`
}

// GameStatePlayer is the state of an individual player
// This is safe for all players to see
type GameStatePlayer struct {
	PlayerID    int64   `json:"playerId"`
	CardsInHand int     `json:"cardsInHand"`
	LastBid     BidType `json:"lastBid"`
	TricksWon   int     `json:"tricksWon"`
	Score       int     `json:"score"`
	RoundScore  int     `json:"roundScore"`
	CheatFlags  int     `json:"cheatFlags"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Hand below is player specific, and must only be shown to the intended player
	Hand deck.Hand `json:"hand"`
}

func (g *Game) getGameState() *GameState {
	players := make([]*GameStatePlayer, 0, numSeats)
	for _, pid := range g.seatOrder {
		p := g.participants[pid]
		players = append(players, &GameStatePlayer{
			PlayerID:    pid,
			CardsInHand: len(p.hand),
			LastBid:     p.lastBid,
			TricksWon:   p.tricksWon,
			Score:       p.score,
			RoundScore:  p.roundScore,
			CheatFlags:  p.cheatFlags,
		})
	}

	var bids []*BidEntry
	if g.auction != nil {
		bids = g.auction.log
	}

	playedCards := make(map[int64]*deck.Card)
	var ledSuit *deck.Suit
	if g.trick != nil {
		for _, pc := range g.trick.plays {
			playedCards[pc.player.PlayerID] = pc.card
		}

		ledSuit = g.trick.ledSuit
	}

	var currentTurn int64
	if g.phase == PhaseBidding || g.phase == PhasePlaying {
		currentTurn = g.currentTurn()
	}

	// the trump indicator stays hidden until the deal is on the table
	var trumpCard *deck.Card
	if g.phase != PhaseWaiting {
		trumpCard = g.trumpCard
	}

	return &GameState{
		Phase:       g.phase,
		Round:       g.roundNo,
		Rounds:      g.options.Rounds,
		DealerID:    g.seatOrder[g.dealerIndex%numSeats],
		TrumpCard:   trumpCard,
		Contract:    g.contract,
		Bids:        bids,
		PlayedCards: playedCards,
		LedSuit:     ledSuit,
		CurrentTurn: currentTurn,
		Players:     players,
	}
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	var hand deck.Hand
	if p, ok := g.participants[playerID]; ok {
		hand = p.hand
	}

	return &playable.Response{
		Key:   "game",
		Value: "weizen",
		Data: &Response{
			GameState: g.getGameState(),
			Hand:      hand,
		},
	}, nil
}

// gameLog is the summary attached to the end-of-game details
type gameLog struct {
	Rounds []*RoundRecord `json:"rounds"`
	Scores map[int64]int  `json:"scores"`
	Flags  map[int64]int  `json:"flags"`
}

func (g *Game) getGameLog() *gameLog {
	scores := make(map[int64]int, numSeats)
	flags := make(map[int64]int, numSeats)
	for pid, p := range g.participants {
		scores[pid] = p.score
		flags[pid] = p.cheatFlags
	}

	return &gameLog{
		Rounds: g.roundLog,
		Scores: scores,
		Flags:  flags,
	}
}
