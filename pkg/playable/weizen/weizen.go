package weizen

import (
	"weizen-server/pkg/deck"
	"weizen-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

const (
	numSeats     = 4
	cardsPerHand = 13
)

// Phase is the lifecycle state of the game
type Phase string

// game phases
const (
	PhaseWaiting  Phase = "waiting"
	PhaseDealing  Phase = "dealing"
	PhaseBidding  Phase = "bidding"
	PhasePlaying  Phase = "playing"
	PhaseScoring  Phase = "scoring"
	PhaseFinished Phase = "finished"
)

// RoundRecord captures a single player's outcome for a completed round
type RoundRecord struct {
	PlayerID     int64   `json:"playerId"`
	RoundNo      int     `json:"roundNo"`
	ContractType BidType `json:"contractType"`
	Success      bool    `json:"success"`
	ScoreDelta   int     `json:"scoreDelta"`
}

// Game is a game of weizen
type Game struct {
	options Options

	phase        Phase
	participants map[int64]*participant
	seatOrder    []int64

	deck      *deck.Deck
	trumpCard *deck.Card

	roundNo     int
	dealerIndex int

	// turnOrder is rotated per phase: left of the dealer bids and receives
	// cards first, the contract bidder leads the first trick, and each trick
	// winner leads the next
	turnOrder        []int64
	currentTurnIndex int

	auction  *auction
	contract *Contract
	trick    *trick

	// scored guards against double-applying the round's contract score
	scored bool

	readyPlayers      map[int64]bool
	dealReadyPlayers  map[int64]bool
	roundReadyPlayers map[int64]bool
	cheatVotes        map[int64]bool

	// roundLog holds every round record for the final game log;
	// pendingRecords holds the ones not yet flushed to storage
	roundLog       []*RoundRecord
	pendingRecords []*RoundRecord

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame returns a new weizen game for exactly four players
func NewGame(logger logrus.FieldLogger, playerIDs []int64, options Options) (*Game, error) {
	if len(playerIDs) != numSeats {
		return nil, PlayerCountError(len(playerIDs))
	}

	if options.BuyIn <= 0 {
		options.BuyIn = DefaultOptions().BuyIn
	}

	if options.Rounds <= 0 {
		options.Rounds = DefaultOptions().Rounds
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	participants := make(map[int64]*participant, numSeats)
	seatOrder := make([]int64, 0, numSeats)
	for _, pid := range playerIDs {
		participants[pid] = newParticipant(pid)
		seatOrder = append(seatOrder, pid)
	}

	g := &Game{
		options:           options,
		phase:             PhaseWaiting,
		participants:      participants,
		seatOrder:         seatOrder,
		deck:              deck.New(),
		readyPlayers:      make(map[int64]bool),
		dealReadyPlayers:  make(map[int64]bool),
		roundReadyPlayers: make(map[int64]bool),
		cheatVotes:        make(map[int64]bool),
		logger:            logger,
		logChan:           make(chan []*playable.LogMessage, 256),
	}

	return g, nil
}

// Name returns "weizen"
func (g *Game) Name() string {
	return "weizen"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	p, ok := g.participants[playerID]
	if !ok {
		return nil, false, ErrPlayerNotSeated
	}

	log := g.logger.WithField("playerID", playerID)

	switch message.Action {
	case "ready":
		if err := g.playerIsReady(playerID); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "dealReady":
		if err := g.playerIsDealReady(playerID); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "bid":
		bid, _ := message.AdditionalData.GetString("bidType")
		log.WithField("bid", bid).Debug("player bids")

		if err := g.playerDidBid(p, BidType(bid)); err != nil {
			return nil, false, err
		}

		if BidType(bid) == BidPass {
			g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} passed"))
		} else {
			g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} declared %s", bid))
		}

		return playable.OK(), true, nil
	case "playCard":
		if len(message.Cards) != 1 {
			return nil, false, ErrCardNotInHand
		}

		card := message.Cards[0]
		log.WithField("card", card).Debug("play card")

		if err := g.playerDidPlayCard(p, card); err != nil {
			return nil, false, err
		}

		msg := playable.SimpleLogMessage(playerID, "{} played a card")
		msg.Cards = []*deck.Card{card}
		g.sendLogMessages(msg)

		return playable.OK(), true, nil
	case "voteCheat":
		vote, _ := message.AdditionalData.GetBool("vote")
		if err := g.playerDidVoteCheat(playerID, vote); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "roundReady":
		if err := g.playerIsRoundReady(playerID); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	default:
		return nil, false, UnknownActionError(message.Action)
	}
}

// playerIsReady marks a lobby player as ready. Once every seat is ready the
// first round starts.
func (g *Game) playerIsReady(playerID int64) error {
	if g.phase != PhaseWaiting {
		return ErrWrongPhase
	}

	g.readyPlayers[playerID] = true
	if len(g.readyPlayers) < numSeats {
		return nil
	}

	g.readyPlayers = make(map[int64]bool)
	g.roundNo = 1
	g.dealerIndex = 0
	g.prepareRound()

	return nil
}

// playerIsDealReady marks a player as having seen the deal. Once every seat
// confirms, bidding starts.
func (g *Game) playerIsDealReady(playerID int64) error {
	if g.phase != PhaseDealing {
		return ErrWrongPhase
	}

	g.dealReadyPlayers[playerID] = true
	if len(g.dealReadyPlayers) < numSeats {
		return nil
	}

	g.dealReadyPlayers = make(map[int64]bool)
	g.startBidding()

	return nil
}

// prepareRound shuffles and deals a fresh hand and opens the dealing phase
func (g *Game) prepareRound() {
	g.cheatVotes = make(map[int64]bool)
	g.dealReadyPlayers = make(map[int64]bool)
	g.scored = false

	g.dealCards()
	g.phase = PhaseDealing

	g.sendLogMessages(playable.SimpleLogMessage(g.seatOrder[g.dealerIndex%numSeats], "round %d: {} deals", g.roundNo))
}

// dealCards distributes all 52 cards one at a time starting left of the
// dealer. The final card dealt becomes the trump indicator.
func (g *Game) dealCards() {
	for _, p := range g.participants {
		p.newRound()
	}

	g.turnOrder = rotateLeft(g.seatOrder, g.dealerIndex+1)

	g.deck.Shuffle(0)

	var last *deck.Card
	for i := 0; g.deck.CanDraw(1); i++ {
		card, err := g.deck.Draw()
		if err != nil {
			panic("ran out of cards mid-deal")
		}

		g.participants[g.turnOrder[i%numSeats]].hand.AddCard(card)
		last = card
	}

	g.trumpCard = last
}

// startBidding opens the auction, left of the dealer declaring first
func (g *Game) startBidding() {
	g.phase = PhaseBidding
	g.turnOrder = rotateLeft(g.seatOrder, g.dealerIndex+1)
	g.currentTurnIndex = 0
	g.auction = newAuction(g.turnOrder)
}

// playerDidBid validates and records a declaration, advancing the auction
func (g *Game) playerDidBid(p *participant, bid BidType) error {
	if g.phase != PhaseBidding {
		return ErrWrongPhase
	}

	if g.currentTurn() != p.PlayerID {
		return ErrNotPlayersTurn
	}

	if bid == BidPass {
		g.auction.recordPass(p.PlayerID)
	} else {
		if err := g.validateBid(p, bid); err != nil {
			return err
		}

		g.auction.recordBid(p.PlayerID, bid)
	}

	p.lastBid = bid

	if g.auction.isClosed() {
		g.finishBidding()
		return nil
	}

	g.currentTurnIndex = (g.currentTurnIndex + 1) % len(g.turnOrder)
	return nil
}

// validateBid enforces the declaration rules that depend on more than the
// bid type itself
func (g *Game) validateBid(p *participant, bid BidType) error {
	if !bid.IsValid() {
		return UnknownBidError(bid)
	}

	if bid == BidTroel && p.hand.CountRank(deck.Ace) < 3 {
		return ErrTroelRequiresAces
	}

	if bid == BidMeegaan {
		if !g.auction.hasBid(BidVraag) {
			return ErrMeegaanRequiresVraag
		}

		if g.auction.hasBid(BidMeegaan) {
			return ErrMeegaanAlreadyTaken
		}
	}

	return nil
}

// finishBidding resolves the auction. If everyone passed, the round is void
// and the deal moves on; otherwise the winning contract is configured and
// play begins.
func (g *Game) finishBidding() {
	winner := g.auction.winningBid()
	if winner == nil {
		g.sendLogMessages(playable.SimpleLogMessage(0, "all players passed; the round is void"))
		g.prepareNextRound()
		return
	}

	g.contract = g.resolveContract(winner)
	g.sendLogMessages(playable.SimpleLogMessage(winner.PlayerID, "{} won the auction with %s", winner.Type))

	g.startPlay()
}

// startPlay opens the play phase with the contract bidder leading
func (g *Game) startPlay() {
	g.phase = PhasePlaying
	g.turnOrder = rotateLeft(g.seatOrder, indexOf(g.seatOrder, g.contract.BidderID))
	g.currentTurnIndex = 0
	g.trick = newTrick()
}

// playerDidPlayCard validates a play against turn order and the follow-suit
// rule, then advances or resolves the trick
func (g *Game) playerDidPlayCard(p *participant, card *deck.Card) error {
	if g.phase != PhasePlaying {
		return ErrWrongPhase
	}

	if g.currentTurn() != p.PlayerID {
		return ErrNotPlayersTurn
	}

	if !p.hand.HasCard(card) {
		return ErrCardNotInHand
	}

	if led := g.trick.ledSuit; led != nil && card.Suit != *led && p.hand.HasSuit(*led) {
		return ErrMustFollowSuit
	}

	if err := p.playCard(card); err != nil {
		return err
	}

	g.trick.addPlay(p, card)

	if g.trick.isComplete() {
		g.resolveTrick()
		return nil
	}

	g.currentTurnIndex = (g.currentTurnIndex + 1) % len(g.turnOrder)
	return nil
}

// resolveTrick awards the trick, rotates the lead to the winner, and either
// deals the next trick or moves to scoring when hands are empty
func (g *Game) resolveTrick() {
	winner := g.trick.winner(g.trumpSuit())
	winner.player.capture(g.trick.cards())

	g.sendLogMessages(playable.SimpleLogMessage(winner.player.PlayerID, "{} won the trick"))

	g.turnOrder = rotateLeft(g.turnOrder, indexOf(g.turnOrder, winner.player.PlayerID))
	g.currentTurnIndex = 0
	g.trick = newTrick()

	if g.isRoundOver() {
		g.startScoring()
	}
}

// trumpSuit returns the contract's trump suit, or nil for no-trump contracts
func (g *Game) trumpSuit() *deck.Suit {
	if g.contract == nil {
		return nil
	}

	return g.contract.Trump
}

func (g *Game) isRoundOver() bool {
	for _, p := range g.participants {
		if len(p.hand) > 0 {
			return false
		}
	}

	return true
}

// startScoring applies the contract score exactly once and waits for every
// player to confirm the results
func (g *Game) startScoring() {
	g.phase = PhaseScoring
	g.roundReadyPlayers = make(map[int64]bool)

	if g.scored {
		return
	}

	deltas := scoreContract(g.contract, g.participants)
	for pid, delta := range deltas {
		g.participants[pid].applyScore(delta)
	}

	g.scored = true
	g.recordRoundHistory()

	g.sendLogMessages(playable.SimpleLogMessage(0, "round %d scored: %s", g.roundNo, g.contract.Type))
}

// recordRoundHistory queues one record per player for the completed round.
// Contract-side players succeed on a positive delta; everyone else succeeds
// on a non-negative one.
func (g *Game) recordRoundHistory() {
	for pid, p := range g.participants {
		success := p.roundScore >= 0
		if g.contract.isPartner(pid) {
			success = p.roundScore > 0
		}

		record := &RoundRecord{
			PlayerID:     pid,
			RoundNo:      g.roundNo,
			ContractType: g.contract.Type,
			Success:      success,
			ScoreDelta:   p.roundScore,
		}

		g.roundLog = append(g.roundLog, record)
		g.pendingRecords = append(g.pendingRecords, record)
	}
}

// PopRoundRecords returns and clears the queued round-history records
func (g *Game) PopRoundRecords() []*RoundRecord {
	records := g.pendingRecords
	g.pendingRecords = nil

	return records
}

// playerIsRoundReady marks a player as ready for the next round. Once every
// seat confirms, the next round is prepared.
func (g *Game) playerIsRoundReady(playerID int64) error {
	if g.phase != PhaseScoring {
		return ErrWrongPhase
	}

	g.roundReadyPlayers[playerID] = true
	if len(g.roundReadyPlayers) < numSeats {
		return nil
	}

	g.prepareNextRound()
	return nil
}

// prepareNextRound advances the dealer button and either deals the next
// round or finishes the game
func (g *Game) prepareNextRound() {
	g.roundNo++
	g.dealerIndex = (g.dealerIndex + 1) % numSeats

	g.contract = nil
	g.auction = nil
	g.trick = nil
	g.cheatVotes = make(map[int64]bool)

	if g.roundNo > g.options.Rounds {
		g.phase = PhaseFinished
		g.sendLogMessages(playable.SimpleLogMessage(0, "game over after %d rounds", g.options.Rounds))
		return
	}

	g.prepareRound()
}

// playerDidVoteCheat records a cheating vote. Once every seat has voted, a
// strict majority of yes votes voids the round, flags every participant, and
// moves the deal on; otherwise the votes are discarded.
func (g *Game) playerDidVoteCheat(playerID int64, vote bool) error {
	if g.phase == PhaseWaiting || g.phase == PhaseFinished {
		return ErrWrongPhase
	}

	if _, ok := g.cheatVotes[playerID]; ok {
		return ErrAlreadyVoted
	}

	g.cheatVotes[playerID] = vote
	if len(g.cheatVotes) < numSeats {
		return nil
	}

	yesVotes := 0
	for _, v := range g.cheatVotes {
		if v {
			yesVotes++
		}
	}

	if yesVotes > numSeats/2 {
		for _, p := range g.participants {
			p.cheatFlags++
		}

		g.sendLogMessages(playable.SimpleLogMessage(0, "round voided: cheating suspected"))
		g.prepareNextRound()
		return nil
	}

	g.cheatVotes = make(map[int64]bool)
	g.sendLogMessages(playable.SimpleLogMessage(0, "cheat vote failed"))

	return nil
}

// GetEndOfGameDetails returns the final settlement once the game finished.
// The pot is the combined buy-ins, split among the players sharing the top
// cumulative score.
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if g.phase != PhaseFinished {
		return nil, false
	}

	maxScore := 0
	first := true
	for _, p := range g.participants {
		if first || p.score > maxScore {
			maxScore = p.score
			first = false
		}
	}

	topPlayers := make([]int64, 0, numSeats)
	for pid, p := range g.participants {
		if p.score == maxScore {
			topPlayers = append(topPlayers, pid)
		}
	}

	winAmount := g.options.BuyIn * numSeats / len(topPlayers)

	adjustments := make(map[int64]int, numSeats)
	for pid := range g.participants {
		adjustments[pid] = -g.options.BuyIn
	}

	for _, pid := range topPlayers {
		adjustments[pid] += winAmount
	}

	return &playable.GameOverDetails{
		BalanceAdjustments: adjustments,
		Log:                g.getGameLog(),
	}, true
}

// currentTurn returns the player whose turn it is
func (g *Game) currentTurn() int64 {
	return g.turnOrder[g.currentTurnIndex%len(g.turnOrder)]
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan == nil {
		return
	}

	// drop log messages rather than block the game on a slow consumer
	select {
	case g.logChan <- msg:
	default:
	}
}

// rotateLeft returns a copy of ids rotated left by n positions
func rotateLeft(ids []int64, n int) []int64 {
	if len(ids) == 0 {
		return nil
	}

	n = ((n % len(ids)) + len(ids)) % len(ids)
	rotated := make([]int64, 0, len(ids))
	rotated = append(rotated, ids[n:]...)
	rotated = append(rotated, ids[:n]...)

	return rotated
}

// indexOf returns the position of id in ids, or 0 if absent
func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}

	return 0
}
