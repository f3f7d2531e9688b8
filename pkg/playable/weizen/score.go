package weizen

// scoreContract computes the per-player round deltas for the contract.
// It is a pure function of the contract, tricks won, and captured cards;
// applying the deltas is the caller's job.
func scoreContract(contract *Contract, participants map[int64]*participant) map[int64]int {
	switch contract.Type {
	case BidVraag, BidMeegaan:
		return scoreVraagMeegaan(contract, participants)
	case BidAlleenGaan:
		return scoreAlleenGaan(contract, participants)
	case BidGeenDames:
		return scoreGeenDames(participants)
	case BidPico:
		return scorePico(participants)
	case BidMisere, BidOpenMisere:
		return scoreMisere(contract, participants)
	case BidTroel:
		return scoreTroel(contract, participants)
	case BidAbondance, BidAbondanceInTroef:
		return scoreAbondance(contract, participants)
	case BidSoloSlim:
		return scoreSoloSlim(contract, participants)
	}

	return map[int64]int{}
}

// scoreVraagMeegaan scores the asking pair (or the solo asker if no one
// accepted). 8–12 team tricks pay tricks−6 per partner, 13 pays 14, fewer
// than 8 costs tricks−7. Opponents mirror the inverse.
func scoreVraagMeegaan(contract *Contract, participants map[int64]*participant) map[int64]int {
	teamTricks := 0
	for _, pid := range contract.Partners {
		teamTricks += participants[pid].tricksWon
	}

	var perPartner int
	switch {
	case teamTricks >= 8 && teamTricks <= 12:
		perPartner = teamTricks - 6
	case teamTricks == 13:
		perPartner = 14
	default:
		perPartner = teamTricks - 7
	}

	deltas := make(map[int64]int)
	for pid := range participants {
		if contract.isPartner(pid) {
			deltas[pid] = perPartner
		} else {
			deltas[pid] = -perPartner
		}
	}

	return deltas
}

// scoreAlleenGaan pays 6 plus 3 per overtrick (capped at 30) for five or
// more tricks; each opponent covers a third of the gain. Failure costs the
// bidder 6 and pays each opponent 2.
func scoreAlleenGaan(contract *Contract, participants map[int64]*participant) map[int64]int {
	tricks := participants[contract.BidderID].tricksWon
	deltas := make(map[int64]int)

	if tricks >= 5 {
		gain := 6 + (tricks-5)*3
		if gain > 30 {
			gain = 30
		}

		lossPerOpponent := gain / 3
		for pid := range participants {
			if pid == contract.BidderID {
				deltas[pid] = gain
			} else {
				deltas[pid] = -lossPerOpponent
			}
		}

		return deltas
	}

	for pid := range participants {
		if pid == contract.BidderID {
			deltas[pid] = -6
		} else {
			deltas[pid] = 2
		}
	}

	return deltas
}

// scoreGeenDames penalizes 4 points per captured queen and splits the
// penalty pool evenly among the players who captured none
func scoreGeenDames(participants map[int64]*participant) map[int64]int {
	deltas := make(map[int64]int)
	totalPenalty := 0
	clean := make([]int64, 0, numSeats)

	for pid, p := range participants {
		penalty := p.queensCaptured() * 4
		totalPenalty += penalty
		deltas[pid] = -penalty
		if penalty == 0 {
			clean = append(clean, pid)
		}
	}

	if len(clean) > 0 {
		split := totalPenalty / len(clean)
		for _, pid := range clean {
			deltas[pid] = split
		}
	}

	return deltas
}

// scorePico pays players who took zero tricks: one winner gets 15 and the
// rest lose 5; two winners get 10 each and the rest lose 5; any other
// winner count leaves all scores unchanged
func scorePico(participants map[int64]*participant) map[int64]int {
	winners := make([]int64, 0, numSeats)
	for pid, p := range participants {
		if p.tricksWon == 0 {
			winners = append(winners, pid)
		}
	}

	deltas := make(map[int64]int)
	var winAmount int
	switch len(winners) {
	case 1:
		winAmount = 15
	case 2:
		winAmount = 10
	default:
		for pid := range participants {
			deltas[pid] = 0
		}
		return deltas
	}

	isWinner := make(map[int64]bool, len(winners))
	for _, pid := range winners {
		isWinner[pid] = true
	}

	for pid := range participants {
		if isWinner[pid] {
			deltas[pid] = winAmount
		} else {
			deltas[pid] = -5
		}
	}

	return deltas
}

// scoreMisere pays 15 to a bidder who took no tricks with each opponent
// losing 5; the payouts invert on failure
func scoreMisere(contract *Contract, participants map[int64]*participant) map[int64]int {
	success := participants[contract.BidderID].tricksWon == 0

	deltas := make(map[int64]int)
	for pid := range participants {
		if pid == contract.BidderID {
			if success {
				deltas[pid] = 15
			} else {
				deltas[pid] = -15
			}
		} else {
			if success {
				deltas[pid] = -5
			} else {
				deltas[pid] = 5
			}
		}
	}

	return deltas
}

// scoreTroel scores the ace pair by team tricks: 13 pays 28 per partner,
// 9 or more pays 6 plus 2 per trick over 9, exactly 8 pays 4, fewer costs 4.
// Opponents mirror the inverse.
func scoreTroel(contract *Contract, participants map[int64]*participant) map[int64]int {
	teamTricks := 0
	for _, pid := range contract.Partners {
		teamTricks += participants[pid].tricksWon
	}

	var perPartner int
	switch {
	case teamTricks == 13:
		perPartner = 28
	case teamTricks >= 9:
		perPartner = 6 + (teamTricks-9)*2
	case teamTricks == 8:
		perPartner = 4
	default:
		perPartner = -4
	}

	deltas := make(map[int64]int)
	for pid := range participants {
		if contract.isPartner(pid) {
			deltas[pid] = perPartner
		} else {
			deltas[pid] = -perPartner
		}
	}

	return deltas
}

// scoreAbondance pays the bidder on a 9-trick ladder (12/15/18/24/30) and
// costs 12 below nine tricks; each opponent covers a third of the reward
// in the opposite sign
func scoreAbondance(contract *Contract, participants map[int64]*participant) map[int64]int {
	tricks := participants[contract.BidderID].tricksWon

	var reward int
	switch {
	case tricks < 9:
		reward = -12
	case tricks == 9:
		reward = 12
	case tricks == 10:
		reward = 15
	case tricks == 11:
		reward = 18
	case tricks == 12:
		reward = 24
	default:
		reward = 30
	}

	opponentShare := reward / 3
	if reward < 0 {
		opponentShare = -(-reward / 3)
	}

	deltas := make(map[int64]int)
	for pid := range participants {
		if pid == contract.BidderID {
			deltas[pid] = reward
		} else {
			deltas[pid] = -opponentShare
		}
	}

	return deltas
}

// scoreSoloSlim pays 39 for all thirteen tricks with each opponent losing
// 13; anything less inverts the payout
func scoreSoloSlim(contract *Contract, participants map[int64]*participant) map[int64]int {
	success := participants[contract.BidderID].tricksWon == 13

	deltas := make(map[int64]int)
	for pid := range participants {
		if pid == contract.BidderID {
			if success {
				deltas[pid] = 39
			} else {
				deltas[pid] = -39
			}
		} else {
			if success {
				deltas[pid] = -13
			} else {
				deltas[pid] = 13
			}
		}
	}

	return deltas
}
