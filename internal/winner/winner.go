// Package winner implements the winner resolver from spec.md §4.7.
package winner

// Record is the subset of a player record the resolver needs.
type Record struct {
	Index        int
	Score        uint32
	ValidMoves   uint32
	InvalidMoves uint32
}

// Resolve returns the indices of every player matching the winning
// three-key tiebreak: max score, then min valid moves, then min
// invalid moves. Ties surviving all three keys are all winners.
func Resolve(records []Record) []int {
	if len(records) == 0 {
		return nil
	}

	maxScore := records[0].Score
	for _, r := range records[1:] {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	var byScore []Record
	for _, r := range records {
		if r.Score == maxScore {
			byScore = append(byScore, r)
		}
	}

	minValid := byScore[0].ValidMoves
	for _, r := range byScore[1:] {
		if r.ValidMoves < minValid {
			minValid = r.ValidMoves
		}
	}

	var byValid []Record
	for _, r := range byScore {
		if r.ValidMoves == minValid {
			byValid = append(byValid, r)
		}
	}

	minInvalid := byValid[0].InvalidMoves
	for _, r := range byValid[1:] {
		if r.InvalidMoves < minInvalid {
			minInvalid = r.InvalidMoves
		}
	}

	var winners []int
	for _, r := range byValid {
		if r.InvalidMoves == minInvalid {
			winners = append(winners, r.Index)
		}
	}
	return winners
}
