package arbiter

// selectRoundRobin picks one ready player starting the scan at
// startIndex, wrapping modulo playerCount, per spec.md §4.6 step 5:
// "choose one ready player by round-robin starting from start_index."
// It returns -1, false if no player in ready is actually ready.
func selectRoundRobin(playerCount, startIndex int, ready []bool) (int, bool) {
	for step := 0; step < playerCount; step++ {
		idx := (startIndex + step) % playerCount
		if idx < len(ready) && ready[idx] {
			return idx, true
		}
	}
	return -1, false
}

// nextStartIndex advances start_index by one modulo player_count, per
// spec.md §4.6 step 5. The scheduler calls it after every dispatch to a
// ready player, including one whose read turned out to be spurious.
func nextStartIndex(current, playerCount int) int {
	return (current + 1) % playerCount
}
