package listbox

// NoActive is the active index when no option is active
const NoActive = -1

// NextIndex returns the position after i, wrapping to 0 past the end.
// n must be positive.
func NextIndex(i, n int) int {
	return (i + 1) % n
}

// PreviousIndex returns the position before i, wrapping to n-1 before the
// start. From NoActive it lands on the last option. n must be positive.
func PreviousIndex(i, n int) int {
	if i == NoActive {
		return n - 1
	}
	return (i - 1 + n) % n
}
