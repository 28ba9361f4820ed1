package generate

import "unicode/utf8"

// safetyMargin is reserved on top of the system prompt for the response and
// estimation error.
const safetyMargin = 1000

// CharCeiling converts the tokens left after the system prompt into a
// character ceiling for the user turn. It is never negative.
func CharCeiling(contextWindow, systemTokens int) int {
	budget := contextWindow - systemTokens - safetyMargin
	return max(0, budget*charsPerToken)
}

// FitDiff truncates diff so that len(diffstat)+len(diff) fits ceiling.
// The diffstat is never shortened; the cut lands on a UTF-8 boundary.
func FitDiff(diffstat, diff string, ceiling int) (string, bool) {
	if len(diffstat)+len(diff) <= ceiling {
		return diff, false
	}
	limit := max(0, ceiling-len(diffstat))
	for limit > 0 && !utf8.RuneStart(diff[limit]) {
		limit--
	}
	return diff[:limit], true
}
