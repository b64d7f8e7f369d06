package person

import (
	"fmt"
	"math"
	"strings"
)

// Result reports how confidently two names refer to the same person, with a
// justification for every signal that contributed. Reasons are appended in
// evaluation order and never reordered.
type Result struct {
	Score   int
	Reasons []string
}

// Signal weights and thresholds. Empirically tuned against labeled
// attendance exports; treat as a matched set when adjusting.
const (
	weightFirstExact    = 40
	weightLastExact     = 40
	weightContains      = 25
	weightContained     = 20
	weightBothTokens    = 20
	weightOneToken      = 10
	weightInitials      = 5
	reversedScoreFloor  = 85
	fuzzyTokenThreshold = 80.0
	nearMissThreshold   = 60.0
	firstFuzzyFactor    = 0.3
	lastFuzzyFactor     = 0.4
	nearMissFactor      = 0.3
)

// Similarity scores two free-text names on a 0-100 scale. Inputs are
// normalized internally; blank names score zero.
func Similarity(a, b string) Result {
	normA := Normalize(a)
	normB := Normalize(b)
	if normA == "" || normB == "" {
		return Result{}
	}
	if normA == normB {
		return Result{Score: 100, Reasons: []string{"Exact name match"}}
	}

	firstA, lastA, _ := Split(normA)
	firstB, lastB, _ := Split(normB)

	var res Result
	score := 0

	if firstA != "" && firstA == firstB {
		score += weightFirstExact
		res.Reasons = append(res.Reasons, "First name matches")
	} else if sim := TokenSimilarity(firstA, firstB); sim >= fuzzyTokenThreshold && sim < 100 {
		score += int(math.Round(sim * firstFuzzyFactor))
		res.Reasons = append(res.Reasons, fmt.Sprintf("First name similar (%.0f%%)", sim))
	}

	if lastA != "" && lastA == lastB {
		score += weightLastExact
		res.Reasons = append(res.Reasons, "Last name matches")
	} else if sim := TokenSimilarity(lastA, lastB); sim >= fuzzyTokenThreshold && sim < 100 {
		score += int(math.Round(sim * lastFuzzyFactor))
		res.Reasons = append(res.Reasons, fmt.Sprintf("Last name similar (%.0f%%)", sim))
	} else if sim >= nearMissThreshold {
		// Catches near-miss surnames like Adamson vs Adams.
		score += int(math.Round(sim * nearMissFactor))
		res.Reasons = append(res.Reasons, fmt.Sprintf("Last name close (%.0f%%)", sim))
	}

	if strings.Contains(normA, normB) {
		score += weightContains
		res.Reasons = append(res.Reasons, "Name contains the other")
	} else if strings.Contains(normB, normA) {
		score += weightContained
		res.Reasons = append(res.Reasons, "Name contained in the other")
	}

	switch countTokensPresent(normA, firstB, lastB) {
	case 2:
		score += weightBothTokens
		res.Reasons = append(res.Reasons, "Both name parts present")
	case 1:
		score += weightOneToken
		res.Reasons = append(res.Reasons, "One name part present")
	}

	if firstA != "" && lastA != "" && firstA == lastB && lastA == firstB {
		if score < reversedScoreFloor {
			score = reversedScoreFloor
		}
		res.Reasons = append(res.Reasons, "Name tokens in reversed order")
	}

	if initials(firstA, lastA) != "" && initials(firstA, lastA) == initials(firstB, lastB) {
		score += weightInitials
		res.Reasons = append(res.Reasons, "Initials match")
	}

	if score > 100 {
		score = 100
	}
	res.Score = score
	return res
}

// TokenSimilarity scores two tokens as 100*(maxLen-editDistance)/maxLen.
// Identical tokens score 100; an empty token against anything scores 0.
func TokenSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	dist := Levenshtein(a, b)
	if dist >= maxLen {
		return 0
	}
	return 100 * float64(maxLen-dist) / float64(maxLen)
}

// Levenshtein computes the classic single-character edit distance where
// insertion, deletion, and substitution each cost one.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func countTokensPresent(haystack string, tokens ...string) int {
	count := 0
	for _, token := range tokens {
		if token != "" && strings.Contains(haystack, token) {
			count++
		}
	}
	return count
}

func initials(first, last string) string {
	if first == "" || last == "" {
		return ""
	}
	return string([]rune(first)[0]) + string([]rune(last)[0])
}
