package spamdetector

import (
	"strings"
	"unicode/utf8"
)

// Lightweight promotional-pattern checks. Each hit counts 1 toward the
// promotional score; the score is weighted double in the final verdict.
type AdditionalPatterns struct {
	Patterns         map[string]bool `json:"patterns"`
	PromotionalScore int             `json:"promotional_score"`
	IsPromotional    bool            `json:"is_promotional"`
}

var promotionalPhrases = []string{"구독하고", "좋아요하고", "팔로우하고", "내 채널", "제 채널"}

var channelNameMarkers = []string{"채널", "tv", "방송"}
var subscribeMarkers = []string{"구독", "좋아요"}

// Checks the comment text and author name for cheap promotional tells:
// repeated character runs, emoji flooding, shouting, canned subscribe
// phrases, and a channel-style name paired with subscribe bait.
func AnalyzeAdditionalPatterns(commentText, authorName string) AdditionalPatterns {
	textLower := strings.ToLower(commentText)
	authorLower := strings.ToLower(authorName)

	patterns := map[string]bool{
		"repeated_chars":      hasRepeatedRun(commentText, 4),
		"excessive_emojis":    countEmoji(commentText) > 5,
		"caps_lock_heavy":     isCapsHeavy(commentText),
		"promotional_phrases": containsAny(textLower, promotionalPhrases),
		"name_channel_match":  containsAny(authorLower, channelNameMarkers) && containsAny(textLower, subscribeMarkers),
	}

	score := 0
	for _, hit := range patterns {
		if hit {
			score++
		}
	}

	return AdditionalPatterns{
		Patterns:         patterns,
		PromotionalScore: score,
		IsPromotional:    score >= 2,
	}
}

// Reports whether the text contains a run of minRun or more identical
// runes. RE2 has no backreferences, so this is a plain scan.
func hasRepeatedRun(text string, minRun int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= minRun {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// Counts runes in U+1F600 through U+1FFFF. Symbol blocks below U+1F600
// (weather, transport) do not count toward the emoji flood check.
func countEmoji(text string) int {
	count := 0
	for _, r := range text {
		if r >= 0x1F600 && r <= 0x1FFFF {
			count++
		}
	}
	return count
}

// More than half the characters are ASCII uppercase.
func isCapsHeavy(text string) bool {
	if text == "" {
		return false
	}
	upper := 0
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	return float64(upper) > float64(utf8.RuneCountInString(text))*0.5
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
