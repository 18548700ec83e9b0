package spamdetector

import (
	"fmt"
	"regexp"
	"strings"
)

// Result of cross-checking the author display name against the comment
// text. Every rule is additive and independently triggerable.
type CombinationAnalysis struct {
	CombinationScore int      `json:"combination_score"`
	DetectedPatterns []string `json:"detected_patterns"`
}

// Promotional phrases that pair with channel-style nicknames.
var channelPromotionPhrases = []string{"기억해주세요", "꼭 기억", "잊지 말아", "기억하고", "꼭 잊지"}

// Adult slang markers matched literally against the comment text.
var adultSlangPhrases = []string{"상남자", "선물ㄱㄱ", "핵불닭맛", "걸..ㄹ", "난리났던"}

// Nickname keywords that in combination (two or more) mark bot accounts.
var comboSuspiciousKeywords = []string{"DOPAMIN", "HIGH", "NEW", "PAIMIUM", "레드", "다크", "클릭", "ON팬", "사건"}

var (
	channelNickname  = regexp.MustCompile(`(?i)체?널`)
	adultNickname    = regexp.MustCompile(`(?i)(19금|l9금)`)
	singleCharSuffix = regexp.MustCompile(`-[a-zA-Z]$`)
	consonantRun     = regexp.MustCompile(`[ㄱ-ㅎ]{2,}`)
	wordToken        = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Scores coordinated-spam signals between the nickname and the comment
// text. This is a fixed heuristic rule bank, not a learned model.
func AnalyzeNicknameContentCombination(nickname, commentText string) CombinationAnalysis {
	analysis := CombinationAnalysis{}

	// Channel-style nickname plus "remember me" phrasing in the comment.
	if channelNickname.MatchString(nickname) {
		for _, phrase := range channelPromotionPhrases {
			if strings.Contains(commentText, phrase) {
				analysis.CombinationScore += 8
				analysis.DetectedPatterns = append(analysis.DetectedPatterns,
					"channel_name_with_promotion: "+phrase)
			}
		}
	}

	if adultNickname.MatchString(nickname) {
		analysis.CombinationScore += 10
		analysis.DetectedPatterns = append(analysis.DetectedPatterns, "adult_content_in_nickname")
	}

	nicknameUpper := strings.ToUpper(nickname)
	keywordCount := 0
	for _, keyword := range comboSuspiciousKeywords {
		if strings.Contains(nicknameUpper, keyword) {
			keywordCount++
		}
	}
	if keywordCount >= 2 {
		analysis.CombinationScore += 6
		analysis.DetectedPatterns = append(analysis.DetectedPatterns,
			fmt.Sprintf("multiple_suspicious_keywords: %d", keywordCount))
	}

	if strings.Count(nickname, "-") >= 3 {
		analysis.CombinationScore += 5
		analysis.DetectedPatterns = append(analysis.DetectedPatterns, "multiple_hyphens_in_nickname")
	}

	// Botnames often end in "-x" style single-letter suffixes.
	if singleCharSuffix.MatchString(nickname) {
		analysis.CombinationScore += 4
		analysis.DetectedPatterns = append(analysis.DetectedPatterns, "single_char_suffix")
	}

	for _, slang := range adultSlangPhrases {
		if strings.Contains(commentText, slang) {
			analysis.CombinationScore += 6
			analysis.DetectedPatterns = append(analysis.DetectedPatterns,
				"adult_slang_detected: "+slang)
		}
	}

	// Runs of bare Korean consonants (keyboard mashing, ㄱㄱ / ㄹㅇ style).
	if runs := consonantRun.FindAllString(commentText, -1); len(runs) > 0 {
		analysis.CombinationScore += 3
		analysis.DetectedPatterns = append(analysis.DetectedPatterns,
			"consonant_pattern: "+strings.Join(runs, ","))
	}

	if strings.HasPrefix(strings.TrimSpace(commentText), "👈") {
		analysis.CombinationScore += 5
		analysis.DetectedPatterns = append(analysis.DetectedPatterns, "emoji_spam_start")
	}

	// Nickname words echoed in the comment body.
	nicknameWords := wordSet(nickname)
	if len(nicknameWords) > 0 {
		commentWords := wordSet(commentText)
		overlap := 0
		for word := range nicknameWords {
			if commentWords[word] {
				overlap++
			}
		}
		ratio := float64(overlap) / float64(len(nicknameWords))
		if ratio > 0.5 {
			analysis.CombinationScore += 4
			analysis.DetectedPatterns = append(analysis.DetectedPatterns,
				fmt.Sprintf("high_nickname_comment_overlap: %.2f", ratio))
		}
	}

	return analysis
}

func wordSet(text string) map[string]bool {
	words := wordToken.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
