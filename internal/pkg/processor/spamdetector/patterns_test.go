package spamdetector

import (
	"testing"
)

func TestAnalyzeAdditionalPatterns(t *testing.T) {
	t.Run("subscribe phrase with channel nickname", func(t *testing.T) {
		result := AnalyzeAdditionalPatterns("구독하고 좋아요 부탁드려요", "맛집채널TV")
		if !result.Patterns["promotional_phrases"] {
			t.Error("expected promotional_phrases to trigger")
		}
		if !result.Patterns["name_channel_match"] {
			t.Error("expected name_channel_match to trigger")
		}
		if result.PromotionalScore != 2 {
			t.Errorf("expected score 2, got %d", result.PromotionalScore)
		}
		if !result.IsPromotional {
			t.Error("expected two hits to mark the comment promotional")
		}
	})

	t.Run("shouted repeated text", func(t *testing.T) {
		result := AnalyzeAdditionalPatterns("WOWWWW AMAZING", "john")
		if !result.Patterns["repeated_chars"] {
			t.Error("expected repeated_chars to trigger")
		}
		if !result.Patterns["caps_lock_heavy"] {
			t.Error("expected caps_lock_heavy to trigger")
		}
		if !result.IsPromotional {
			t.Error("expected two hits to mark the comment promotional")
		}
	})

	t.Run("emoji flood", func(t *testing.T) {
		result := AnalyzeAdditionalPatterns("😀😀😀😀😀😀", "john")
		if !result.Patterns["excessive_emojis"] {
			t.Error("expected excessive_emojis to trigger")
		}
	})

	t.Run("neutral comment", func(t *testing.T) {
		result := AnalyzeAdditionalPatterns("영상 잘 봤습니다", "김철수")
		if result.PromotionalScore != 0 {
			t.Errorf("expected score 0, got %d (%v)", result.PromotionalScore, result.Patterns)
		}
		if result.IsPromotional {
			t.Error("expected a neutral comment not to be promotional")
		}
	})

	t.Run("single hit is not promotional", func(t *testing.T) {
		result := AnalyzeAdditionalPatterns("구독하고 봐주세요", "김철수")
		if result.PromotionalScore != 1 {
			t.Errorf("expected score 1, got %d (%v)", result.PromotionalScore, result.Patterns)
		}
		if result.IsPromotional {
			t.Error("expected a single hit to stay below the promotional cutoff")
		}
	})
}

func TestHasRepeatedRun(t *testing.T) {
	cases := []struct {
		text     string
		minRun   int
		expected bool
	}{
		{"aaaa", 4, true},
		{"aaab", 4, false},
		{"baaaab", 4, true},
		{"ㅋㅋㅋㅋㅋ", 4, true},
		{"ㅋㅋㅋ", 4, false},
		{"", 4, false},
		{"abab", 2, false},
	}

	for _, c := range cases {
		if got := hasRepeatedRun(c.text, c.minRun); got != c.expected {
			t.Errorf("hasRepeatedRun(%q, %d) = %v, expected %v", c.text, c.minRun, got, c.expected)
		}
	}
}

func TestCountEmoji(t *testing.T) {
	if got := countEmoji("😀😀😀"); got != 3 {
		t.Errorf("expected 3 emoji, got %d", got)
	}
	if got := countEmoji("좋은 영상"); got != 0 {
		t.Errorf("expected 0 emoji, got %d", got)
	}
	// Symbol blocks below U+1F600 are outside the counted range.
	if got := countEmoji("🌟🌟🌟🌟🌟🌟"); got != 0 {
		t.Errorf("expected 0 for sub-U+1F600 symbols, got %d", got)
	}
}

// A flood of symbols below the emoji range does not trip the
// excessive_emojis check.
func TestAnalyzeAdditionalPatternsSymbolFlood(t *testing.T) {
	result := AnalyzeAdditionalPatterns("🌟🌟🌟🌟🌟🌟 좋은 영상", "김철수")
	if result.Patterns["excessive_emojis"] {
		t.Error("expected excessive_emojis not to trigger for sub-range symbols")
	}
}

func TestIsCapsHeavy(t *testing.T) {
	cases := []struct {
		text     string
		expected bool
	}{
		{"HELLO", true},
		{"Hello there", false},
		{"", false},
		{"대박 영상", false}, // Korean text has no ASCII uppercase
	}

	for _, c := range cases {
		if got := isCapsHeavy(c.text); got != c.expected {
			t.Errorf("isCapsHeavy(%q) = %v, expected %v", c.text, got, c.expected)
		}
	}
}
