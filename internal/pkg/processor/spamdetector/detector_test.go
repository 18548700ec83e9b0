package spamdetector

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"commentguard/internal/pkg/logger"
)

func init() {
	// Ensure that the logger is not nil during tests.
	logger.Log = zap.NewNop()
}

func TestAnalyzeNickname(t *testing.T) {
	detector := NewDetector()

	cases := []struct {
		nickname    string
		score       int
		containsURL bool
	}{
		{"김철수", 0, false},
		{"공식채널TV", 6, false},    // 채널 +2, tv twice in the table +4
		{"엔터TV", 4, false},       // the doubled tv entry alone
		{"www.spam.com", 9, true}, // .com +2, www. +2, contains_url +5
	}

	for _, c := range cases {
		analysis := detector.AnalyzeNickname(c.nickname)
		if analysis.SuspicionScore != c.score {
			t.Errorf("AnalyzeNickname(%q): expected score %d, got %d (patterns: %v)",
				c.nickname, c.score, analysis.SuspicionScore, analysis.DetectedPatterns)
		}
		if analysis.ContainsURL != c.containsURL {
			t.Errorf("AnalyzeNickname(%q): expected ContainsURL %v, got %v",
				c.nickname, c.containsURL, analysis.ContainsURL)
		}
	}
}

// A shortener link surrounded by promotion keywords must accumulate both
// the domain risk and the context-window keyword risk.
func TestAnalyzeCommentURLSpam(t *testing.T) {
	detector := NewDetector()

	analysis := detector.AnalyzeComment("내 채널 구독 http://bit.ly/abc", "john")

	if !analysis.IsSpam {
		t.Error("expected the comment to be flagged as spam")
	}
	if !analysis.RiskAnalysis.IsSuspicious {
		t.Error("expected the comment to be suspicious")
	}
	if analysis.RiskAnalysis.SuspicionLevel != "high" {
		t.Errorf("expected suspicion level 'high', got %q", analysis.RiskAnalysis.SuspicionLevel)
	}
	if analysis.SpamConfidence != 100 {
		t.Errorf("expected spam confidence capped at 100, got %d", analysis.SpamConfidence)
	}
	if len(analysis.URLs) < 2 {
		t.Errorf("expected overlapping URL hits, got %d", len(analysis.URLs))
	}

	categories := make(map[string]bool)
	for _, category := range analysis.RiskAnalysis.DetectedCategories {
		categories[category] = true
	}
	if !categories["promotion"] {
		t.Error("expected the promotion category to be detected")
	}
	if !categories["malicious"] {
		t.Error("expected the malicious category to be detected (shortener domain)")
	}
}

// The verdict is disjunctive: any one of the three signal groups can flag
// a comment on its own.
func TestAnalyzeCommentDisjunctiveVerdict(t *testing.T) {
	detector := NewDetector()

	t.Run("clean comment", func(t *testing.T) {
		analysis := detector.AnalyzeComment("오늘 날씨가 좋네요", "김철수")
		if analysis.IsSpam {
			t.Errorf("expected clean comment not to be flagged: %+v", analysis)
		}
		if analysis.SpamConfidence != 0 {
			t.Errorf("expected zero confidence, got %d", analysis.SpamConfidence)
		}
	})

	t.Run("promotional patterns alone", func(t *testing.T) {
		analysis := detector.AnalyzeComment("GOOOOD VIDEO NICE", "john")
		if !analysis.AdditionalPatterns.IsPromotional {
			t.Fatalf("expected promotional patterns to trigger: %+v", analysis.AdditionalPatterns)
		}
		if analysis.RiskAnalysis.IsSuspicious {
			t.Error("expected no risk suspicion for this case")
		}
		if !analysis.IsSpam {
			t.Error("expected the promotional signal alone to flag the comment")
		}
	})

	t.Run("risk analysis alone", func(t *testing.T) {
		analysis := detector.AnalyzeComment("여기 클릭 http://bit.ly/abc", "클릭왕")
		if !analysis.RiskAnalysis.IsSuspicious {
			t.Fatal("expected URL risk to make the comment suspicious")
		}
		if analysis.AdditionalPatterns.IsPromotional {
			t.Error("expected no promotional-pattern hit for this case")
		}
		if analysis.CombinationAnalysis.CombinationScore != 0 {
			t.Errorf("expected no combination score, got %d", analysis.CombinationAnalysis.CombinationScore)
		}
		if !analysis.IsSpam {
			t.Error("expected the risk signal alone to flag the comment")
		}
	})

	t.Run("nickname combination alone", func(t *testing.T) {
		analysis := detector.AnalyzeComment("영상 잘 봤습니다", "다크레드")
		if analysis.CombinationAnalysis.CombinationScore != 6 {
			t.Fatalf("expected combination score 6 for paired keywords, got %d (%v)",
				analysis.CombinationAnalysis.CombinationScore,
				analysis.CombinationAnalysis.DetectedPatterns)
		}
		if analysis.RiskAnalysis.IsSuspicious {
			t.Error("expected the nickname risk alone to stay below the suspicion cutoff")
		}
		if !analysis.IsSpam {
			t.Error("expected the combined score to flag the comment")
		}
	})
}

// One detector instance is shared by every worker goroutine; concurrent
// analyses must produce the same verdicts as sequential ones.
func TestAnalyzeCommentConcurrent(t *testing.T) {
	detector := NewDetector()

	inputs := []struct {
		text   string
		author string
	}{
		{"내 채널 구독 http://bit.ly/abc", "john"},
		{"여기 클릭 http://bit.ly/abc", "클릭왕"},
		{"오늘 날씨가 좋네요", "김철수"},
		{"무료 이벤트 당첨 확인하세요", "공식채널TV"},
	}

	expected := make([]CommentAnalysis, len(inputs))
	for i, input := range inputs {
		expected[i] = detector.AnalyzeComment(input.text, input.author)
	}

	const goroutines = 8
	const iterations = 50

	var wg sync.WaitGroup
	errCh := make(chan string, goroutines)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				for j, input := range inputs {
					got := detector.AnalyzeComment(input.text, input.author)
					if got.IsSpam != expected[j].IsSpam ||
						got.SpamConfidence != expected[j].SpamConfidence ||
						got.RiskAnalysis.TotalRiskScore != expected[j].RiskAnalysis.TotalRiskScore {
						select {
						case errCh <- input.text:
						default:
						}
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	select {
	case text := <-errCh:
		t.Errorf("concurrent analysis diverged from sequential result for %q", text)
	default:
	}
}

func TestSuspicionLevel(t *testing.T) {
	cases := []struct {
		score    float64
		expected string
	}{
		{0, "safe"},
		{2.9, "safe"},
		{3, "low"},
		{7.9, "low"},
		{8, "medium"},
		{14.9, "medium"},
		{15, "high"},
		{40, "high"},
	}

	for _, c := range cases {
		if got := suspicionLevel(c.score); got != c.expected {
			t.Errorf("suspicionLevel(%v) = %q, expected %q", c.score, got, c.expected)
		}
	}
}

func TestResolveDomain(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"http://bit.ly/abc", "bit.ly"},
		{"https://WWW.Example.COM/path", "www.example.com"},
		{"BIT.LY/ABC", "bit.ly/abc"},
	}

	for _, c := range cases {
		if got := resolveDomain(c.raw); got != c.expected {
			t.Errorf("resolveDomain(%q) = %q, expected %q", c.raw, got, c.expected)
		}
	}
}

func TestRuneWindowClamping(t *testing.T) {
	runes := []rune("가나다라마")

	if got := runeWindow(runes, -10, 3); got != "가나다" {
		t.Errorf("expected clamped window %q, got %q", "가나다", got)
	}
	if got := runeWindow(runes, 2, 100); got != "다라마" {
		t.Errorf("expected clamped window %q, got %q", "다라마", got)
	}
	if got := runeWindow(runes, 4, 2); got != "" {
		t.Errorf("expected empty window for inverted range, got %q", got)
	}
}
