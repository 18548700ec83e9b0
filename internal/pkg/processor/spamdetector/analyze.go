package spamdetector

import (
	"commentguard/internal/pkg/models"
)

// Spam score at or above which a comment is flagged outright.
const spamScoreThreshold = 6

// Complete per-comment verdict. Created fresh per AnalyzeComment call;
// callers that need it across passes hold on to it themselves.
type CommentAnalysis struct {
	URLs                []models.URLMatch   `json:"urls"`
	YouTubeInfo         []models.YouTubeRef `json:"youtube_info"`
	RiskAnalysis        RiskAnalysis        `json:"risk_analysis"`
	AdditionalPatterns  AdditionalPatterns  `json:"additional_patterns"`
	CombinationAnalysis CombinationAnalysis `json:"combination_analysis"`
	IsSpam              bool                `json:"is_spam"`
	SpamConfidence      int                 `json:"spam_confidence"`
}

// Runs the full single-comment analysis: URL extraction, risk
// classification, promotional patterns, and nickname/content correlation.
// The verdict is disjunctive: any one strong signal flags the comment.
// That trades precision for recall on purpose, so enthusiastic legitimate
// comments can be false positives.
func (d *Detector) AnalyzeComment(commentText, authorName string) CommentAnalysis {
	urls := ExtractURLs(commentText)
	youtubeInfo := ExtractYouTubeInfo(commentText)

	riskAnalysis := d.CategorizeRisks(urls, commentText, authorName)
	additionalPatterns := AnalyzeAdditionalPatterns(commentText, authorName)
	combinationAnalysis := AnalyzeNicknameContentCombination(authorName, commentText)

	totalSpamScore := riskAnalysis.TotalRiskScore +
		float64(additionalPatterns.PromotionalScore)*2 +
		float64(combinationAnalysis.CombinationScore)

	spamConfidence := int(totalSpamScore * 4)
	if spamConfidence > 100 {
		spamConfidence = 100
	}

	return CommentAnalysis{
		URLs:                urls,
		YouTubeInfo:         youtubeInfo,
		RiskAnalysis:        riskAnalysis,
		AdditionalPatterns:  additionalPatterns,
		CombinationAnalysis: combinationAnalysis,
		IsSpam: totalSpamScore >= spamScoreThreshold ||
			riskAnalysis.IsSuspicious ||
			additionalPatterns.IsPromotional,
		SpamConfidence: spamConfidence,
	}
}
