package spamdetector

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"go.uber.org/zap"

	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/models"
)

// Fixed iteration order over the category table so that scores and
// detected-category lists come out deterministic.
var categoryOrder = []RiskCategory{
	CategoryAdultContent,
	CategoryPromotion,
	CategoryMalicious,
	CategoryGambling,
	CategoryScam,
	CategoryCommercial,
	CategorySuspiciousContent,
	CategoryAdultSlang,
}

// Width of the context window around an extracted URL, in runes.
const urlContextWindow = 50

// Risk score at or above which a comment counts as suspicious.
const suspiciousRiskThreshold = 6

// Detects URL spam and risky keyword context in comment text.
// All category keywords share a single Aho-Corasick automaton; matches are
// mapped back to their categories through keywordRefs.
type Detector struct {
	matcher     *ahocorasick.Matcher
	keywords    []string
	keywordRefs map[string][]RiskCategory
	nicknameRes []*regexp.Regexp
}

// Per-URL risk breakdown.
type URLRisk struct {
	URL        string   `json:"url"`
	Domain     string   `json:"domain"`
	Categories []string `json:"categories"`
	RiskScore  float64  `json:"risk_score"`
}

// Whole-text keyword risk.
type TextRisk struct {
	RiskScore  float64  `json:"risk_score"`
	Categories []string `json:"categories"`
}

// Author display-name risk.
type NicknameAnalysis struct {
	SuspicionScore   int               `json:"suspicion_score"`
	DetectedPatterns []string          `json:"detected_patterns"`
	ContainsURL      bool              `json:"contains_url"`
	URLs             []models.URLMatch `json:"urls,omitempty"`
}

// Combined risk classification for one comment.
type RiskAnalysis struct {
	TotalRiskScore     float64          `json:"total_risk_score"`
	DetectedCategories []string         `json:"detected_categories"`
	URLAnalysis        []URLRisk        `json:"url_analysis"`
	TextAnalysis       TextRisk         `json:"text_analysis"`
	NicknameAnalysis   NicknameAnalysis `json:"nickname_analysis"`
	IsSuspicious       bool             `json:"is_suspicious"`
	SuspicionLevel     string           `json:"suspicion_level"`
}

// Creates a new detector with the static category and nickname tables.
func NewDetector() *Detector {
	// Collect the distinct keywords of every category and remember which
	// categories each keyword belongs to.
	keywordRefs := make(map[string][]RiskCategory)
	var keywords []string
	for _, category := range categoryOrder {
		for _, keyword := range riskCategories[category].keywords {
			lowered := strings.ToLower(keyword)
			if _, seen := keywordRefs[lowered]; !seen {
				keywords = append(keywords, lowered)
			}
			keywordRefs[lowered] = append(keywordRefs[lowered], category)
		}
	}

	patterns := make([][]byte, len(keywords))
	for i, keyword := range keywords {
		patterns[i] = []byte(keyword)
	}

	nicknameRes := make([]*regexp.Regexp, len(suspiciousNicknamePatterns))
	for i, pattern := range suspiciousNicknamePatterns {
		nicknameRes[i] = regexp.MustCompile(`(?i)` + pattern)
	}

	if logger.Log != nil {
		logger.Log.Info("Initializing URL spam detector",
			zap.Int("keyword_count", len(keywords)),
			zap.Int("category_count", len(categoryOrder)),
			zap.Int("nickname_pattern_count", len(nicknameRes)))
	}

	return &Detector{
		matcher:     ahocorasick.NewMatcher(patterns),
		keywords:    keywords,
		keywordRefs: keywordRefs,
		nicknameRes: nicknameRes,
	}
}

// Runs the automaton over the text and returns the set of category
// keywords present. Matching is case-insensitive; presence only, not
// occurrence counts. One Detector is shared by all workers, and plain
// Match mutates per-node state, so the thread-safe variant is required.
func (d *Detector) matchKeywords(text string) map[string]bool {
	if text == "" {
		return nil
	}
	hits := d.matcher.MatchThreadSafe([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return nil
	}
	found := make(map[string]bool, len(hits))
	for _, hit := range hits {
		found[d.keywords[hit]] = true
	}
	return found
}

// Scores the author display name against the static nickname patterns
// (+2 per match) and penalizes names that themselves contain a URL (+5).
func (d *Detector) AnalyzeNickname(nickname string) NicknameAnalysis {
	analysis := NicknameAnalysis{}

	for i, re := range d.nicknameRes {
		if re.MatchString(nickname) {
			analysis.SuspicionScore += 2
			analysis.DetectedPatterns = append(analysis.DetectedPatterns, suspiciousNicknamePatterns[i])
		}
	}

	urls := ExtractURLs(nickname)
	if len(urls) > 0 {
		analysis.SuspicionScore += 5
		analysis.DetectedPatterns = append(analysis.DetectedPatterns, "contains_url")
		analysis.ContainsURL = true
		analysis.URLs = urls
	}
	return analysis
}

// Classifies the extracted URLs and the surrounding text into risk
// categories. Three additive contributions: per-URL domain/context risk,
// whole-text keyword risk, and nickname risk.
func (d *Detector) CategorizeRisks(urls []models.URLMatch, commentText, authorName string) RiskAnalysis {
	totalRisk := 0.0
	categorySet := make(map[string]bool)
	urlAnalysis := make([]URLRisk, 0, len(urls))

	textRunes := []rune(commentText)

	for _, urlInfo := range urls {
		urlRisk := URLRisk{
			URL:    urlInfo.URL,
			Domain: resolveDomain(urlInfo.URL),
		}

		// Keywords count when they appear within the context window
		// around the URL, not just inside the URL itself.
		window := runeWindow(textRunes, urlInfo.Start-urlContextWindow, urlInfo.End+urlContextWindow)
		windowHits := d.matchKeywords(window)

		for _, category := range categoryOrder {
			config := riskCategories[category]
			categoryRisk := 0.0

			for _, domain := range config.domains {
				if strings.Contains(urlRisk.Domain, domain) {
					categoryRisk += float64(config.riskScore)
					urlRisk.Categories = appendUnique(urlRisk.Categories, string(category))
					break
				}
			}

			for _, keyword := range config.keywords {
				if windowHits[strings.ToLower(keyword)] {
					categoryRisk += float64(config.riskScore) * 0.5
					urlRisk.Categories = appendUnique(urlRisk.Categories, string(category))
				}
			}

			urlRisk.RiskScore += categoryRisk
		}

		urlAnalysis = append(urlAnalysis, urlRisk)
		totalRisk += urlRisk.RiskScore
		for _, category := range urlRisk.Categories {
			categorySet[category] = true
		}
	}

	textRisk := d.analyzeTextKeywords(commentText)
	totalRisk += textRisk.RiskScore
	for _, category := range textRisk.Categories {
		categorySet[category] = true
	}

	nicknameAnalysis := d.AnalyzeNickname(authorName)
	totalRisk += float64(nicknameAnalysis.SuspicionScore)

	return RiskAnalysis{
		TotalRiskScore:     totalRisk,
		DetectedCategories: orderedCategories(categorySet),
		URLAnalysis:        urlAnalysis,
		TextAnalysis:       textRisk,
		NicknameAnalysis:   nicknameAnalysis,
		IsSuspicious:       totalRisk >= suspiciousRiskThreshold,
		SuspicionLevel:     suspicionLevel(totalRisk),
	}
}

// Scans the whole comment text for category keywords. Each present
// keyword contributes base_score * 0.3.
func (d *Detector) analyzeTextKeywords(text string) TextRisk {
	hits := d.matchKeywords(text)
	risk := TextRisk{}

	for _, category := range categoryOrder {
		config := riskCategories[category]
		matched := 0
		for _, keyword := range config.keywords {
			if hits[strings.ToLower(keyword)] {
				matched++
			}
		}
		if matched > 0 {
			risk.RiskScore += float64(matched) * float64(config.riskScore) * 0.3
			risk.Categories = append(risk.Categories, string(category))
		}
	}
	return risk
}

// Maps the accumulated risk score to a coarse level. Note the separate,
// lower is_suspicious cutoff at 6.
func suspicionLevel(riskScore float64) string {
	switch {
	case riskScore >= 15:
		return "high"
	case riskScore >= 8:
		return "medium"
	case riskScore >= 3:
		return "low"
	default:
		return "safe"
	}
}

// Resolves the domain of a URL-like token: parsed host when a scheme is
// present, the lowercased literal otherwise.
func resolveDomain(raw string) string {
	lowered := strings.ToLower(raw)
	if strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") {
		if parsed, err := url.Parse(raw); err == nil {
			return strings.ToLower(parsed.Host)
		}
	}
	return lowered
}

// Clamps [start,end) to the rune slice and returns the substring.
func runeWindow(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// Returns the detected categories in the fixed table order.
func orderedCategories(set map[string]bool) []string {
	categories := make([]string, 0, len(set))
	for _, category := range categoryOrder {
		if set[string(category)] {
			categories = append(categories, string(category))
		}
	}
	// Anything not in the fixed order list (should not happen) goes last.
	if len(categories) < len(set) {
		var extra []string
		for category := range set {
			if !containsString(categories, category) {
				extra = append(extra, category)
			}
		}
		sort.Strings(extra)
		categories = append(categories, extra...)
	}
	return categories
}

func containsString(list []string, value string) bool {
	for _, existing := range list {
		if existing == value {
			return true
		}
	}
	return false
}
