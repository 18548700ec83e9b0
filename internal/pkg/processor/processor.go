package processor

import (
	"time"

	"github.com/pemistahl/lingua-go"
	"go.uber.org/zap"

	deduper "commentguard/internal/pkg/deduplicator"
	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/metrics"
	"commentguard/internal/pkg/models"
	"commentguard/internal/pkg/normalizer"
	"commentguard/internal/pkg/processor/languagedetector"
	"commentguard/internal/pkg/processor/spamdetector"
)

// Default analyzer tunables. Both can be adjusted on the instance before
// a ProcessComments call; validation of caller-supplied values happens at
// the config layer, the processor itself stays total.
const (
	DefaultSimilarityThreshold = 0.8
	DefaultMinDuplicateCount   = 3
)

// Reply text this similar to a top-level comment counts as echoed spam.
// Fixed, independent of the tunable clustering threshold.
const replyEchoThreshold = 0.8

// CommentProcessor runs the duplicate/spam analysis over comment batches.
// Instances are not safe for concurrent mutation of the tunables, but
// ProcessComments itself is a pure function of its input.
type CommentProcessor struct {
	SimilarityThreshold float64
	MinDuplicateCount   int

	detector     *spamdetector.Detector
	langDetector lingua.LanguageDetector
	knownSpam    deduper.Deduper
}

// Creates a processor with default tunables and the static rule tables.
func NewCommentProcessor() *CommentProcessor {
	return &CommentProcessor{
		SimilarityThreshold: DefaultSimilarityThreshold,
		MinDuplicateCount:   DefaultMinDuplicateCount,
		detector:            spamdetector.NewDetector(),
	}
}

// Attaches a language detector; the report summary then carries a
// per-language comment count.
func (p *CommentProcessor) WithLanguageDetector(detector lingua.LanguageDetector) *CommentProcessor {
	p.langDetector = detector
	return p
}

// Attaches a cross-run known-spam signature store. Comments whose
// normalized text was flagged in an earlier batch are marked suspicious
// immediately, and newly flagged texts are stored for later batches.
func (p *CommentProcessor) WithKnownSpamStore(store deduper.Deduper) *CommentProcessor {
	p.knownSpam = store
	return p
}

// Groups comments by the hash of their normalized text. Only buckets with
// at least MinDuplicateCount members are returned; members keep input
// order within a bucket.
func (p *CommentProcessor) DetectExactDuplicates(comments []models.Comment) map[string][]models.Comment {
	hashGroups := make(map[string][]models.Comment)
	for _, comment := range comments {
		textHash := normalizer.Hash(comment.Text)
		hashGroups[textHash] = append(hashGroups[textHash], comment)
	}

	duplicates := make(map[string][]models.Comment)
	for textHash, group := range hashGroups {
		if len(group) >= p.MinDuplicateCount {
			duplicates[textHash] = group
		}
	}
	return duplicates
}

// Clusters near-duplicate comments greedily: each comment is compared
// against the representative (first member) of every open cluster, in
// cluster creation order, and joins the first one at or above the
// threshold. A comment may be closer to a later member than to the
// representative and still be placed by the representative comparison
// alone; that approximation is deliberate. Worst case O(n^2) when
// nothing clusters. Only clusters of MinDuplicateCount or more are
// returned.
func (p *CommentProcessor) DetectSimilarDuplicates(comments []models.Comment) [][]models.Comment {
	var clusters [][]models.Comment

	for _, comment := range comments {
		placed := false
		for i, cluster := range clusters {
			similarity := normalizer.Similarity(comment.Text, cluster[0].Text)
			if similarity >= p.SimilarityThreshold {
				clusters[i] = append(clusters[i], comment)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []models.Comment{comment})
		}
	}

	var reported [][]models.Comment
	for _, cluster := range clusters {
		if len(cluster) >= p.MinDuplicateCount {
			reported = append(reported, cluster)
		}
	}
	return reported
}

// Runs the spam verdict once per distinct comment ID. The resulting index
// is shared by the pattern, reply, and suspicious-ID passes so URL/risk
// extraction is never recomputed within one ProcessComments call.
func (p *CommentProcessor) analyzeAll(comments []models.Comment) map[string]spamdetector.CommentAnalysis {
	analyses := make(map[string]spamdetector.CommentAnalysis, len(comments))
	for _, comment := range comments {
		if _, done := analyses[comment.CommentID]; done {
			continue
		}
		analyses[comment.CommentID] = p.detector.AnalyzeComment(comment.Text, comment.Author)
	}
	return analyses
}

// Runs the complete analysis over one batch and builds the report.
// Empty input yields a zeroed report with empty collections, no error.
func (p *CommentProcessor) ProcessComments(comments []models.Comment) models.ProcessingReport {
	start := time.Now()

	if len(comments) == 0 {
		return emptyReport()
	}

	analyses := p.analyzeAll(comments)
	exactDuplicates := p.DetectExactDuplicates(comments)
	similarGroups := p.DetectSimilarDuplicates(comments)

	spamPatterns := p.buildSpamPatterns(comments, exactDuplicates, similarGroups, analyses)
	duplicateGroups := p.buildDuplicateGroups(comments, exactDuplicates, similarGroups)
	suspiciousIDs := p.collectSuspiciousIDs(comments, exactDuplicates, similarGroups, analyses, spamPatterns.ReplySpamDetails)

	report := models.ProcessingReport{
		TotalComments:        len(comments),
		SuspiciousCount:      len(suspiciousIDs),
		DuplicateGroups:      duplicateGroups,
		SpamPatterns:         spamPatterns,
		SuspiciousCommentIDs: suspiciousIDs,
		ProcessingSummary: models.ProcessingSummary{
			ExactDuplicateGroups: duplicateGroups.ExactDuplicates.Count,
			SimilarGroups:        duplicateGroups.SimilarGroups.Count,
			SpamIndicators: models.SpamIndicators{
				ShortRepetitive: spamPatterns.ShortRepetitive,
				EmojiOnly:       spamPatterns.EmojiSpam,
				ContainsLinks:   spamPatterns.LinkSpam,
				URLSpam:         spamPatterns.URLSpam,
			},
			Languages: p.detectLanguages(comments),
		},
	}

	metrics.CommentsAnalyzed.Add(float64(len(comments)))
	metrics.DuplicateGroupsDetected.Add(float64(len(exactDuplicates) + len(similarGroups)))
	metrics.AnalysisLatency.Observe(time.Since(start).Seconds())

	if logger.Log != nil {
		logger.Log.Debug("Batch analysis complete",
			zap.Int("total_comments", report.TotalComments),
			zap.Int("suspicious_count", report.SuspiciousCount),
			zap.Int("exact_duplicate_groups", report.DuplicateGroups.ExactDuplicates.Count),
			zap.Int("similar_groups", report.DuplicateGroups.SimilarGroups.Count))
	}

	return report
}

// Counts comments per detected language for the processing summary.
// Nil when no language detector is attached.
func (p *CommentProcessor) detectLanguages(comments []models.Comment) map[string]int {
	if p.langDetector == nil {
		return nil
	}
	languages := make(map[string]int)
	for _, comment := range comments {
		languages[languagedetector.DetectLanguage(p.langDetector, comment.Text)]++
	}
	return languages
}

func emptyReport() models.ProcessingReport {
	return models.ProcessingReport{
		TotalComments:   0,
		SuspiciousCount: 0,
		DuplicateGroups: models.DuplicateGroups{
			ExactDuplicates: models.ExactDuplicateReport{Count: 0, Groups: []models.ExactDuplicateGroup{}},
			SimilarGroups:   models.SimilarGroupReport{Count: 0, Groups: []models.SimilarGroup{}},
		},
		SpamPatterns: models.SpamPatterns{
			CommonPhrases:          []models.CommonPhrase{},
			URLSpamDetails:         []models.URLSpamDetail{},
			ReplySpamDetails:       []models.ReplySpamDetail{},
			ReplyDuplicatePatterns: []models.ReplyDuplicatePattern{},
		},
		SuspiciousCommentIDs: []string{},
	}
}
