package processor

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	deduper "commentguard/internal/pkg/deduplicator"
	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/metrics"
	"commentguard/internal/pkg/models"
	"commentguard/internal/pkg/normalizer"
	"commentguard/internal/pkg/processor/spamdetector"
)

// Matches comments consisting solely of emoji and whitespace. The empty
// string matches too; an empty comment is treated as emoji-only spam.
var emojiOnlyPattern = regexp.MustCompile(`^[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\s]*$`)

// Loose link detection for the contains-links indicator.
var linkPattern = regexp.MustCompile(`https?://(?:%[0-9a-fA-F]{2}|[a-zA-Z0-9$-_@.&+!*(),])+`)

// Word tokens for the common-phrase count.
var phraseWordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Aggregates the per-batch spam/macro indicators.
func (p *CommentProcessor) buildSpamPatterns(
	comments []models.Comment,
	exactDuplicates map[string][]models.Comment,
	similarGroups [][]models.Comment,
	analyses map[string]spamdetector.CommentAnalysis,
) models.SpamPatterns {
	patterns := models.SpamPatterns{
		ExactDuplicates: len(exactDuplicates),
		SimilarGroups:   len(similarGroups),
		CommonPhrases:   []models.CommonPhrase{},
		URLSpamDetails:  []models.URLSpamDetail{},
	}

	for _, comment := range comments {
		if len([]rune(normalizer.Normalize(comment.Text))) <= 3 {
			patterns.ShortRepetitive++
		}
		if emojiOnlyPattern.MatchString(comment.Text) {
			patterns.EmojiSpam++
		}
		if linkPattern.MatchString(comment.Text) {
			patterns.LinkSpam++
		}
	}

	patterns.CommonPhrases = commonPhrases(comments)

	// URL spam details, one entry per distinct comment ID.
	seen := make(map[string]bool, len(comments))
	for _, comment := range comments {
		if seen[comment.CommentID] {
			continue
		}
		seen[comment.CommentID] = true

		analysis, ok := analyses[comment.CommentID]
		if !ok || !analysis.IsSpam {
			continue
		}
		patterns.URLSpam++
		metrics.SpamCommentsDetected.Inc()
		patterns.URLSpamDetails = append(patterns.URLSpamDetails, models.URLSpamDetail{
			CommentID:          comment.CommentID,
			Author:             comment.Author,
			Text:               truncateText(comment.Text, 100),
			SpamConfidence:     analysis.SpamConfidence,
			DetectedCategories: analysis.RiskAnalysis.DetectedCategories,
			URLs:               analysis.URLs,
			YouTubeInfo:        analysis.YouTubeInfo,
			IsReply:            comment.IsReply,
			ParentID:           comment.ParentID,
			LikeCount:          comment.LikeCount,
			Timestamp:          comment.Timestamp,
		})

		if logger.Log != nil {
			logger.Log.Info("URL spam detected",
				zap.String("comment_id", comment.CommentID),
				zap.String("author", comment.Author),
				zap.Int("spam_confidence", analysis.SpamConfidence))
		}
	}

	replyCount, replyDetails, replyDuplicates := p.analyzeReplyPatterns(comments, analyses)
	patterns.ReplySpamCount = replyCount
	patterns.ReplySpamDetails = replyDetails
	patterns.ReplyDuplicatePatterns = replyDuplicates

	return patterns
}

// Scores replies with reply-specific rules: very short text (+3), a URL
// spam verdict (+6), and near-duplication of any top-level comment (+5).
// A reply is flagged at a combined score of 5 or more, so a lone weak
// signal never flags on its own.
func (p *CommentProcessor) analyzeReplyPatterns(
	comments []models.Comment,
	analyses map[string]spamdetector.CommentAnalysis,
) (int, []models.ReplySpamDetail, []models.ReplyDuplicatePattern) {
	details := []models.ReplySpamDetail{}
	duplicatePatterns := []models.ReplyDuplicatePattern{}

	var replies, regular []models.Comment
	for _, comment := range comments {
		if comment.IsReply {
			replies = append(replies, comment)
		} else {
			regular = append(regular, comment)
		}
	}
	if len(replies) == 0 {
		return 0, details, duplicatePatterns
	}

	replyDuplicates := p.DetectExactDuplicates(replies)
	for _, group := range orderedGroups(replies, replyDuplicates) {
		duplicatePatterns = append(duplicatePatterns, models.ReplyDuplicatePattern{
			TextSample:     group[0].Text,
			DuplicateCount: len(group),
			Authors:        uniqueAuthors(group),
		})
	}

	count := 0
	for _, reply := range replies {
		score := 0
		var indicators []string

		if len([]rune(normalizer.Normalize(reply.Text))) <= 2 {
			score += 3
			indicators = append(indicators, "very_short")
		}

		if analysis, ok := analyses[reply.CommentID]; ok && analysis.IsSpam {
			score += 6
			indicators = append(indicators, "url_spam")
		}

		for _, comment := range regular {
			if normalizer.Similarity(reply.Text, comment.Text) > replyEchoThreshold {
				score += 5
				indicators = append(indicators, "similar_to_main_comment")
				break
			}
		}

		if score >= 5 {
			count++
			details = append(details, models.ReplySpamDetail{
				CommentID:      reply.CommentID,
				Author:         reply.Author,
				Text:           truncateText(reply.Text, 100),
				ParentID:       reply.ParentID,
				SpamScore:      score,
				SpamIndicators: indicators,
				LikeCount:      reply.LikeCount,
				Timestamp:      reply.Timestamp,
			})
		}
	}

	return count, details, duplicatePatterns
}

// Builds the duplicate-group section of the report. Exact groups come out
// in first-occurrence order; similarity clusters already are ordered.
func (p *CommentProcessor) buildDuplicateGroups(
	comments []models.Comment,
	exactDuplicates map[string][]models.Comment,
	similarGroups [][]models.Comment,
) models.DuplicateGroups {
	exactReport := models.ExactDuplicateReport{
		Count:  len(exactDuplicates),
		Groups: []models.ExactDuplicateGroup{},
	}
	for _, group := range orderedGroups(comments, exactDuplicates) {
		exactReport.Groups = append(exactReport.Groups, models.ExactDuplicateGroup{
			TextSample:     group[0].Text,
			DuplicateCount: len(group),
			CommentIDs:     commentIDs(group),
			Authors:        uniqueAuthors(group),
		})
	}

	similarReport := models.SimilarGroupReport{
		Count:  len(similarGroups),
		Groups: []models.SimilarGroup{},
	}
	for _, group := range similarGroups {
		// The first two non-representative members serve as samples.
		samples := []models.SimilaritySample{}
		for _, member := range group[1:min(3, len(group))] {
			samples = append(samples, models.SimilaritySample{
				Text:       member.Text,
				Similarity: normalizer.Similarity(group[0].Text, member.Text),
			})
		}
		similarReport.Groups = append(similarReport.Groups, models.SimilarGroup{
			RepresentativeText: group[0].Text,
			SimilarCount:       len(group),
			CommentIDs:         commentIDs(group),
			Authors:            uniqueAuthors(group),
			SimilaritySamples:  samples,
		})
	}

	return models.DuplicateGroups{
		ExactDuplicates: exactReport,
		SimilarGroups:   similarReport,
	}
}

// Unions every suspicion source into one sorted ID list: exact-duplicate
// members, similarity-cluster members, spam verdicts, flagged replies,
// and cross-run known-spam matches.
func (p *CommentProcessor) collectSuspiciousIDs(
	comments []models.Comment,
	exactDuplicates map[string][]models.Comment,
	similarGroups [][]models.Comment,
	analyses map[string]spamdetector.CommentAnalysis,
	replySpamDetails []models.ReplySpamDetail,
) []string {
	suspicious := make(map[string]bool)

	for _, group := range exactDuplicates {
		for _, comment := range group {
			suspicious[comment.CommentID] = true
		}
	}
	for _, group := range similarGroups {
		for _, comment := range group {
			suspicious[comment.CommentID] = true
		}
	}
	for _, comment := range comments {
		if analysis, ok := analyses[comment.CommentID]; ok && analysis.IsSpam {
			suspicious[comment.CommentID] = true
		}
	}
	for _, detail := range replySpamDetails {
		suspicious[detail.CommentID] = true
	}

	if p.knownSpam != nil {
		p.applyKnownSpam(comments, suspicious)
	}

	ids := make([]string, 0, len(suspicious))
	for id := range suspicious {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Flags comments whose normalized text matches a signature stored by an
// earlier batch, and stores the signatures of this batch's flagged texts.
func (p *CommentProcessor) applyKnownSpam(comments []models.Comment, suspicious map[string]bool) {
	for _, comment := range comments {
		signature := deduper.GenerateSignature(normalizer.Normalize(comment.Text))
		if suspicious[comment.CommentID] {
			p.knownSpam.StoreSignature(signature)
			continue
		}
		if p.knownSpam.IsDuplicate(signature) {
			suspicious[comment.CommentID] = true
			metrics.KnownSpamHits.Inc()
			if logger.Log != nil {
				logger.Log.Info("Known spam signature matched",
					zap.String("comment_id", comment.CommentID))
			}
		}
	}
}

// Top recurring words across the batch: the ten most frequent tokens,
// filtered down to those appearing at least five times and longer than
// two characters. The filter runs inside the top ten, so a qualifying
// word ranked eleventh or lower is not reported.
func commonPhrases(comments []models.Comment) []models.CommonPhrase {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	index := 0
	for _, comment := range comments {
		for _, word := range phraseWordPattern.FindAllString(strings.ToLower(comment.Text), -1) {
			if _, ok := counts[word]; !ok {
				firstSeen[word] = index
				index++
			}
			counts[word]++
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	phrases := []models.CommonPhrase{}
	for i, word := range words {
		if i >= 10 {
			break
		}
		if counts[word] >= 5 && len([]rune(word)) > 2 {
			phrases = append(phrases, models.CommonPhrase{Phrase: word, Count: counts[word]})
		}
	}
	return phrases
}

// Recovers first-occurrence ordering for hash-keyed groups by walking the
// original comment slice.
func orderedGroups(comments []models.Comment, groups map[string][]models.Comment) [][]models.Comment {
	var ordered [][]models.Comment
	emitted := make(map[string]bool, len(groups))
	for _, comment := range comments {
		textHash := normalizer.Hash(comment.Text)
		if emitted[textHash] {
			continue
		}
		if group, ok := groups[textHash]; ok {
			ordered = append(ordered, group)
			emitted[textHash] = true
		}
	}
	return ordered
}

func commentIDs(group []models.Comment) []string {
	ids := make([]string, len(group))
	for i, comment := range group {
		ids[i] = comment.CommentID
	}
	return ids
}

// Distinct authors in order of first appearance.
func uniqueAuthors(group []models.Comment) []string {
	var authors []string
	seen := make(map[string]bool, len(group))
	for _, comment := range group {
		if !seen[comment.Author] {
			seen[comment.Author] = true
			authors = append(authors, comment.Author)
		}
	}
	return authors
}

// Truncates to maxRunes runes with an ellipsis marker.
func truncateText(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
