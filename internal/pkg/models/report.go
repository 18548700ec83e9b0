package models

// A URL (or URL-like token) extracted from free text, with its rune span.
// Overlapping matches from different extraction patterns are all kept.
type URLMatch struct {
	URL         string `json:"url"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	PatternType string `json:"pattern_type"`
}

// A video-platform channel/video reference found in free text.
type YouTubeRef struct {
	FullMatch  string `json:"full_match"`
	Identifier string `json:"identifier"`
	Type       string `json:"type"` // channel_id, handle, custom_url, username, video_id
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// One group of byte-identical (after normalization) comments.
type ExactDuplicateGroup struct {
	TextSample     string   `json:"text_sample"`
	DuplicateCount int      `json:"duplicate_count"`
	CommentIDs     []string `json:"comment_ids"`
	Authors        []string `json:"authors"`
}

type SimilaritySample struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// One cluster of near-duplicate comments. Members were admitted by
// similarity against the representative only, not pairwise.
type SimilarGroup struct {
	RepresentativeText string             `json:"representative_text"`
	SimilarCount       int                `json:"similar_count"`
	CommentIDs         []string           `json:"comment_ids"`
	Authors            []string           `json:"authors"`
	SimilaritySamples  []SimilaritySample `json:"similarity_samples"`
}

type ExactDuplicateReport struct {
	Count  int                   `json:"count"`
	Groups []ExactDuplicateGroup `json:"groups"`
}

type SimilarGroupReport struct {
	Count  int            `json:"count"`
	Groups []SimilarGroup `json:"groups"`
}

type DuplicateGroups struct {
	ExactDuplicates ExactDuplicateReport `json:"exact_duplicates"`
	SimilarGroups   SimilarGroupReport   `json:"similar_groups"`
}

type CommonPhrase struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Detail record for a comment flagged by the URL spam analysis.
type URLSpamDetail struct {
	CommentID          string       `json:"comment_id"`
	Author             string       `json:"author"`
	Text               string       `json:"text"`
	SpamConfidence     int          `json:"spam_confidence"`
	DetectedCategories []string     `json:"detected_categories"`
	URLs               []URLMatch   `json:"urls"`
	YouTubeInfo        []YouTubeRef `json:"youtube_info"`
	IsReply            bool         `json:"is_reply"`
	ParentID           string       `json:"parent_id,omitempty"`
	LikeCount          int          `json:"like_count"`
	Timestamp          string       `json:"timestamp,omitempty"`
}

// Detail record for a reply flagged by the reply-specific pass.
type ReplySpamDetail struct {
	CommentID      string   `json:"comment_id"`
	Author         string   `json:"author"`
	Text           string   `json:"text"`
	ParentID       string   `json:"parent_id,omitempty"`
	SpamScore      int      `json:"spam_score"`
	SpamIndicators []string `json:"spam_indicators"`
	LikeCount      int      `json:"like_count"`
	Timestamp      string   `json:"timestamp,omitempty"`
}

type ReplyDuplicatePattern struct {
	TextSample     string   `json:"text_sample"`
	DuplicateCount int      `json:"duplicate_count"`
	Authors        []string `json:"authors"`
}

// Aggregated spam/macro indicators over one batch of comments.
type SpamPatterns struct {
	ExactDuplicates        int                     `json:"exact_duplicates"`
	SimilarGroups          int                     `json:"similar_groups"`
	CommonPhrases          []CommonPhrase          `json:"common_phrases"`
	ShortRepetitive        int                     `json:"short_repetitive"`
	EmojiSpam              int                     `json:"emoji_spam"`
	LinkSpam               int                     `json:"link_spam"`
	URLSpam                int                     `json:"url_spam"`
	URLSpamDetails         []URLSpamDetail         `json:"url_spam_details"`
	ReplySpamCount         int                     `json:"reply_spam_count"`
	ReplySpamDetails       []ReplySpamDetail       `json:"reply_spam_details"`
	ReplyDuplicatePatterns []ReplyDuplicatePattern `json:"reply_duplicate_patterns"`
}

type SpamIndicators struct {
	ShortRepetitive int `json:"short_repetitive"`
	EmojiOnly       int `json:"emoji_only"`
	ContainsLinks   int `json:"contains_links"`
	URLSpam         int `json:"url_spam"`
}

type ProcessingSummary struct {
	ExactDuplicateGroups int            `json:"exact_duplicate_groups"`
	SimilarGroups        int            `json:"similar_groups"`
	SpamIndicators       SpamIndicators `json:"spam_indicators"`
	Languages            map[string]int `json:"languages,omitempty"`
}

// Full analysis output for one batch. Purely derived data; a fresh report
// is built per ProcessComments call.
type ProcessingReport struct {
	VideoID              string            `json:"video_id,omitempty"`
	TotalComments        int               `json:"total_comments"`
	SuspiciousCount      int               `json:"suspicious_count"`
	DuplicateGroups      DuplicateGroups   `json:"duplicate_groups"`
	SpamPatterns         SpamPatterns      `json:"spam_patterns"`
	SuspiciousCommentIDs []string          `json:"suspicious_comment_ids"`
	ProcessingSummary    ProcessingSummary `json:"processing_summary"`
}
