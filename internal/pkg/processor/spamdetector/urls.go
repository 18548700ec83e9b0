package spamdetector

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"commentguard/internal/pkg/models"
)

// Ordered URL extraction patterns. Later patterns deliberately overlap the
// earlier ones (a bit.ly link matches both the generic URL pattern and the
// shortener pattern); every hit is reported, nothing is deduplicated.
var urlPatterns = []*regexp.Regexp{
	// full HTTP/HTTPS URLs
	regexp.MustCompile(`(?i)https?://(?:[-\w.])+(?:[:\d]+)?(?:/(?:[\w/_.])*(?:\?(?:[\w&=%.])*)?(?:#(?:[\w.])*)?)?`),
	// www.domain.tld
	regexp.MustCompile(`(?i)www\.(?:[-\w.])+\.(?:com|kr|net|org|edu|gov|co\.kr|ne\.kr)(?:/(?:[\w/_.])*(?:\?(?:[\w&=%.])*)?(?:#(?:[\w.])*)?)?`),
	// bare domain.tld, as it appears embedded in Korean text
	regexp.MustCompile(`(?i)(?:^|\s)(?:[-\w.]+\.(?:com|kr|net|org|edu|gov|co\.kr|ne\.kr))(?:/(?:[\w/_.])*(?:\?(?:[\w&=%.])*)?(?:#(?:[\w.])*)?)?`),
	// video platform channel/video references
	regexp.MustCompile(`(?i)(?:youtube\.com/channel/|youtube\.com/@|youtu\.be/)[\w-]+`),
	// known URL shorteners
	regexp.MustCompile(`(?i)(?:bit\.ly|tinyurl\.com|ow\.ly|tiny\.cc)/[\w-]+`),
}

// YouTube reference patterns with the identifier as the capture group.
var youtubePatterns = []struct {
	re      *regexp.Regexp
	refType string
}{
	{regexp.MustCompile(`(?i)youtube\.com/channel/([A-Za-z0-9_-]+)`), "channel_id"},
	{regexp.MustCompile(`(?i)youtube\.com/@([A-Za-z0-9_가-힣-]+)`), "handle"},
	{regexp.MustCompile(`(?i)youtube\.com/c/([A-Za-z0-9_가-힣-]+)`), "custom_url"},
	{regexp.MustCompile(`(?i)youtube\.com/user/([A-Za-z0-9_-]+)`), "username"},
	{regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_-]+)`), "video_id"},
}

// Extracts every URL-like token from the text with its character span.
// A substring hit by several patterns yields one entry per pattern.
func ExtractURLs(text string) []models.URLMatch {
	var urls []models.URLMatch

	for _, pattern := range urlPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			url := strings.TrimSpace(text[loc[0]:loc[1]])
			if url == "" {
				continue
			}
			start := utf8.RuneCountInString(text[:loc[0]])
			urls = append(urls, models.URLMatch{
				URL:         url,
				Start:       start,
				End:         start + utf8.RuneCountInString(text[loc[0]:loc[1]]),
				PatternType: "url",
			})
		}
	}
	return urls
}

// Extracts channel/video references with their identifier type.
func ExtractYouTubeInfo(text string) []models.YouTubeRef {
	var refs []models.YouTubeRef

	for _, pattern := range youtubePatterns {
		for _, loc := range pattern.re.FindAllStringSubmatchIndex(text, -1) {
			identifier := ""
			if loc[2] >= 0 {
				identifier = text[loc[2]:loc[3]]
			}
			start := utf8.RuneCountInString(text[:loc[0]])
			refs = append(refs, models.YouTubeRef{
				FullMatch:  text[loc[0]:loc[1]],
				Identifier: identifier,
				Type:       pattern.refType,
				Start:      start,
				End:        start + utf8.RuneCountInString(text[loc[0]:loc[1]]),
			})
		}
	}
	return refs
}
