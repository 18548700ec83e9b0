package normalizer

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// Strips everything except letters, digits, underscore and whitespace.
// Unicode letter classes cover the Hangul Jamo and syllable ranges, so
// Korean text survives normalization while emoji and punctuation do not.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Collapses runs of whitespace into a single space.
var whitespacePattern = regexp.MustCompile(`\s+`)

// Produces the canonical form of a comment text: lowercased, stripped of
// punctuation/emoji, internal whitespace collapsed, trimmed. Total and
// deterministic; empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Hashes the normalized text. MD5 is used purely as a grouping key for
// exact-duplicate detection, not for anything security related.
func Hash(text string) string {
	sum := md5.Sum([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// Computes the character-level similarity of two texts on their normalized
// forms, in [0,1]. Ratcliff/Obershelp: twice the total length of matching
// blocks over the combined length. Returns 0 when either side normalizes
// to empty. Symmetric by construction.
func Similarity(text1, text2 string) float64 {
	if text1 == "" || text2 == "" {
		return 0.0
	}

	a := []rune(Normalize(text1))
	b := []rune(Normalize(text2))
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	matched := matchingLength(a, b, 0, len(a), 0, len(b))
	return 2.0 * float64(matched) / float64(len(a)+len(b))
}

// Sums the lengths of all matching blocks between a[alo:ahi] and
// b[blo:bhi]: find the longest common block, then recurse on the pieces
// to its left and right.
func matchingLength(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchingLength(a, b, alo, i, blo, j) +
		matchingLength(a, b, i+size, ahi, j+size, bhi)
}

// Finds the longest block of runes common to a[alo:ahi] and b[blo:bhi].
// Ties resolve to the earliest block in a, then the earliest in b, which
// keeps the recursion deterministic.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] = length of the longest match ending at a[i-1], b[j]
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
