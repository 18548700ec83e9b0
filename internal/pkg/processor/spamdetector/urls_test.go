package spamdetector

import (
	"testing"
)

func TestExtractURLsOverlappingPatterns(t *testing.T) {
	// A shortener link matches both the generic HTTP pattern and the
	// shortener pattern; both hits are reported.
	urls := ExtractURLs("내 채널 구독 http://bit.ly/abc")

	if len(urls) < 2 {
		t.Fatalf("expected at least 2 URL hits, got %d", len(urls))
	}

	found := make(map[string]bool)
	for _, match := range urls {
		found[match.URL] = true
	}
	if !found["http://bit.ly/abc"] {
		t.Error("expected a hit for the full HTTP URL")
	}
	if !found["bit.ly/abc"] {
		t.Error("expected a separate hit for the shortener pattern")
	}
}

func TestExtractURLsRuneSpans(t *testing.T) {
	// Spans are rune offsets, so the Korean prefix counts 3 positions.
	urls := ExtractURLs("구독 http://bit.ly/abc")

	var match *struct{ start, end int }
	for _, hit := range urls {
		if hit.URL == "http://bit.ly/abc" {
			match = &struct{ start, end int }{hit.Start, hit.End}
			break
		}
	}
	if match == nil {
		t.Fatal("expected a hit for the full HTTP URL")
	}
	if match.start != 3 {
		t.Errorf("expected rune start 3, got %d", match.start)
	}
	if match.end != 20 {
		t.Errorf("expected rune end 20, got %d", match.end)
	}
}

func TestExtractURLsNone(t *testing.T) {
	urls := ExtractURLs("오늘 날씨가 좋네요")
	if len(urls) != 0 {
		t.Errorf("expected no URL hits, got %d: %+v", len(urls), urls)
	}
}

func TestExtractURLsBareDomain(t *testing.T) {
	urls := ExtractURLs("방문하세요 www.example.com")
	if len(urls) == 0 {
		t.Fatal("expected at least one URL hit")
	}
	for _, hit := range urls {
		if hit.URL != "www.example.com" {
			t.Errorf("expected trimmed URL %q, got %q", "www.example.com", hit.URL)
		}
	}
}

func TestExtractYouTubeInfo(t *testing.T) {
	cases := []struct {
		text       string
		refType    string
		identifier string
	}{
		{"제 채널 youtube.com/channel/UCabc123 구독해주세요", "channel_id", "UCabc123"},
		{"youtu.be/dQw4w9WgXcQ 꼭 보세요", "video_id", "dQw4w9WgXcQ"},
		{"youtube.com/@스팸채널 놀러오세요", "handle", "스팸채널"},
		{"youtube.com/user/spammer99", "username", "spammer99"},
	}

	for _, c := range cases {
		refs := ExtractYouTubeInfo(c.text)
		if len(refs) != 1 {
			t.Errorf("ExtractYouTubeInfo(%q): expected 1 ref, got %d", c.text, len(refs))
			continue
		}
		if refs[0].Type != c.refType {
			t.Errorf("ExtractYouTubeInfo(%q): expected type %q, got %q", c.text, c.refType, refs[0].Type)
		}
		if refs[0].Identifier != c.identifier {
			t.Errorf("ExtractYouTubeInfo(%q): expected identifier %q, got %q", c.text, c.identifier, refs[0].Identifier)
		}
	}
}

func TestExtractYouTubeInfoNone(t *testing.T) {
	refs := ExtractYouTubeInfo("좋은 영상 감사합니다")
	if len(refs) != 0 {
		t.Errorf("expected no refs, got %+v", refs)
	}
}
