package languagedetector

import (
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	detector := New()

	cases := []struct {
		text     string
		expected string
	}{
		{"안녕하세요 오늘 영상 정말 재미있게 잘 봤습니다", "ko"},
		{"this is a wonderful video, thank you for sharing it", "en"},
		{"짧음", "unknown"}, // below the minimum length
		{"", "unknown"},
	}

	for _, c := range cases {
		if got := DetectLanguage(detector, c.text); got != c.expected {
			t.Errorf("DetectLanguage(%q) = %q, expected %q", c.text, got, c.expected)
		}
	}
}
