package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Clear environment variables that might interfere.
	os.Clearenv()

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Check a few default values.
	if config.ServerPort != "8080" {
		t.Errorf("expected ServerPort to be '8080', got %s", config.ServerPort)
	}
	if config.QueueCapacity != 1000 {
		t.Errorf("expected QueueCapacity to be 1000, got %d", config.QueueCapacity)
	}
	if config.SimilarityThreshold != 0.8 {
		t.Errorf("expected SimilarityThreshold to be 0.8, got %v", config.SimilarityThreshold)
	}
	if config.MinDuplicateCount != 3 {
		t.Errorf("expected MinDuplicateCount to be 3, got %d", config.MinDuplicateCount)
	}
	if config.ReportSinkURL != "http://localhost:9200/_bulk" {
		t.Errorf("expected ReportSinkURL to be 'http://localhost:9200/_bulk', got %s", config.ReportSinkURL)
	}
	if config.IndexName != "comment_spam_reports" {
		t.Errorf("expected IndexName to be 'comment_spam_reports', got %s", config.IndexName)
	}
	if config.DetectLanguages {
		t.Error("expected DetectLanguages to default to false")
	}
	if config.LogLevel != "info" {
		t.Errorf("expected LogLevel to be 'info', got %s", config.LogLevel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	// Set environment variables.
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("SIMILARITY_THRESHOLD", "0.6")
	os.Setenv("MIN_DUPLICATE_COUNT", "2")
	os.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if config.ServerPort != "9090" {
		t.Errorf("expected ServerPort to be '9090', got %s", config.ServerPort)
	}
	if config.SimilarityThreshold != 0.6 {
		t.Errorf("expected SimilarityThreshold to be 0.6, got %v", config.SimilarityThreshold)
	}
	if config.MinDuplicateCount != 2 {
		t.Errorf("expected MinDuplicateCount to be 2, got %d", config.MinDuplicateCount)
	}
	if config.LogLevel != "debug" {
		t.Errorf("expected LogLevel to be 'debug', got %s", config.LogLevel)
	}

	// Clean up environment variables after test.
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("SIMILARITY_THRESHOLD")
	os.Unsetenv("MIN_DUPLICATE_COUNT")
	os.Unsetenv("LOG_LEVEL")
}

func TestLoadConfigRejectsBadTunables(t *testing.T) {
	os.Setenv("SIMILARITY_THRESHOLD", "1.5")
	defer os.Unsetenv("SIMILARITY_THRESHOLD")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for an out-of-range similarity threshold")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		config    Config
		expectErr bool
	}{
		{"valid", Config{SimilarityThreshold: 0.8, MinDuplicateCount: 3}, false},
		{"threshold at bounds", Config{SimilarityThreshold: 1.0, MinDuplicateCount: 2}, false},
		{"threshold above one", Config{SimilarityThreshold: 1.5, MinDuplicateCount: 3}, true},
		{"threshold negative", Config{SimilarityThreshold: -0.1, MinDuplicateCount: 3}, true},
		{"duplicate count too low", Config{SimilarityThreshold: 0.8, MinDuplicateCount: 1}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.config.Validate()
			if c.expectErr && err == nil {
				t.Error("expected a validation error, got nil")
			}
			if !c.expectErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
