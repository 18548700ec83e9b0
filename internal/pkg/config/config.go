package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	QueueCapacity int    `mapstructure:"QUEUE_CAPACITY"`
	NumWorkers    int    `mapstructure:"NUM_WORKERS"`

	// Analyzer tunables
	SimilarityThreshold float64 `mapstructure:"SIMILARITY_THRESHOLD"`
	MinDuplicateCount   int     `mapstructure:"MIN_DUPLICATE_COUNT"`
	DetectLanguages     bool    `mapstructure:"DETECT_LANGUAGES"`

	// Report sink config
	ReportSinkURL string `mapstructure:"REPORT_SINK_URL"`
	IndexName     string `mapstructure:"INDEX_NAME"`
	BulkThreshold int    `mapstructure:"BULK_THRESHOLD"`
	FlushInterval int    `mapstructure:"FLUSH_INTERVAL"`
	MaxRetries    int    `mapstructure:"MAX_RETRIES"`

	// Redis config (known-spam signature store)
	RedisEnabled  bool   `mapstructure:"REDIS_ENABLED"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	// Set defaults for configuration values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("QUEUE_CAPACITY", 1000)
	viper.SetDefault("NUM_WORKERS", 4)

	viper.SetDefault("SIMILARITY_THRESHOLD", 0.8)
	viper.SetDefault("MIN_DUPLICATE_COUNT", 3)
	viper.SetDefault("DETECT_LANGUAGES", false)

	viper.SetDefault("REPORT_SINK_URL", "http://localhost:9200/_bulk")
	viper.SetDefault("INDEX_NAME", "comment_spam_reports")
	viper.SetDefault("BULK_THRESHOLD", 5)
	viper.SetDefault("FLUSH_INTERVAL", 30)
	viper.SetDefault("MAX_RETRIES", 3)

	// Redis defaults
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Rejects out-of-range analyzer tunables. The analysis core itself never
// validates; bad values are caught here before a processor is built.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be within [0,1], got %v", c.SimilarityThreshold)
	}
	if c.MinDuplicateCount < 2 {
		return fmt.Errorf("MIN_DUPLICATE_COUNT must be at least 2, got %d", c.MinDuplicateCount)
	}
	return nil
}
