package model

import "time"

// Config holds the complete searchgen configuration
type Config struct {
	Search       SearchConfig    `yaml:"search" mapstructure:"search"`
	HTTP         HTTPConfig      `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig     `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig    `yaml:"output" mapstructure:"output"`
}

// SearchConfig configures the BLAST search itself
type SearchConfig struct {
	Program      string        `yaml:"program" mapstructure:"program"`             // blastp, blastn, ...
	Database     string        `yaml:"database" mapstructure:"database"`           // nr, swissprot, ...
	Sequence     string        `yaml:"sequence" mapstructure:"sequence"`           // amino-acid query sequence
	Organisms    []string      `yaml:"organisms" mapstructure:"organisms"`         // Entrez organism filters
	Expect       float64       `yaml:"expect" mapstructure:"expect"`               // E-value threshold
	HitlistSize  int           `yaml:"hitlist_size" mapstructure:"hitlist_size"`   // max alignments returned
	Email        string        `yaml:"email" mapstructure:"email"`                 // contact identifier sent to NCBI
	Tool         string        `yaml:"tool" mapstructure:"tool"`                   // tool identifier sent to NCBI
	Delay        time.Duration `yaml:"delay" mapstructure:"delay"`                 // fixed delay between organisms
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"` // delay between status polls
}

// HTTPConfig configures the HTTP client
type HTTPConfig struct {
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// CacheConfig configures the per-run response cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// RateLimitConfig configures request pacing against the search service
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig configures report output
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Program:      "blastp",
			Database:     "nr",
			Expect:       0.001,
			HitlistSize:  5,
			Tool:         "searchgen",
			Delay:        5 * time.Second,
			PollInterval: 20 * time.Second,
		},
		HTTP: HTTPConfig{
			BaseURL:      "https://blast.ncbi.nlm.nih.gov/Blast.cgi",
			Timeout:      2 * time.Minute,
			UserAgent:    "searchgen/0.1 (+https://github.com/ManuelOsorioLab/searchGen1)",
			MaxBodyBytes: 20_000_000,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		RateLimiting: RateLimitConfig{
			// NCBI usage guidance: stay well under one request per second
			RequestsPerSecond: 0.3,
			BurstSize:         1,
		},
		Output: OutputConfig{
			Dir: "./searchgen-reports",
		},
	}
}
