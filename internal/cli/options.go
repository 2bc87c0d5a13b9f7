package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ManuelOsorioLab/searchGen1/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags shared by the search and run commands
var (
	sequence     string
	sequenceFile string
	email        string
	outputDir    string
	program      string
	database     string
	expect       float64
	hitlistSize  int
	delay        time.Duration
	pollInterval time.Duration
	runTimeout   time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	baseURL      string
)

// buildConfig assembles the run configuration from flags, environment
// and config file: flags > env > file > defaults
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Config file / environment
	if v := viper.GetString("search.sequence"); v != "" {
		cfg.Search.Sequence = v
	}
	if v := viper.GetString("search.email"); v != "" {
		cfg.Search.Email = v
	}
	if v := viper.GetStringSlice("search.organisms"); len(v) > 0 {
		cfg.Search.Organisms = v
	}
	if v := viper.GetString("search.program"); v != "" {
		cfg.Search.Program = v
	}
	if v := viper.GetString("search.database"); v != "" {
		cfg.Search.Database = v
	}
	if viper.IsSet("search.expect") {
		cfg.Search.Expect = viper.GetFloat64("search.expect")
	}
	if viper.IsSet("search.hitlist_size") {
		cfg.Search.HitlistSize = viper.GetInt("search.hitlist_size")
	}
	if viper.IsSet("search.delay") {
		cfg.Search.Delay = viper.GetDuration("search.delay")
	}
	if viper.IsSet("search.poll_interval") {
		cfg.Search.PollInterval = viper.GetDuration("search.poll_interval")
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if viper.IsSet("http.max_body_bytes") {
		cfg.HTTP.MaxBodyBytes = viper.GetInt64("http.max_body_bytes")
	}
	if v := viper.GetString("http.base_url"); v != "" {
		cfg.HTTP.BaseURL = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("output.dir"); v != "" {
		cfg.Output.Dir = v
	}

	// Flags override only when set on the command line
	flags := cmd.Flags()
	if sequence != "" {
		cfg.Search.Sequence = sequence
	}
	if sequenceFile != "" {
		seq, err := readSequenceFile(sequenceFile)
		if err != nil {
			return nil, fmt.Errorf("read sequence: %w", err)
		}
		cfg.Search.Sequence = seq
	}
	if email != "" {
		cfg.Search.Email = email
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("program") {
		cfg.Search.Program = program
	}
	if flags.Changed("db") {
		cfg.Search.Database = database
	}
	if flags.Changed("evalue") {
		cfg.Search.Expect = expect
	}
	if flags.Changed("hits") {
		cfg.Search.HitlistSize = hitlistSize
	}
	if flags.Changed("delay") {
		cfg.Search.Delay = delay
	}
	if flags.Changed("poll-interval") {
		cfg.Search.PollInterval = pollInterval
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if baseURL != "" {
		cfg.HTTP.BaseURL = baseURL
	}
	cfg.Output.Verbose = verbose

	if strings.TrimSpace(cfg.Search.Sequence) == "" {
		return nil, fmt.Errorf("no query sequence: use --seq, --seq-file or the config file")
	}
	if cfg.Search.Email == "" {
		return nil, fmt.Errorf("no contact email: the search service requires one (--email)")
	}

	return cfg, nil
}

// readSequenceFile reads a query sequence from a plain or FASTA file.
// Header lines are dropped and the remaining lines concatenated.
func readSequenceFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sb strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ">") || strings.HasPrefix(line, ";") {
			continue
		}
		sb.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan file: %w", err)
	}

	return sb.String(), nil
}

// readOrganismsFile reads organism filters from a file (one per line)
func readOrganismsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var organisms []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate organisms
		if !seen[line] {
			seen[line] = true
			organisms = append(organisms, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return organisms, nil
}

// Flag defaults derived from the default configuration, so the help
// text and the config file never disagree
func defaultDelay() time.Duration        { return model.DefaultConfig().Search.Delay }
func defaultPollInterval() time.Duration { return model.DefaultConfig().Search.PollInterval }
func defaultUserAgent() string           { return model.DefaultConfig().HTTP.UserAgent }
