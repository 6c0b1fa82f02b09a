package config

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// Config represents the scanner configuration
type Config struct {
	// Scan settings
	Path           string   `mapstructure:"path"`            // root directory to scan
	Workers        int      `mapstructure:"workers"`         // number of hashing goroutines
	FollowSymlinks bool     `mapstructure:"follow_symlinks"` // descend into symlinked directories
	Exclude        []string `mapstructure:"exclude"`         // glob patterns to skip

	// Hash settings
	HashMaxSize   string        `mapstructure:"hash_max_size"`  // files above this size are not hashed
	NoHash        bool          `mapstructure:"no_hash"`        // disable content hashing entirely
	HashAlgorithm string        `mapstructure:"hash_algorithm"` // md5, sha256, sha3-256
	HashTimeout   time.Duration `mapstructure:"hash_timeout"`   // per-file hash timeout, 0 disables

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, yaml, md
	OutputFile   string `mapstructure:"output_file"`   // output file path

	// Diff settings
	DiffTool     string `mapstructure:"diff_tool"`      // external visual diff program
	DiffMaxFiles int    `mapstructure:"diff_max_files"` // paths handed to the diff tool
}

// DefaultHashMaxSize applies when hash_max_size is left empty
const DefaultHashMaxSize = "50M"

// Supported hash algorithms
const (
	HashMD5     = "md5"
	HashSHA256  = "sha256"
	HashSHA3256 = "sha3-256"
)

// HashAlgorithms lists the accepted hash_algorithm values
var HashAlgorithms = []string{HashMD5, HashSHA256, HashSHA3256}

// ReportFormats lists the accepted report_format values
var ReportFormats = []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}

// LoadConfig loads configuration from environment variables and defaults.
// If configFile is not empty it is read as well; environment wins over the file.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("exclude", []string{".stversions", ".stfolder", ".git"})
	v.SetDefault("hash_max_size", DefaultHashMaxSize)
	v.SetDefault("no_hash", false)
	v.SetDefault("hash_algorithm", HashSHA256)
	v.SetDefault("hash_timeout", 0)
	v.SetDefault("report_format", "")
	v.SetDefault("diff_tool", "meld")
	v.SetDefault("diff_max_files", 3)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("STCONFLICTS")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be repaired with a default
func (c *Config) Validate() error {
	if c.HashAlgorithm != "" && !contains(HashAlgorithms, c.HashAlgorithm) {
		return fmt.Errorf("hash_algorithm must be one of %v (got: %s)", HashAlgorithms, c.HashAlgorithm)
	}
	if c.ReportFormat != "" && !contains(ReportFormats, c.ReportFormat) {
		return fmt.Errorf("report_format must be one of %v (got: %s)", ReportFormats, c.ReportFormat)
	}
	if c.HashMaxSize != "" {
		if _, err := ParseSize(c.HashMaxSize); err != nil {
			return fmt.Errorf("hash_max_size: %w", err)
		}
	}
	if c.HashTimeout < 0 {
		return fmt.Errorf("hash_timeout must not be negative (got: %s)", c.HashTimeout)
	}
	return nil
}

// HashSizeLimit returns the largest file size that is hashed, or -1 when
// hashing is disabled
func (c *Config) HashSizeLimit() (int64, error) {
	if c.NoHash {
		return -1, nil
	}
	size := c.HashMaxSize
	if size == "" {
		size = DefaultHashMaxSize
	}
	return ParseSize(size)
}

// ParseSize parses a size such as "50M", "50MB", "1.5G" or "64 KiB" to bytes.
// Plain suffixes are decimal (1K = 1000), "Ki", "Mi", "Gi" are binary.
func ParseSize(sizeStr string) (int64, error) {
	n, err := humanize.ParseBytes(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("size %q is too large", sizeStr)
	}
	return int64(n), nil
}

// GetWorkers returns the configured worker count, falling back to the CPU count
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
