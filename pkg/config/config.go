// Package config provides configuration management for goldrec.
//
// This package has no I/O dependencies (no file operations, no
// network calls). Validation functions may write user-facing
// warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml
// > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Overriding any single scoring knob leaves all other defaults intact
//
// # Environment Variables
//
// Use GOLDREC_ prefix with underscores for nesting:
//
//	GOLDREC_DATABASE_HOST=localhost
//	GOLDREC_DATABASE_PORT=5432
//	GOLDREC_LOG_LEVEL=info
//	GOLDREC_JOBS_NUMBER=8
package config

import (
	"runtime"

	"github.com/goldrec/goldrec/pkg/score"
)

// Config represents the complete goldrec configuration.
type Config struct {
	// Database contains PostgreSQL connection settings for the
	// customer mart.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Landing contains settings for the landing store the pipeline
	// reads raw batches from.
	Landing LandingConfig `mapstructure:"landing" yaml:"landing"`

	// Dates configures the multi-format date parser.
	Dates DatesConfig `mapstructure:"dates" yaml:"dates"`

	// Scoring holds every scoring policy knob (recency bands,
	// health weights, classification cut-points, segment rules).
	Scoring score.Params `mapstructure:"scoring" yaml:"scoring"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for the
	// per-record normalize stage. Defaults to available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. Set by the CLI during init; runtime-only.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records per multi-row INSERT
	// during publishing. Larger batches are faster but bounded by
	// the PostgreSQL parameter limit; the publisher clamps as
	// needed.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LandingConfig describes the landing store batch file.
type LandingConfig struct {
	// Path is the SQLite batch file location. Runtime-only: the
	// run command sets it from its positional argument or flag.
	Path string `mapstructure:"path" yaml:"path"`

	// RawTable is the table holding the raw customer batch.
	RawTable string `mapstructure:"raw_table" yaml:"raw_table"`

	// StatsTable is the table holding the order aggregates
	// supplied by the upstream collaborator.
	StatsTable string `mapstructure:"stats_table" yaml:"stats_table"`
}

// DatesConfig configures date parsing.
type DatesConfig struct {
	// FormatPriority is the ordered list of layout names the
	// parser tries: "ymd", "dmy", "mdy". The order is a business
	// rule - it decides how ambiguous strings parse.
	FormatPriority []string `mapstructure:"format_priority" yaml:"format_priority"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "goldrec",
			SSLMode:   "disable",
			BatchSize: 3000,
		},
		Landing: LandingConfig{
			RawTable:   "raw_customers",
			StatsTable: "order_stats",
		},
		Dates: DatesConfig{
			FormatPriority: []string{"ymd", "dmy", "mdy"},
		},
		Scoring: score.DefaultParams(),
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
