package config

import (
	"strings"

	"github.com/goldrec/goldrec/pkg/dateparse"
	"github.com/goldrec/goldrec/pkg/score"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records per multi-row
// INSERT used when publishing scored records.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLandingPath sets the landing store batch file path.
// Runtime-only field - not in ToOptions().
func OptLandingPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Landing Path", s) {
			c.Landing.Path = s
		}
	}
}

// OptLandingRawTable sets the raw customer batch table name.
func OptLandingRawTable(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Landing Raw Table", s) {
			c.Landing.RawTable = s
		}
	}
}

// OptLandingStatsTable sets the order aggregates table name.
func OptLandingStatsTable(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Landing Stats Table", s) {
			c.Landing.StatsTable = s
		}
	}
}

// OptDatesFormatPriority sets the ordered date layout names. Every
// name must be a known layout; an invalid list is rejected whole so
// the documented priority stays intact.
func OptDatesFormatPriority(names []string) Option {
	return func(c *Config) {
		if len(names) == 0 {
			return
		}
		if isValidLayouts(names) {
			c.Dates.FormatPriority = names
		}
	}
}

// OptScoringRecencyBands sets the recency day boundaries and their
// scores. Bands must have positive day bounds and scores in [1,5].
func OptScoringRecencyBands(bands []score.RecencyBand) Option {
	return func(c *Config) {
		if len(bands) == 0 {
			return
		}
		for _, b := range bands {
			if b.MaxDays <= 0 || b.Score < 1 || b.Score > 5 {
				warnInvalid("Scoring Recency Bands")
				return
			}
		}
		c.Scoring.RecencyBands = bands
	}
}

// OptScoringWeights sets the health score weights. Negative weights
// are rejected.
func OptScoringWeights(w score.Weights) Option {
	return func(c *Config) {
		if w.Recency < 0 || w.Frequency < 0 || w.Monetary < 0 ||
			w.ValidEmail < 0 {
			warnInvalid("Scoring Weights")
			return
		}
		c.Scoring.Weights = w
	}
}

// OptScoringBands sets the health classification cut-points. They
// must descend: excellent > good > fair > 0.
func OptScoringBands(b score.Bands) Option {
	return func(c *Config) {
		if b.Excellent <= b.Good || b.Good <= b.Fair || b.Fair <= 0 {
			warnInvalid("Scoring Bands")
			return
		}
		c.Scoring.Bands = b
	}
}

// OptScoringSegments sets the ordered segment rules. Rules need a
// name and bounds within [0,5].
func OptScoringSegments(rules []score.SegmentRule) Option {
	return func(c *Config) {
		if len(rules) == 0 {
			return
		}
		for _, r := range rules {
			if strings.TrimSpace(r.Name) == "" ||
				!validBound(r.MinRecency) || !validBound(r.MaxRecency) ||
				!validBound(r.MinFrequency) || !validBound(r.MaxFrequency) ||
				!validBound(r.MinMonetary) {
				warnInvalid("Scoring Segments")
				return
			}
		}
		c.Scoring.Segments = rules
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for the
// normalize stage. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func validBound(i int) bool {
	return i >= 0 && i <= 5
}

func isValidLayouts(names []string) bool {
	for _, name := range names {
		known := false
		for _, d := range dateparse.DefaultPriority {
			if name == d {
				known = true
				break
			}
		}
		if !known {
			warnInvalid("Dates Format Priority")
			return false
		}
	}
	return true
}
