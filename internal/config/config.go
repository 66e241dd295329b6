package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoggingAdapter configures a single log output adapter.
type LoggingAdapter struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Logging struct {
		Level    string           `yaml:"level" default:"info"`
		Format   string           `yaml:"format" default:"json"`
		Adapters []LoggingAdapter `yaml:"adapters"`
	} `yaml:"logging"`

	Ledger struct {
		Backend string `yaml:"backend" default:"memory"` // memory or redis
	} `yaml:"ledger"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Search struct {
		Endpoint     string        `yaml:"endpoint"`
		Timeout      time.Duration `yaml:"timeout" default:"15s"`
		RateLimit    int           `yaml:"rate_limit" default:"60"` // requests per minute
		MaxFailures  int           `yaml:"max_failures" default:"5"`
		ResetTimeout time.Duration `yaml:"reset_timeout" default:"1m"`
		MaxResults   int           `yaml:"max_results" default:"25"`
	} `yaml:"search"`

	Pipeline struct {
		AutoApplyThreshold int           `yaml:"auto_apply_threshold" default:"70"`
		MaxApplications    int           `yaml:"max_applications" default:"10"`
		BatchWorkers       int           `yaml:"batch_workers" default:"4"`
		ResetSweepInterval time.Duration `yaml:"reset_sweep_interval" default:"1h"`
	} `yaml:"pipeline"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Ledger.Backend = "memory"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Search.Timeout = 15 * time.Second
	config.Search.RateLimit = 60
	config.Search.MaxFailures = 5
	config.Search.ResetTimeout = time.Minute
	config.Search.MaxResults = 25

	config.Pipeline.AutoApplyThreshold = 70
	config.Pipeline.MaxApplications = 10
	config.Pipeline.BatchWorkers = 4
	config.Pipeline.ResetSweepInterval = time.Hour

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if backend := os.Getenv("LEDGER_BACKEND"); backend != "" {
		c.Ledger.Backend = backend
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if endpoint := os.Getenv("SEARCH_ENDPOINT"); endpoint != "" {
		c.Search.Endpoint = endpoint
	}

	if timeout := os.Getenv("SEARCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Search.Timeout = d
		}
	}

	if threshold := os.Getenv("AUTO_APPLY_THRESHOLD"); threshold != "" {
		if t, err := strconv.Atoi(threshold); err == nil {
			c.Pipeline.AutoApplyThreshold = t
		}
	}

	if maxApps := os.Getenv("MAX_APPLICATIONS"); maxApps != "" {
		if m, err := strconv.Atoi(maxApps); err == nil {
			c.Pipeline.MaxApplications = m
		}
	}

	if workers := os.Getenv("BATCH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			c.Pipeline.BatchWorkers = w
		}
	}
}
