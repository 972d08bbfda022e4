package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the lexdex API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CorpusConfig holds dataset loading settings.
type CorpusConfig struct {
	Dir          string `yaml:"dir"`
	KeywordsFile string `yaml:"keywords_file"` // empty = built-in keyword map
	BuildGlobal  *bool  `yaml:"build_global"`  // default true

	Vectorizer VectorizerConfig `yaml:"vectorizer"`
}

// VectorizerConfig holds TF-IDF vocabulary settings.
type VectorizerConfig struct {
	NGramMax    int     `yaml:"ngram_max"`
	MinDF       int     `yaml:"min_df"`
	MaxDFRatio  float64 `yaml:"max_df_ratio"`
	MaxFeatures int     `yaml:"max_features"`
}

// SearchConfig holds retrieval thresholds. These are tunable defaults, not
// contractual constants; calibrate against representative data.
type SearchConfig struct {
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	InclusionFloor      float64  `yaml:"inclusion_floor"`
	KeywordBoostWeight  *float64 `yaml:"keyword_boost_weight"` // explicit 0 disables boosting
	MaxSupplementary    int      `yaml:"max_supplementary"`
}

// BoostWeight returns the configured keyword boost weight.
func (s SearchConfig) BoostWeight() float64 {
	if s.KeywordBoostWeight == nil {
		return 0.4
	}
	return *s.KeywordBoostWeight
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Dir == "" {
		c.Corpus.Dir = "datasets"
	}
	if c.Corpus.BuildGlobal == nil {
		t := true
		c.Corpus.BuildGlobal = &t
	}
	if c.Corpus.Vectorizer.NGramMax <= 0 {
		c.Corpus.Vectorizer.NGramMax = 2
	}
	if c.Corpus.Vectorizer.MinDF <= 0 {
		c.Corpus.Vectorizer.MinDF = 1
	}
	if c.Corpus.Vectorizer.MaxDFRatio <= 0 {
		c.Corpus.Vectorizer.MaxDFRatio = 0.85
	}
	if c.Corpus.Vectorizer.MaxFeatures <= 0 {
		c.Corpus.Vectorizer.MaxFeatures = 10000
	}
	if c.Search.ConfidenceThreshold <= 0 {
		c.Search.ConfidenceThreshold = 0.35
	}
	if c.Search.InclusionFloor <= 0 {
		c.Search.InclusionFloor = 0.25
	}
	if c.Search.MaxSupplementary <= 0 {
		c.Search.MaxSupplementary = 2
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.ConfidenceThreshold > 1 {
		return fmt.Errorf("search.confidence_threshold must be at most 1, got %v", c.Search.ConfidenceThreshold)
	}
	if c.Search.InclusionFloor > 1 {
		return fmt.Errorf("search.inclusion_floor must be at most 1, got %v", c.Search.InclusionFloor)
	}
	if c.Search.InclusionFloor > c.Search.ConfidenceThreshold {
		return fmt.Errorf("search.inclusion_floor (%v) must not exceed search.confidence_threshold (%v)",
			c.Search.InclusionFloor, c.Search.ConfidenceThreshold)
	}
	if w := c.Search.BoostWeight(); w < 0 || w > 1 {
		return fmt.Errorf("search.keyword_boost_weight must be between 0 and 1, got %v", w)
	}
	if c.Corpus.Vectorizer.MaxDFRatio > 1 {
		return fmt.Errorf("corpus.vectorizer.max_df_ratio must be at most 1, got %v", c.Corpus.Vectorizer.MaxDFRatio)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
