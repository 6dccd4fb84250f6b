package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/token"
)

// Config holds the prodsearch configuration shared by the API server and the indexer.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Elastic   ElasticConfig   `yaml:"elastic"`
	Search    SearchConfig    `yaml:"search"`
	Cache     CacheConfig     `yaml:"cache"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Indexer   IndexerConfig   `yaml:"indexer"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ElasticConfig holds search engine connection settings.
type ElasticConfig struct {
	URLs             []string `yaml:"urls"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	Index            string   `yaml:"index"` // alias searched by the API and moved by the indexer
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds query compilation settings.
type SearchConfig struct {
	DefaultPageSize int              `yaml:"default_page_size"`
	Analyzers       AnalyzersConfig  `yaml:"analyzers"`
	Fields          FieldsConfig     `yaml:"fields"`
	Facets          FacetsConfig     `yaml:"facets"`
	Vocabulary      VocabularyConfig `yaml:"vocabulary"`
}

// AnalyzersConfig names the index analyzers used for query text.
type AnalyzersConfig struct {
	Word    string `yaml:"word"`
	Shingle string `yaml:"shingle"`
}

// FieldsConfig overrides index field names. Empty values use the built-in layout.
type FieldsConfig struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Brand            string `yaml:"brand"`
	BrandText        string `yaml:"brand_text"`
	NameShingles     string `yaml:"name_shingles"`
	BrandShingles    string `yaml:"brand_shingles"`
	Price            string `yaml:"price"`
	Variants         string `yaml:"variants"`
	VariantSize      string `yaml:"variant_size"`
	VariantSizeText  string `yaml:"variant_size_text"`
	VariantColor     string `yaml:"variant_color"`
	VariantColorText string `yaml:"variant_color_text"`
}

// FacetsConfig overrides the facet keys of the response.
type FacetsConfig struct {
	Brand        string `yaml:"brand"`
	Price        string `yaml:"price"`
	VariantSize  string `yaml:"variant_size"`
	VariantColor string `yaml:"variant_color"`
}

// VocabularyConfig lists the query terms recognized as sizes and colors.
type VocabularyConfig struct {
	Sizes  []string `yaml:"sizes"`
	Colors []string `yaml:"colors"`
}

// CacheConfig holds the Redis analyzer-token cache settings.
type CacheConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLSec   int      `yaml:"ttl_sec"`
}

// AnalyticsConfig holds the Kafka search-event publisher settings.
type AnalyticsConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Brokers    []string `yaml:"brokers"`
	Topic      string   `yaml:"topic"`
	BufferSize int      `yaml:"buffer_size"`
}

// IndexerConfig holds index rebuild settings.
type IndexerConfig struct {
	SettingsFile string `yaml:"settings_file"`
	MappingsFile string `yaml:"mappings_file"`
	DataFile     string `yaml:"data_file"`
	Keep         int    `yaml:"keep"`
	BatchSize    int    `yaml:"batch_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration.
// ${VAR} and ${VAR:-default} references are expanded first.
func Parse(data []byte) (Config, error) {
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
	if c.Elastic.Index == "" {
		c.Elastic.Index = "products"
	}
	if c.Elastic.ReadinessTimeout <= 0 {
		c.Elastic.ReadinessTimeout = 30
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 10
	}

	a := domain.DefaultAnalyzers()
	setDefault(&c.Search.Analyzers.Word, a.Word)
	setDefault(&c.Search.Analyzers.Shingle, a.Shingle)

	f, n := domain.DefaultFields(), domain.DefaultFacetNames()
	fc := &c.Search.Fields
	setDefault(&fc.ID, f.ID)
	setDefault(&fc.Name, f.Name)
	setDefault(&fc.Brand, f.Brand)
	setDefault(&fc.BrandText, f.BrandText)
	setDefault(&fc.NameShingles, f.NameShingles)
	setDefault(&fc.BrandShingles, f.BrandShingles)
	setDefault(&fc.Price, f.Price)
	setDefault(&fc.Variants, f.Variants)
	setDefault(&fc.VariantSize, f.VariantSize)
	setDefault(&fc.VariantSizeText, f.VariantSizeText)
	setDefault(&fc.VariantColor, f.VariantColor)
	setDefault(&fc.VariantColorText, f.VariantColorText)
	setDefault(&c.Search.Facets.Brand, n.Brand)
	setDefault(&c.Search.Facets.Price, n.Price)
	setDefault(&c.Search.Facets.VariantSize, n.VariantSize)
	setDefault(&c.Search.Facets.VariantColor, n.VariantColor)

	if len(c.Search.Vocabulary.Sizes) == 0 {
		c.Search.Vocabulary.Sizes = token.DefaultSizes()
	}
	if len(c.Search.Vocabulary.Colors) == 0 {
		c.Search.Vocabulary.Colors = token.DefaultColors()
	}

	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Analytics.Topic == "" {
		c.Analytics.Topic = "search-events"
	}
	if c.Analytics.BufferSize <= 0 {
		c.Analytics.BufferSize = 1024
	}
	if c.Indexer.Keep <= 0 {
		c.Indexer.Keep = 3
	}
	if c.Indexer.BatchSize <= 0 {
		c.Indexer.BatchSize = 500
	}
}

func setDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Elastic.URLs) == 0 {
		return errors.New("elastic.urls is required")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return errors.New("cache.addrs is required when the cache is enabled")
	}
	if c.Analytics.Enabled && len(c.Analytics.Brokers) == 0 {
		return errors.New("analytics.brokers is required when analytics is enabled")
	}
	if _, err := c.Search.Vocabulary.Build(); err != nil {
		return fmt.Errorf("search.vocabulary: %w", err)
	}
	return nil
}

// Build creates the token vocabulary.
func (v VocabularyConfig) Build() (*token.Vocabulary, error) {
	vocab, err := token.NewVocabulary(v.Sizes, v.Colors)
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}
	return vocab, nil
}

// Domain returns the field layout.
func (f FieldsConfig) Domain() domain.Fields {
	return domain.Fields{
		ID:               f.ID,
		Name:             f.Name,
		Brand:            f.Brand,
		BrandText:        f.BrandText,
		NameShingles:     f.NameShingles,
		BrandShingles:    f.BrandShingles,
		Price:            f.Price,
		Variants:         f.Variants,
		VariantSize:      f.VariantSize,
		VariantSizeText:  f.VariantSizeText,
		VariantColor:     f.VariantColor,
		VariantColorText: f.VariantColorText,
	}
}

// Domain returns the facet keys.
func (f FacetsConfig) Domain() domain.FacetNames {
	return domain.FacetNames{
		Brand:        f.Brand,
		Price:        f.Price,
		VariantSize:  f.VariantSize,
		VariantColor: f.VariantColor,
	}
}

// Domain returns the analyzer names.
func (a AnalyzersConfig) Domain() domain.Analyzers {
	return domain.Analyzers{Word: a.Word, Shingle: a.Shingle}
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
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
