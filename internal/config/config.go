// Package config loads forge settings from defaults, an optional YAML file,
// a .env file and FORGE_ environment variables
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. FORGE_LLM_MODEL
const EnvPrefix = "FORGE"

// Keys read outside the Config struct
const (
	KeyConfigFile = "config"
	KeyEnvFile    = "env_file"
)

// LLM providers
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config is the full forge configuration
type Config struct {
	TemplatesDir string      `mapstructure:"templates_dir"`
	OutputDir    string      `mapstructure:"output_dir"`
	SubjectsFile string      `mapstructure:"subjects_file"`
	MetricsFile  string      `mapstructure:"metrics_file"`
	Log          LogConfig   `mapstructure:"log"`
	LLM          LLMConfig   `mapstructure:"llm"`
	Cache        CacheConfig `mapstructure:"cache"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig configures the chat-completions client
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig configures the script cache. An empty RedisURL selects the
// in-memory cache.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// SetDefaults registers every key so environment overrides reach Unmarshal
func SetDefaults(v *viper.Viper) {
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("output_dir", "output")
	v.SetDefault("subjects_file", "")
	v.SetDefault("metrics_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("llm.provider", ProviderOllama)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "llama2")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.timeout", 2*time.Minute)

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault(KeyEnvFile, ".env")
}

// Load resolves the configuration. Flags already bound to v take
// precedence over the environment, which takes precedence over the file.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	if envFile := v.GetString(KeyEnvFile); envFile != "" {
		if err := loadDotEnv(envFile); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// provider-native variable names work too
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.base_url", EnvPrefix+"_LLM_BASE_URL", "OLLAMA_BASE_URL")
	_ = v.BindEnv("cache.redis_url", EnvPrefix+"_CACHE_REDIS_URL", "REDIS_URL")

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "invalid configuration")
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWithCode(err, errors.CodeConfiguration, "failed to stat env file").WithPath(path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapWithCode(err, errors.CodeConfiguration, "failed to load env file").WithPath(path)
	}
	return nil
}

func readConfigFile(v *viper.Viper) error {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.WrapWithCode(err, errors.CodeConfiguration, "failed to read config file").WithPath(path)
		}
		return nil
	}

	v.SetConfigName("forge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.WrapWithCode(err, errors.CodeConfiguration, "failed to read config file")
	}
	return nil
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("templates_dir", c.TemplatesDir, vb)
	errors.ValidateRequired("output_dir", c.OutputDir, vb)
	errors.ValidateEnum("log.format", strings.ToLower(c.Log.Format), []string{"console", "json"}, vb)
	errors.ValidateEnum("llm.provider", strings.ToLower(c.LLM.Provider), []string{ProviderOpenAI, ProviderOllama}, vb)
	errors.ValidateRequired("llm.model", c.LLM.Model, vb)

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		vb.Fieldf("llm.temperature", "must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		vb.InvalidField("llm.max_tokens", "must be positive")
	}
	if c.LLM.Timeout <= 0 {
		vb.InvalidField("llm.timeout", "must be positive")
	}
	if c.Cache.TTL <= 0 {
		vb.InvalidField("cache.ttl", "must be positive")
	}

	return vb.Build()
}
