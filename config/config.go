package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the fitcoach service and CLI.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // text or json
}

// ServerConfig contains HTTP server and auth settings
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig selects and configures the generative AI backend.
type ProviderConfig struct {
	Type   string       `mapstructure:"type"` // gemini or openai
	Gemini GeminiConfig `mapstructure:"gemini"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

func (p ProviderConfig) Validate() error {
	switch strings.ToLower(p.Type) {
	case "gemini", "":
		return p.Gemini.Validate()
	case "openai":
		return p.OpenAI.Validate()
	}
	return fmt.Errorf("provider.type %q is not supported", p.Type)
}

// GeminiConfig covers the text, speech and image endpoints of the Generative Language API.
type GeminiConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	PlanModel  string        `mapstructure:"plan_model"`
	TTSModel   string        `mapstructure:"tts_model"`
	ImageModel string        `mapstructure:"image_model"`
	Voice      string        `mapstructure:"voice"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retry      RetryConfig   `mapstructure:"retry"`
}

// RetryConfig controls the exponential backoff of remote calls.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

func (r RetryConfig) Validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be >= 1")
	}
	if r.BackoffBase < 0 {
		return fmt.Errorf("retry.backoff_base cannot be negative")
	}
	return nil
}

func (g GeminiConfig) Validate() error {
	if strings.TrimSpace(g.BaseURL) == "" {
		return fmt.Errorf("provider.gemini.base_url required")
	}
	if strings.TrimSpace(g.PlanModel) == "" || strings.TrimSpace(g.TTSModel) == "" || strings.TrimSpace(g.ImageModel) == "" {
		return fmt.Errorf("provider.gemini models (plan_model, tts_model, image_model) required")
	}
	if err := g.Retry.Validate(); err != nil {
		return fmt.Errorf("provider.gemini.%w", err)
	}
	return nil
}

// OpenAIConfig covers chat completions, audio speech and image generation.
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	PlanModel   string        `mapstructure:"plan_model"`
	TTSModel    string        `mapstructure:"tts_model"`
	ImageModel  string        `mapstructure:"image_model"`
	Voice       string        `mapstructure:"voice"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Retry       RetryConfig   `mapstructure:"retry"`
}

func (o OpenAIConfig) Validate() error {
	if strings.TrimSpace(o.BaseURL) == "" {
		return fmt.Errorf("provider.openai.base_url required")
	}
	if strings.TrimSpace(o.PlanModel) == "" || strings.TrimSpace(o.TTSModel) == "" || strings.TrimSpace(o.ImageModel) == "" {
		return fmt.Errorf("provider.openai models (plan_model, tts_model, image_model) required")
	}
	if err := o.Retry.Validate(); err != nil {
		return fmt.Errorf("provider.openai.%w", err)
	}
	return nil
}

// StorageConfig selects the persistent-value backend.
type StorageConfig struct {
	Type     string         `mapstructure:"type"` // leveldb, redis, postgres, memory
	LevelDB  LevelDBConfig  `mapstructure:"leveldb"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

func (s StorageConfig) Validate() error {
	switch s.Type {
	case "leveldb":
		if strings.TrimSpace(s.LevelDB.Path) == "" {
			return fmt.Errorf("storage.leveldb.path required")
		}
	case "redis":
		return s.Redis.Validate()
	case "postgres":
		return s.Postgres.Validate()
	case "memory":
	default:
		return fmt.Errorf("storage.type %q is not supported", s.Type)
	}
	return nil
}

// LevelDBConfig points at the on-disk database directory.
type LevelDBConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host      string        `mapstructure:"host"`
	Port      string        `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	Timeout   time.Duration `mapstructure:"timeout"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	return nil
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("storage.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("storage.postgres.dbname required when url is not provided")
	}
	return nil
}

// DSN returns the connection string, building one from parts when url is empty.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

// TelemetryConfig contains telemetry and monitoring settings
type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ServiceName  string `mapstructure:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// bindEnvKeys registers every leaf mapstructure key so FITCOACH_* variables
// override it even when no default or file value exists.
func bindEnvKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			bindEnvKeys(v, f.Type, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_format", "text")
	v.SetDefault("server.address", ":10001")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("provider.type", "gemini")
	v.SetDefault("provider.gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("provider.gemini.plan_model", "gemini-2.5-flash-preview-09-2025")
	v.SetDefault("provider.gemini.tts_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("provider.gemini.image_model", "imagen-3.0-generate-002")
	v.SetDefault("provider.gemini.voice", "Kore")
	v.SetDefault("provider.gemini.retry.max_attempts", 3)
	v.SetDefault("provider.gemini.retry.backoff_base", time.Second)
	v.SetDefault("provider.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("provider.openai.plan_model", "gpt-4o-mini")
	v.SetDefault("provider.openai.tts_model", "gpt-4o-mini-tts")
	v.SetDefault("provider.openai.image_model", "dall-e-3")
	v.SetDefault("provider.openai.voice", "alloy")
	v.SetDefault("provider.openai.temperature", 0.2)
	v.SetDefault("provider.openai.timeout", 60*time.Second)
	v.SetDefault("provider.openai.retry.max_attempts", 3)
	v.SetDefault("provider.openai.retry.backoff_base", time.Second)
	v.SetDefault("storage.type", "leveldb")
	v.SetDefault("storage.leveldb.path", "./data/fitcoach")
	v.SetDefault("storage.redis.host", "localhost")
	v.SetDefault("storage.redis.port", "6379")
	v.SetDefault("storage.redis.timeout", 5*time.Second)
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.service_name", "fitcoach")
}

// LoadConfig reads config from path (or the default search paths when empty),
// overlays FITCOACH_* environment variables and validates the result.
// A missing config file is not an error; defaults and env are enough to run.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			v.AddConfigPath(exeDir)
			v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("FITCOACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	bindEnvKeys(v, reflect.TypeOf(Config{}), "")
	_ = v.BindEnv("provider.gemini.api_key", "FITCOACH_PROVIDER_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("provider.openai.api_key", "FITCOACH_PROVIDER_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("server.jwt_secret", "FITCOACH_SERVER_JWT_SECRET")
	_ = v.BindEnv("storage.redis.password", "FITCOACH_STORAGE_REDIS_PASSWORD")
	_ = v.BindEnv("storage.postgres.url", "FITCOACH_STORAGE_POSTGRES_URL", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Provider.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
