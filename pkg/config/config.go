package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server ServerConfig `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for content generation"`

	Auth AuthConfig `yaml:"auth" json:"auth" jsonschema:"description=Authentication provider configuration"`

	Events EventsConfig `yaml:"events" json:"events" jsonschema:"description=Event bus configuration"`

	Email EmailConfig `yaml:"email" json:"email" jsonschema:"description=Email delivery configuration"`

	News NewsConfig `yaml:"news" json:"news" jsonschema:"description=Market news sources for digests"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
}

// DatabaseConfig holds SQLite connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:signalist.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds scheduler settings
type ScheduleConfig struct {
	DailyDigest bool   `yaml:"daily_digest" json:"daily_digest" jsonschema:"default=false,description=Publish the daily news digest trigger"`
	DigestTime  string `yaml:"digest_time" json:"digest_time" jsonschema:"default=12:00,description=UTC time of day (HH:MM) for the daily digest"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public URL of the application, used for email callbacks"`
}

// LLMConfig holds LLM configuration for content generation
type LLMConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey        string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model         string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini)"`
	Temperature   float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens     int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt  string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	UseJSONSchema bool          `yaml:"use_json_schema" json:"use_json_schema" jsonschema:"default=false,description=Send JSON schema response format for structured tasks (not all models support this)"`
}

// AuthConfig holds authentication provider settings
type AuthConfig struct {
	URL     string        `yaml:"url" json:"url" jsonschema:"required,description=Base URL of the authentication provider API"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
}

// EventsConfig holds event transport and delivery settings
type EventsConfig struct {
	Transport     string      `yaml:"transport" json:"transport" jsonschema:"default=memory,enum=memory,enum=kafka,description=Event transport"`
	Dedup         string      `yaml:"dedup" json:"dedup" jsonschema:"default=sqlite,enum=sqlite,enum=redis,enum=none,description=Duplicate delivery guard"`
	WebhookSecret string      `yaml:"webhook_secret" json:"webhook_secret" jsonschema:"description=Shared secret required on the event delivery webhook (optional)"`
	Kafka         KafkaConfig `yaml:"kafka" json:"kafka" jsonschema:"description=Kafka transport settings"`
	Redis         RedisConfig `yaml:"redis" json:"redis" jsonschema:"description=Redis dedup settings"`
}

// KafkaConfig holds kafka transport settings
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" json:"brokers" jsonschema:"description=Kafka brokers"`
	Topic   string   `yaml:"topic" json:"topic" jsonschema:"default=signalist-events,description=Kafka topic for domain events"`
	GroupID string   `yaml:"group_id" json:"group_id" jsonschema:"default=signalist,description=Kafka consumer group"`
}

// RedisConfig holds redis dedup settings
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis address"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=Redis password"`
	DB       int           `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=168h,description=How long processed event keys are kept"`
}

// EmailConfig holds email delivery settings
type EmailConfig struct {
	Provider string `yaml:"provider" json:"provider" jsonschema:"default=log,enum=smtp,enum=log,description=Email delivery provider"`
	Host     string `yaml:"host" json:"host" jsonschema:"description=SMTP host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP port"`
	Username string `yaml:"username" json:"username" jsonschema:"description=SMTP username"`
	Password string `yaml:"password" json:"password" jsonschema:"description=SMTP password"`
	From     string `yaml:"from" json:"from" jsonschema:"description=Sender address"`
	FromName string `yaml:"from_name" json:"from_name" jsonschema:"default=Signalist,description=Sender display name"`
}

// NewsConfig holds market news source settings
type NewsConfig struct {
	Feeds          []string      `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feed URLs with market news"`
	MaxItems       int           `yaml:"max_items" json:"max_items" jsonschema:"default=6,minimum=1,description=Maximum articles per digest"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Signalist/1.0,description=User agent for HTTP requests"`
	ExtractContent bool          `yaml:"extract_content" json:"extract_content" jsonschema:"default=false,description=Extract article text for items without summary"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	c.Server.BaseURL = strings.TrimSuffix(c.Server.BaseURL, "/")

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:signalist.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// llm
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	// auth
	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = 10 * time.Second
	}

	// events
	if c.Events.Transport == "" {
		c.Events.Transport = "memory"
	}
	if c.Events.Dedup == "" {
		c.Events.Dedup = "sqlite"
	}
	if c.Events.Kafka.Topic == "" {
		c.Events.Kafka.Topic = "signalist-events"
	}
	if c.Events.Kafka.GroupID == "" {
		c.Events.Kafka.GroupID = "signalist"
	}
	if c.Events.Redis.Addr == "" {
		c.Events.Redis.Addr = "localhost:6379"
	}
	if c.Events.Redis.TTL == 0 {
		c.Events.Redis.TTL = 7 * 24 * time.Hour
	}

	// email
	if c.Email.Provider == "" {
		c.Email.Provider = "log"
	}
	if c.Email.Port == 0 {
		c.Email.Port = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Signalist"
	}

	// news
	if c.News.MaxItems == 0 {
		c.News.MaxItems = 6
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 30 * time.Second
	}
	if c.News.UserAgent == "" {
		c.News.UserAgent = "Signalist/1.0"
	}

	// schedule
	if c.Schedule.DigestTime == "" {
		c.Schedule.DigestTime = "12:00"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Auth.URL == "" {
		return fmt.Errorf("auth.url is required")
	}

	switch cfg.Events.Transport {
	case "memory":
	case "kafka":
		if len(cfg.Events.Kafka.Brokers) == 0 {
			return fmt.Errorf("events.kafka.brokers is required for kafka transport")
		}
	default:
		return fmt.Errorf("events.transport must be memory or kafka, got %q", cfg.Events.Transport)
	}

	switch cfg.Events.Dedup {
	case "sqlite", "redis", "none":
	default:
		return fmt.Errorf("events.dedup must be sqlite, redis or none, got %q", cfg.Events.Dedup)
	}

	switch cfg.Email.Provider {
	case "log":
	case "smtp":
		if cfg.Email.Host == "" || cfg.Email.From == "" {
			return fmt.Errorf("email.host and email.from are required for smtp provider")
		}
	default:
		return fmt.Errorf("email.provider must be smtp or log, got %q", cfg.Email.Provider)
	}

	if cfg.News.MaxItems < 1 {
		return fmt.Errorf("news.max_items must be at least 1")
	}

	if _, err := time.Parse("15:04", cfg.Schedule.DigestTime); err != nil {
		return fmt.Errorf("schedule.digest_time must be HH:MM: %w", err)
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// DigestTime returns hour and minute of the daily digest
func (c *Config) DigestTime() (hour, minute int) {
	t, err := time.Parse("15:04", c.Schedule.DigestTime)
	if err != nil {
		return 12, 0
	}
	return t.Hour(), t.Minute()
}

// Secrets returns configured secret values to be masked in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.LLM.APIKey, c.Email.Password, c.Events.Redis.Password, c.Events.WebhookSecret} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
