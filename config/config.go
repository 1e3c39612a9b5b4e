package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	AI        AIConfig        `yaml:"ai"`
	Listener  ListenerConfig  `yaml:"listener"`
	Events    EventsConfig    `yaml:"events"`
	Retention RetentionConfig `yaml:"retention"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MongoConfig struct {
	// URI is normally taken from the MONGODB_URI environment variable;
	// the yaml value acts as a local-development fallback.
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type AIConfig struct {
	// APIKey comes from the AI_API_KEY environment variable only.
	APIKey string `yaml:"-"`

	// Endpoint is the base URL of an OpenAI-compatible completion API.
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`

	// TimeoutSeconds bounds a single completion round trip.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type ListenerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// EventsConfig configures the optional Kafka publisher for completed
// modifications. Empty brokers disable publishing entirely.
type EventsConfig struct {
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

type RetentionConfig struct {
	// Days is the age past which modification records are purged by the
	// retention sweep. Zero or negative disables the sweep.
	Days int `yaml:"days"`
}

func (c AIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var config *AppConfig

// InitApp loads .env and config.yaml once and applies environment
// overrides. Missing required values make startup fail.
func InitApp() error {
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		return fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}

	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
	}

	applyDefaults(&c)
	applyEnvOverrides(&c)

	if err := validateConfig(&c); err != nil {
		return err
	}

	config = &c
	return nil
}

func applyDefaults(c *AppConfig) {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "text_assistant"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-3.5-turbo"
	}
	if c.AI.TimeoutSeconds == 0 {
		c.AI.TimeoutSeconds = 30
	}
	if c.Listener.Host == "" {
		c.Listener.Host = "127.0.0.1"
	}
	if c.Listener.Port == 0 {
		c.Listener.Port = 8001
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "text.modification.completed"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("AI_API_ENDPOINT"); v != "" {
		c.AI.Endpoint = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = v
	}
	c.AI.APIKey = os.Getenv("AI_API_KEY")
}

func validateConfig(c *AppConfig) error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo uri is not configured (set MONGODB_URI or mongo.uri)")
	}
	if c.AI.Endpoint == "" {
		return fmt.Errorf("ai endpoint is not configured (set AI_API_ENDPOINT or ai.endpoint)")
	}
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI_API_KEY is not set")
	}
	return nil
}

func GetConfig() AppConfig {
	if config == nil {
		if err := InitApp(); err != nil {
			panic(err)
		}
	}
	return *config
}

// SetForTesting replaces the cached config. Tests only.
func SetForTesting(c AppConfig) {
	config = &c
}

// GetBasePath walks up from the working directory until it finds
// config.yaml, so commands work from any subdirectory of the repo.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
