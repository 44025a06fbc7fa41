package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	RateLimits RateLimitsConfig `yaml:"rate_limits"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// GeminiConfig configures the generative backend. The API key is taken
// from the GEMINI_API_KEY environment variable; when it is absent the
// backend handle is simply not constructed and the chat pipeline serves
// scripted fallbacks only.
type GeminiConfig struct {
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RateLimitsConfig defines the per-identity sliding-window admission
// limits. Zero or negative values fall back to the defaults below.
type RateLimitsConfig struct {
	ChatPerMinute    int `yaml:"chat_per_minute"`
	ContactPerHour   int `yaml:"contact_per_hour"`
	PlanPerHour      int `yaml:"plan_per_hour"`
	WindowTTLSeconds int `yaml:"window_ttl_seconds"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// GetBasePath walks up from the working directory until it finds the
// directory holding config.yaml, so binaries can run from any subdir.
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
