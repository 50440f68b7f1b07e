package configloader

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RPCConfig holds the chain RPC endpoint configuration. The URL can be
// overridden with the RPC_URL environment variable.
type RPCConfig struct {
	URL                  string  `yaml:"url" validate:"required,url"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimit            float64 `yaml:"rateLimit"`
	BurstLimit           int     `yaml:"burstLimit"`
}

// RegistryConfig holds the reference-data endpoints: the public trade-group
// list and the token metadata cache.
type RegistryConfig struct {
	GroupsURL            string `yaml:"groupsURL" validate:"required,url"`
	TokenMetadataURL     string `yaml:"tokenMetadataURL" validate:"required,url"`
	TokenIconBaseURL     string `yaml:"tokenIconBaseURL" validate:"required,url"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int    `yaml:"cacheTTLMinutes"`
}

// ProgramConfig identifies the on-chain lending program.
type ProgramConfig struct {
	LendingProgramID string `yaml:"lendingProgramID" validate:"required"`
}

// EngineConfig holds the risk engine policy knobs. DustThresholdUsd is kept
// as a string so it parses losslessly into a decimal.
type EngineConfig struct {
	DustThresholdUsd    string `yaml:"dustThresholdUsd"`
	MaxConcurrentGroups int    `yaml:"maxConcurrentGroups"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	RPC      RPCConfig      `yaml:"rpc"`
	Registry RegistryConfig `yaml:"registry"`
	Program  ProgramConfig  `yaml:"program"`
	Engine   EngineConfig   `yaml:"engine"`
}

// Load reads the YAML configuration file from the given path, applies env
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if url := os.Getenv("RPC_URL"); url != "" {
		cfg.RPC.URL = url
	}

	applyDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.RPC.RequestTimeoutMillis <= 0 {
		cfg.RPC.RequestTimeoutMillis = 10000
	}
	if cfg.RPC.RateLimit <= 0 {
		cfg.RPC.RateLimit = 10
	}
	if cfg.RPC.BurstLimit <= 0 {
		cfg.RPC.BurstLimit = 5
	}

	if cfg.Registry.RequestTimeoutMillis <= 0 {
		cfg.Registry.RequestTimeoutMillis = 10000
	}
	if cfg.Registry.CacheTTLMinutes <= 0 {
		cfg.Registry.CacheTTLMinutes = 10
	}

	if cfg.Engine.DustThresholdUsd == "" {
		cfg.Engine.DustThresholdUsd = "0.01"
	}
	if cfg.Engine.MaxConcurrentGroups <= 0 {
		cfg.Engine.MaxConcurrentGroups = 8
	}
}
