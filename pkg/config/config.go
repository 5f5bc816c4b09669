package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetworkConfig holds all configuration for one Indexer State Machine
// process (§5: one process per network). A multi-network deployment runs
// several of these processes, each pointed at its own environment, rather
// than one process juggling many chains.
type NetworkConfig struct {
	// Network Configuration
	Network         string // "ethereum", "bsc", "solana", "near", ...
	Backend         string // "evm", "solana", or "near"
	RPCNodeURL      string
	ContractAddress string

	// Webhook Configuration
	WebhookURL string
	JWTSecret  string

	// Indexer Configuration
	StateFile     string
	WaitInterval  time.Duration
	FetchingDelay time.Duration
	PageSize      int

	// Service Configuration
	IndexerID string
	LogLevel  string
}

// Load reads one network's configuration from the environment.
//
// SECURITY: Required variables have no defaults and must be explicitly set.
// Call Validate() after Load() to ensure all required configuration is present.
func Load() (*NetworkConfig, error) {
	cfg := &NetworkConfig{
		// Network Configuration - REQUIRED, no defaults for production security
		Network:         getEnv("NETWORK", ""),
		Backend:         getEnv("BACKEND", ""),
		RPCNodeURL:      getEnv("RPC_NODE_URL", ""),
		ContractAddress: getEnv("CONTRACT_ADDRESS", ""),

		// Webhook Configuration - REQUIRED
		WebhookURL: getEnv("WEBHOOK_URL", ""),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		// Indexer Configuration - safe defaults
		StateFile:     getEnv("STATE_FILE", "./indexer-state.json"),
		WaitInterval:  time.Duration(getEnvInt64("WAIT_INTERVAL_MS", 5000)) * time.Millisecond,
		FetchingDelay: time.Duration(getEnvInt64("FETCHING_DELAY_MS", 0)) * time.Millisecond,
		PageSize:      getEnvInt("INDEXER_PAGE_SIZE", 100),

		// Service Configuration
		IndexerID: getEnv("INDEXER_ID", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and secure.
// This must be called after Load() before starting the service.
func (c *NetworkConfig) Validate() error {
	var errors []string

	// Required network configuration
	if c.Network == "" {
		errors = append(errors, "NETWORK is required but not set")
	}
	switch c.Backend {
	case "evm", "solana", "near":
	default:
		errors = append(errors, "BACKEND must be one of evm, solana, near")
	}
	if c.RPCNodeURL == "" {
		errors = append(errors, "RPC_NODE_URL is required but not set")
	}
	if c.ContractAddress == "" {
		errors = append(errors, "CONTRACT_ADDRESS is required but not set")
	}

	// Webhook configuration
	if c.WebhookURL == "" {
		errors = append(errors, "WEBHOOK_URL is required but not set")
	}
	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required but not set")
	} else if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET must be at least 32 characters for security")
	}

	// Indexer configuration
	if c.StateFile == "" {
		errors = append(errors, "STATE_FILE is required but not set")
	}
	if c.WaitInterval <= 0 {
		errors = append(errors, "WAIT_INTERVAL_MS must be a positive duration")
	}
	if c.PageSize <= 0 {
		errors = append(errors, "INDEXER_PAGE_SIZE must be a positive integer")
	}
	if c.IndexerID == "" {
		errors = append(errors, "INDEXER_ID is required but not set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateForDevelopment performs relaxed validation suitable for local
// development. WARNING: do not use this in production - use Validate() instead.
func (c *NetworkConfig) ValidateForDevelopment() error {
	var errors []string

	if c.RPCNodeURL == "" {
		errors = append(errors, "RPC_NODE_URL is required")
	}
	if c.ContractAddress == "" {
		errors = append(errors, "CONTRACT_ADDRESS is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("development configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
