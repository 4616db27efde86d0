package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Draft struct {
		OrchestratorBatchSize int32 `yaml:"orchestrator_batch_size"`
	} `yaml:"draft"`
	Outbox struct {
		// Mode is "poll" (default) or "listen". Listen mode rides Postgres
		// NOTIFY for low latency and still polls as a fallback.
		Mode            string `yaml:"mode"`
		PollIntervalSec int    `yaml:"poll_interval_sec"`
		BatchSize       int32  `yaml:"batch_size"`
	} `yaml:"outbox"`
	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

func defaultConfig() *Config {
	var config Config
	config.Draft.OrchestratorBatchSize = 10
	config.Outbox.PollIntervalSec = 5
	config.Outbox.BatchSize = 100
	return &config
}

func (c *Config) outboxPollInterval() time.Duration {
	if c.Outbox.PollIntervalSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Outbox.PollIntervalSec) * time.Second
}
