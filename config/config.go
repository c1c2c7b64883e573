package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultK is used when [topk] omits k.
const DefaultK = 3

var validLogLevels = []string{"debug", "info", "warn", "error"}

type GlobalConfig struct {
	LogLevel    string `toml:"logLevel"`
	MetricsFile string `toml:"metricsFile"`
}

type GroupConfig struct {
	RecordFile    string `toml:"recordFile"`
	NormalizeCase bool   `toml:"normalizeCase"`
	ReportFile    string `toml:"reportFile"`
	PlotPath      string `toml:"plotPath"`
}

type TopKConfig struct {
	ScoreFile string `toml:"scoreFile"`
	K         int    `toml:"k"`
}

type Config struct {
	Global *GlobalConfig `toml:"global"`
	Group  *GroupConfig  `toml:"group"`
	TopK   *TopKConfig   `toml:"topk"`
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{}
	for key, value := range rawConfig {
		section, ok := value.(map[string]any)
		if !ok {
			continue
		}
		switch key {
		case "global":
			config.Global = parseGlobalConfig(section)
		case "group":
			config.Group = parseGroupConfig(section)
		case "topk":
			topk, err := parseTopKConfig(section)
			if err != nil {
				return nil, fmt.Errorf("parsing topk config: %w", err)
			}
			config.TopK = topk
		}
	}

	if config.Global == nil {
		config.Global = &GlobalConfig{}
	}

	return config, nil
}

func parseGlobalConfig(m map[string]any) *GlobalConfig {
	config := &GlobalConfig{}
	if v, ok := m["logLevel"].(string); ok {
		config.LogLevel = v
	}
	if v, ok := m["metricsFile"].(string); ok {
		config.MetricsFile = v
	}
	return config
}

func parseGroupConfig(m map[string]any) *GroupConfig {
	config := &GroupConfig{}
	if v, ok := m["recordFile"].(string); ok {
		config.RecordFile = v
	}
	if v, ok := m["normalizeCase"].(bool); ok {
		config.NormalizeCase = v
	}
	if v, ok := m["reportFile"].(string); ok {
		config.ReportFile = v
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	return config
}

func parseTopKConfig(m map[string]any) (*TopKConfig, error) {
	config := &TopKConfig{K: DefaultK}
	if v, ok := m["scoreFile"].(string); ok {
		config.ScoreFile = v
	}
	if v, ok := m["k"]; ok {
		k, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("k must be an integer, got %T", v)
		}
		config.K = int(k)
	}
	return config, nil
}

func (c *Config) validateGlobal() error {
	if c.Global == nil || c.Global.LogLevel == "" {
		return nil
	}
	for _, level := range validLogLevels {
		if strings.EqualFold(c.Global.LogLevel, level) {
			return nil
		}
	}
	return fmt.Errorf("invalid logLevel %q, must be one of %s", c.Global.LogLevel, strings.Join(validLogLevels, ", "))
}

func (c *Config) ValidateGroup() error {
	if c.Group == nil {
		return fmt.Errorf("group configuration section is required")
	}

	if c.Group.RecordFile == "" {
		return fmt.Errorf("recordFile is required in group configuration")
	}

	if _, err := os.Stat(c.Group.RecordFile); os.IsNotExist(err) {
		return fmt.Errorf("record file does not exist: %s", c.Group.RecordFile)
	}

	// reportFile and plotPath are optional

	return c.validateGlobal()
}

// ValidateTopK checks the [topk] section. The upper bound of k depends on the
// score file and is checked when selecting.
func (c *Config) ValidateTopK() error {
	if c.TopK == nil {
		return fmt.Errorf("topk configuration section is required")
	}

	if c.TopK.ScoreFile == "" {
		return fmt.Errorf("scoreFile is required in topk configuration")
	}

	if _, err := os.Stat(c.TopK.ScoreFile); os.IsNotExist(err) {
		return fmt.Errorf("score file does not exist: %s", c.TopK.ScoreFile)
	}

	if c.TopK.K < 1 {
		return fmt.Errorf("k must be at least 1, got %d", c.TopK.K)
	}

	return c.validateGlobal()
}
