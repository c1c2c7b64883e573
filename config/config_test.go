package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test_config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return configPath
}

func writeDataFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	testConfigContent := `
[global]
logLevel = "debug"
metricsFile = "/tmp/buddyx.prom"

[group]
recordFile = "favoriteMovies.txt"
normalizeCase = true
reportFile = "groups.txt"
plotPath = "groups.html"

[topk]
scoreFile = "timeSpent.txt"
k = 5
`
	config, err := LoadConfig(writeConfig(t, testConfigContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Global.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got '%s'", config.Global.LogLevel)
	}
	if config.Global.MetricsFile != "/tmp/buddyx.prom" {
		t.Errorf("Expected MetricsFile to be '/tmp/buddyx.prom', got '%s'", config.Global.MetricsFile)
	}
	if config.Group.RecordFile != "favoriteMovies.txt" {
		t.Errorf("Expected RecordFile to be 'favoriteMovies.txt', got '%s'", config.Group.RecordFile)
	}
	if !config.Group.NormalizeCase {
		t.Error("Expected NormalizeCase to be true")
	}
	if config.Group.ReportFile != "groups.txt" {
		t.Errorf("Expected ReportFile to be 'groups.txt', got '%s'", config.Group.ReportFile)
	}
	if config.Group.PlotPath != "groups.html" {
		t.Errorf("Expected PlotPath to be 'groups.html', got '%s'", config.Group.PlotPath)
	}
	if config.TopK.ScoreFile != "timeSpent.txt" {
		t.Errorf("Expected ScoreFile to be 'timeSpent.txt', got '%s'", config.TopK.ScoreFile)
	}
	if config.TopK.K != 5 {
		t.Errorf("Expected K to be 5, got %d", config.TopK.K)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "[topk]\nscoreFile = \"s.txt\"\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Global == nil {
		t.Fatal("Expected Global to default to an empty section")
	}
	if config.Group != nil {
		t.Error("Expected Group to be nil when the section is missing")
	}
	if config.TopK.K != DefaultK {
		t.Errorf("Expected default K %d, got %d", DefaultK, config.TopK.K)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", "[group\nrecordFile=", "failed to parse config file"},
		{"non-integer k", "[topk]\nk = \"three\"\n", "k must be an integer"},
		{"float k", "[topk]\nk = 2.5\n", "k must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidateGroup(t *testing.T) {
	recordFile := writeDataFile(t, "records.txt", "1:A\n")

	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{"valid", &Config{Global: &GlobalConfig{}, Group: &GroupConfig{RecordFile: recordFile}}, ""},
		{"missing section", &Config{Global: &GlobalConfig{}}, "group configuration section is required"},
		{"missing record file", &Config{Global: &GlobalConfig{}, Group: &GroupConfig{}}, "recordFile is required"},
		{"nonexistent file", &Config{Global: &GlobalConfig{}, Group: &GroupConfig{RecordFile: "/nonexistent/records.txt"}}, "does not exist"},
		{"bad log level", &Config{Global: &GlobalConfig{LogLevel: "verbose"}, Group: &GroupConfig{RecordFile: recordFile}}, "invalid logLevel"},
		{"upper-case log level", &Config{Global: &GlobalConfig{LogLevel: "WARN"}, Group: &GroupConfig{RecordFile: recordFile}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateGroup()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateTopK(t *testing.T) {
	scoreFile := writeDataFile(t, "scores.txt", "1:50\n2:80\n")

	tests := []struct {
		name    string
		topk    *TopKConfig
		wantErr string
	}{
		{"valid", &TopKConfig{ScoreFile: scoreFile, K: 1}, ""},
		{"missing section", nil, "topk configuration section is required"},
		{"missing score file", &TopKConfig{K: 1}, "scoreFile is required"},
		{"nonexistent file", &TopKConfig{ScoreFile: "/nonexistent/scores.txt", K: 1}, "does not exist"},
		{"zero k", &TopKConfig{ScoreFile: scoreFile, K: 0}, "k must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Global: &GlobalConfig{}, TopK: tt.topk}
			err := config.ValidateTopK()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
