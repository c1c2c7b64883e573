package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v2"

	"github.com/ChristianF88/buddyx/config"
	"github.com/ChristianF88/buddyx/logging"
	"github.com/ChristianF88/buddyx/version"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions
var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with other flags)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "logLevel",
		Usage:   "Log level: debug, info, warn or error (default from LOG_LEVEL, else info)",
		EnvVars: []string{"LOG_LEVEL"},
	}

	// Input flags
	recordFileFlag = &cli.StringFlag{
		Name:  "recordFile",
		Usage: "Path to the record file, one 'id:ITEM,ITEM,...' line per user",
	}
	normalizeCaseFlag = &cli.BoolFlag{
		Name:  "normalizeCase",
		Usage: "Upper-case items before validation",
		Value: false,
	}
	scoreFileFlag = &cli.StringFlag{
		Name:  "scoreFile",
		Usage: "Path to the score file, one 'id:score' line per user",
	}
	kFlag = &cli.IntFlag{
		Name:  "k",
		Usage: "Number of top entries to select (1 <= k <= entries-1)",
		Value: config.DefaultK,
	}

	// Output flags
	reportFileFlag = &cli.StringFlag{
		Name:  "reportFile",
		Usage: "Also write the plain group report to this file",
	}
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the group size chart (e.g., '/path/to/groups.html'). If not provided, no plot will be generated.",
	}
	metricsFileFlag = &cli.StringFlag{
		Name:  "metricsFile",
		Usage: "Write run metrics in Prometheus text format to this file",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output the plain text report instead of JSON",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Browse the result in a TUI (Terminal User Interface)",
		Value: false,
	}
)

// validateConfigModeFlags rejects input flags when --config is used
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	flagsToCheck := []string{
		"recordFile", "normalizeCase", "scoreFile", "k", "reportFile",
		"plotPath", "metricsFile", "tui", "compact", "plain",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func validateOutputFlags(c *cli.Context) error {
	if c.Bool("tui") && (c.Bool("plain") || c.Bool("compact")) {
		return fmt.Errorf("--tui cannot be combined with --plain or --compact")
	}
	return nil
}

// validateOutputPath checks that the directory of an optional output file exists
func validateOutputPath(name, path string) error {
	if path != "" {
		dir := filepath.Dir(path)
		if dir == "." {
			dir, _ = os.Getwd()
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("%s directory does not exist: %s", name, dir)
		}
	}
	return nil
}

func validateInputFileExists(name, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", name, path)
	}
	return nil
}

// applyConfigLogLevel uses [global] logLevel unless --logLevel or LOG_LEVEL
// already chose one
func applyConfigLogLevel(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("logLevel") || cfg.Global.LogLevel == "" {
		return nil
	}
	return logging.SetupFromString(cfg.Global.LogLevel)
}

func outputConfigFrom(c *cli.Context) OutputConfig {
	return OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
	}
}

// handleGroupCommand routes the group command to config or flags mode
func handleGroupCommand(c *cli.Context) error {
	if err := validateOutputFlags(c); err != nil {
		return err
	}
	configPath := c.String("config")
	if configPath != "" {
		return handleGroupConfigMode(c, configPath)
	}
	return handleGroupFlagsMode(c)
}

func handleGroupConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, []string{"tui", "compact", "plain"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateGroup(); err != nil {
		return fmt.Errorf("invalid group configuration: %w", err)
	}
	if err := applyConfigLogLevel(c, cfg); err != nil {
		return err
	}
	if err := validateOutputPath("plotPath", cfg.Group.PlotPath); err != nil {
		return err
	}
	if err := validateOutputPath("reportFile", cfg.Group.ReportFile); err != nil {
		return err
	}
	if err := validateOutputPath("metricsFile", cfg.Global.MetricsFile); err != nil {
		return err
	}

	return GroupFromConfig(c.App.Writer, cfg, outputConfigFrom(c))
}

func handleGroupFlagsMode(c *cli.Context) error {
	if !c.IsSet("recordFile") {
		return fmt.Errorf("recordFile is required when not using --config")
	}
	if err := validateInputFileExists("record file", c.String("recordFile")); err != nil {
		return err
	}
	for _, name := range []string{"plotPath", "reportFile", "metricsFile"} {
		if err := validateOutputPath(name, c.String(name)); err != nil {
			return err
		}
	}

	cfg := createGroupConfigFromCLI(
		c.String("recordFile"),
		c.Bool("normalizeCase"),
		c.String("reportFile"),
		c.String("plotPath"),
		c.String("metricsFile"),
	)
	return GroupFromConfig(c.App.Writer, cfg, outputConfigFrom(c))
}

// handleTopKCommand routes the topk command to config or flags mode
func handleTopKCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleTopKConfigMode(c, configPath)
	}
	return handleTopKFlagsMode(c)
}

func handleTopKConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, []string{"compact", "plain"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateTopK(); err != nil {
		return fmt.Errorf("invalid topk configuration: %w", err)
	}
	if err := applyConfigLogLevel(c, cfg); err != nil {
		return err
	}
	if err := validateOutputPath("metricsFile", cfg.Global.MetricsFile); err != nil {
		return err
	}

	return TopKFromConfig(c.App.Writer, cfg, outputConfigFrom(c))
}

func handleTopKFlagsMode(c *cli.Context) error {
	if !c.IsSet("scoreFile") {
		return fmt.Errorf("scoreFile is required when not using --config")
	}
	if err := validateInputFileExists("score file", c.String("scoreFile")); err != nil {
		return err
	}
	if err := validateOutputPath("metricsFile", c.String("metricsFile")); err != nil {
		return err
	}

	cfg := createTopKConfigFromCLI(c.String("scoreFile"), c.Int("k"), c.String("metricsFile"))
	return TopKFromConfig(c.App.Writer, cfg, outputConfigFrom(c))
}

// NewApp builds the command line application
func NewApp() *cli.App {
	return &cli.App{
		Name:     "buddyx",
		Usage:    "Group users with identical favorite lists, or rank users by score",
		Version:  version.Version,
		Compiled: parseDate(version.Date),
		Flags:    []cli.Flag{logLevelFlag},
		Before: func(c *cli.Context) error {
			return logging.SetupFromString(c.String("logLevel"))
		},
		Commands: []*cli.Command{
			{
				Name:  "group",
				Usage: "Find groups of users whose sorted favorite lists are identical",
				Flags: []cli.Flag{
					// Configuration
					configFlag,
					// Input
					recordFileFlag,
					normalizeCaseFlag,
					// Output
					reportFileFlag,
					plotPathFlag,
					metricsFileFlag,
					compactFlag,
					plainFlag,
					tuiFlag,
				},
				Action: handleGroupCommand,
			},
			{
				Name:  "topk",
				Usage: "Select the k users with the highest score",
				Flags: []cli.Flag{
					// Configuration
					configFlag,
					// Input
					scoreFileFlag,
					kFlag,
					// Output
					metricsFileFlag,
					compactFlag,
					plainFlag,
				},
				Action: handleTopKCommand,
			},
		},
	}
}

var App = NewApp()
