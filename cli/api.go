package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ChristianF88/buddyx/config"
	"github.com/ChristianF88/buddyx/grouping"
	"github.com/ChristianF88/buddyx/ingestor"
	"github.com/ChristianF88/buddyx/metrics"
	"github.com/ChristianF88/buddyx/output"
	"github.com/ChristianF88/buddyx/topk"
	"github.com/ChristianF88/buddyx/tui"
)

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// ============================================================================
// ENTRY POINTS
// ============================================================================

// GroupFromConfig runs a grouping from a validated config and writes the
// result to w. Flags mode builds its config with createGroupConfigFromCLI, so
// both modes share one execution path.
func GroupFromConfig(w io.Writer, cfg *config.Config, outputConfig OutputConfig) error {
	if outputConfig.TUI {
		return executeTUI(cfg)
	}

	result, res, err := executeGrouping(cfg)
	if err != nil {
		outputFailure(w, result, outputConfig)
		return err
	}

	return outputResult(w, result, outputConfig, func(w io.Writer) error {
		return output.WriteGroupReport(w, res.Groups)
	})
}

// TopKFromConfig runs a top-k selection from a validated config and writes
// the result to w.
func TopKFromConfig(w io.Writer, cfg *config.Config, outputConfig OutputConfig) error {
	result, top, err := executeTopK(cfg)
	if err != nil {
		outputFailure(w, result, outputConfig)
		return err
	}

	return outputResult(w, result, outputConfig, func(w io.Writer) error {
		return output.WriteTopK(w, top)
	})
}

// ============================================================================
// CORE EXECUTION LOGIC
// ============================================================================

// executeGrouping parses, groups and writes the side outputs. The returned
// JSONOutput is non-nil even on error and carries the error.
func executeGrouping(cfg *config.Config) (*output.JSONOutput, *grouping.Result, error) {
	startTime := time.Now()
	result := output.NewJSONOutput("group", startTime)
	result.General.InputFile = cfg.Group.RecordFile

	fail := func(kind string, err error) (*output.JSONOutput, *grouping.Result, error) {
		result.AddError(kind, err.Error(), 1)
		result.UpdateDuration(startTime)
		return result, nil, err
	}

	parseStart := time.Now()
	ds, err := ingestor.ParseRecordFile(cfg.Group.RecordFile, ingestor.Options{NormalizeCase: cfg.Group.NormalizeCase})
	if err != nil {
		return fail("parse", err)
	}
	setParsing(result, len(ds.Users), time.Since(parseStart))

	res, err := grouping.Run(ds)
	if err != nil {
		return fail("grouping", err)
	}
	result.SetGrouping(res)

	if cfg.Group.ReportFile != "" {
		var report bytes.Buffer
		if err := output.WriteGroupReport(&report, res.Groups); err != nil {
			return fail("report", err)
		}
		if err := output.WriteFileLocked(cfg.Group.ReportFile, report.Bytes()); err != nil {
			return fail("report", fmt.Errorf("writing report file: %w", err))
		}
		result.AddWarning("info", fmt.Sprintf("Report written to %s", cfg.Group.ReportFile), 0)
	}

	if cfg.Group.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotGroupSizes(res.Groups, len(res.Solitary), cfg.Group.PlotPath); err != nil {
			return fail("plot", err)
		}
		result.AddWarning("info", fmt.Sprintf("Group size chart generated in %v at %s", time.Since(plotStart), cfg.Group.PlotPath), 0)
	}

	if path := cfg.Global.MetricsFile; path != "" {
		collector := metrics.NewCollector()
		collector.ObserveGrouping(res)
		if err := collector.WriteTextfile(path); err != nil {
			return fail("metrics", fmt.Errorf("writing metrics file: %w", err))
		}
	}

	if len(res.Solitary) == res.TotalUsers && res.TotalUsers > 0 {
		result.AddWarning("no_groups", "No two users share the same item list", res.TotalUsers)
	}

	result.UpdateDuration(startTime)
	slog.Info("grouping complete",
		"users", res.TotalUsers,
		"groups", len(res.Groups),
		"solitary", len(res.Solitary),
		"duration", time.Since(startTime))
	return result, res, nil
}

// executeTopK parses scores and selects the top k. The returned JSONOutput is
// non-nil even on error and carries the error.
func executeTopK(cfg *config.Config) (*output.JSONOutput, []topk.Pair, error) {
	startTime := time.Now()
	result := output.NewJSONOutput("topk", startTime)
	result.General.InputFile = cfg.TopK.ScoreFile

	fail := func(kind string, err error) (*output.JSONOutput, []topk.Pair, error) {
		result.AddError(kind, err.Error(), 1)
		result.UpdateDuration(startTime)
		return result, nil, err
	}

	parseStart := time.Now()
	pairs, err := ingestor.ParseScoreFile(cfg.TopK.ScoreFile)
	if err != nil {
		return fail("parse", err)
	}
	setParsing(result, len(pairs), time.Since(parseStart))

	top, err := topk.Select(pairs, cfg.TopK.K)
	if err != nil {
		return fail("topk", err)
	}
	result.SetTopK(cfg.TopK.K, top)

	if path := cfg.Global.MetricsFile; path != "" {
		collector := metrics.NewCollector()
		collector.ObserveTopK(len(pairs), len(top))
		if err := collector.WriteTextfile(path); err != nil {
			return fail("metrics", fmt.Errorf("writing metrics file: %w", err))
		}
	}

	result.UpdateDuration(startTime)
	slog.Info("top-k selection complete", "candidates", len(pairs), "k", cfg.TopK.K)
	return result, top, nil
}

// executeTUI runs the grouping to completion, then opens the browser on it
func executeTUI(cfg *config.Config) error {
	result, _, err := executeGrouping(cfg)
	if err != nil {
		return err
	}
	return tui.NewApp(result).Run()
}

func setParsing(result *output.JSONOutput, records int, d time.Duration) {
	result.General.TotalRecords = records
	result.General.Parsing.DurationMS = d.Milliseconds()
	if d > 0 {
		result.General.Parsing.RatePerSecond = int64(float64(records) / d.Seconds())
	}
}

func createGroupConfigFromCLI(recordFile string, normalizeCase bool, reportFile, plotPath, metricsFile string) *config.Config {
	return &config.Config{
		Global: &config.GlobalConfig{
			MetricsFile: metricsFile,
		},
		Group: &config.GroupConfig{
			RecordFile:    recordFile,
			NormalizeCase: normalizeCase,
			ReportFile:    reportFile,
			PlotPath:      plotPath,
		},
	}
}

func createTopKConfigFromCLI(scoreFile string, k int, metricsFile string) *config.Config {
	return &config.Config{
		Global: &config.GlobalConfig{
			MetricsFile: metricsFile,
		},
		TopK: &config.TopKConfig{
			ScoreFile: scoreFile,
			K:         k,
		},
	}
}

// ============================================================================
// OUTPUT FUNCTIONS
// ============================================================================

// outputResult writes JSON, or the plain report when requested
func outputResult(w io.Writer, result *output.JSONOutput, outputConfig OutputConfig, plain func(io.Writer) error) error {
	if outputConfig.Plain {
		return plain(w)
	}

	var jsonBytes []byte
	var err error

	if outputConfig.Compact {
		jsonBytes, err = result.ToCompactJSON()
	} else {
		jsonBytes, err = result.ToJSON()
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

// outputFailure writes the error-carrying JSON report. Plain mode writes
// nothing so no partial report is ever printed.
func outputFailure(w io.Writer, result *output.JSONOutput, outputConfig OutputConfig) {
	if outputConfig.Plain || outputConfig.TUI || result == nil {
		return
	}
	if err := outputResult(w, result, outputConfig, nil); err != nil {
		slog.Error("could not write error report", "error", err)
	}
}
