// Package cmd implements the votershield command-line surface: flag
// parsing, configuration binding, and wiring the pipeline stages into an
// internal/driver.Orchestrator, grounded on the teacher's cobra+viper root
// command layout.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashathullah/voter-shield/internal/config"
)

var cfgFile string

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "votershield",
	Short: "Extracts structured voter records from scanned electoral-roll PDFs",
	Long: `votershield renders electoral-roll PDFs to images, crops each page into
per-voter cells, runs OCR over those cells, parses the recognized text into
structured records, and writes per-document and combined CSV/XLSX output.

Examples:
  votershield run --pdf-dir ./pdfs --output-format xlsx
  votershield run --s3-input s3://rolls/2024/ --s3-output s3://rolls-out/2024/
  votershield run --resume --state-dir ./runs --run-id 2024-07-29`,
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./votershield.yaml, $HOME/.config/votershield, /etc/votershield)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")

	if err := viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(fmt.Sprintf("cmd: binding log-level flag: %v", err))
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("cmd: binding verbose flag: %v", err))
	}
}

func initConfig() {
	// Config-file resolution happens in runPipeline via config.Loader, so
	// that an explicit --config path and the default search paths share
	// one code path (internal/config.Loader.Load / LoadWithFile).
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
