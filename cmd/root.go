package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fmea/internal/app"
	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/input"
	"github.com/abhisek/fmea/internal/logging"
	"github.com/abhisek/fmea/internal/report"
)

const (
	envLogFile = "FMEA_LOG_FILE"
	envAddr    = "FMEA_ADDR"
)

var rootCmd = &cobra.Command{
	Use:   "fmea",
	Short: "FMEA risk assessment and DoE factor selection",
	Long: "fmea rates process variables for Severity, Occurrence and Detectability, " +
		"computes their Risk Priority Number, classifies them Low, Medium or High and " +
		"suggests which ones belong in a Design of Experiments.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides "+envLogFile+" env var)")

	rootCmd.Flags().String("file", "", "Preload the entry form from an input document")
	rootCmd.Flags().Int("num-vars", fmea.DefaultNumVars, "Initial value of the variable count prompt")
	rootCmd.Flags().String("title", "", "Assessment title")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(versionCmd)
}

func runApp(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")
	log, err := logging.NewForTUI(debug, resolveLogFile(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	numVars, _ := cmd.Flags().GetInt("num-vars")
	if err := fmea.CheckCount(numVars); err != nil {
		return fmt.Errorf("--num-vars: %w", err)
	}
	title, _ := cmd.Flags().GetString("title")

	opts := app.Options{
		DefaultNumVars: numVars,
		Title:          title,
		Logger:         log,
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		doc, err := loadPreload(cmd, path, log)
		if err != nil {
			return err
		}
		opts.Preload = doc.Entries()
		if opts.Title == "" {
			opts.Title = doc.Title
		}
	}

	log.Infow("starting terminal UI", "num_vars", numVars, "preloaded", len(opts.Preload))
	return app.Run(opts)
}

// loadPreload reads a document for the entry form. Ratings outside 1..10
// cannot be shown on a slider, so they are reported here instead of being
// clamped silently.
func loadPreload(cmd *cobra.Command, path string, log *zap.SugaredLogger) (*input.Document, error) {
	doc, err := input.Load(path)
	if err != nil {
		return nil, err
	}

	_, err = fmea.Validate(doc.Entries())
	var verrs fmea.ValidationErrors
	if errors.As(err, &verrs) {
		var ratings fmea.ValidationErrors
		for _, e := range verrs {
			if e.Kind == fmea.KindInvalidRating {
				ratings = append(ratings, e)
			}
		}
		if len(ratings) > 0 {
			log.Warnw("preload rejected", "file", path, "errors", len(ratings))
			_ = report.WriteErrors(cmd.ErrOrStderr(), ratings)
			return nil, fmt.Errorf("%s: %w", path, fmea.ErrInvalidRating)
		}
	}
	return doc, nil
}

// resolveLogFile returns the log file using --log-file (highest priority),
// then the FMEA_LOG_FILE env var. Empty means no file.
func resolveLogFile(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		return p
	}
	return os.Getenv(envLogFile)
}

// newLogger builds the logger for non-interactive commands.
func newLogger(cmd *cobra.Command) (*zap.SugaredLogger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.New(logging.Config{Debug: debug, File: resolveLogFile(cmd)})
}
