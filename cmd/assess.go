package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/input"
	"github.com/abhisek/fmea/internal/report"
)

// errInvalidInput is returned after validation errors have been printed.
var errInvalidInput = errors.New("input has validation errors")

var assessCmd = &cobra.Command{
	Use:   "assess FILE|-",
	Short: "Assess an input document and print the report",
	Long: "Reads a YAML or JSON input document (\"-\" for stdin), validates it, " +
		"and prints the scored variables, DoE suggestions and heatmap.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		format, _ := cmd.Flags().GetString("format")
		f, err := report.ParseFormat(format)
		if err != nil {
			return err
		}

		opts := assessOptions{Source: args[0], Format: f}
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Heatmap, _ = cmd.Flags().GetString("heatmap")
		opts.ShowLow, _ = cmd.Flags().GetBool("show-low")
		opts.Title, _ = cmd.Flags().GetString("title")

		return runAssess(opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
	},
}

func init() {
	assessCmd.Flags().String("format", string(report.FormatTable), "Output format: table, json, yaml, csv or markdown")
	assessCmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	assessCmd.Flags().String("heatmap", "", "Also render the heatmap as a PNG to this path")
	assessCmd.Flags().Bool("show-low", false, "Include the low-risk table in table and markdown output")
	assessCmd.Flags().String("title", "", "Report title (overrides the document title)")
}

type assessOptions struct {
	Source  string
	Format  report.Format
	Output  string
	Heatmap string
	ShowLow bool
	Title   string
}

func runAssess(opts assessOptions, stdout, stderr io.Writer, log *zap.SugaredLogger) error {
	doc, err := input.Load(opts.Source)
	if err != nil {
		return err
	}

	res, err := fmea.Assess(doc.Entries())
	if err != nil {
		var verrs fmea.ValidationErrors
		if errors.As(err, &verrs) {
			log.Infow("assessment rejected", "source", opts.Source, "errors", len(verrs))
			if werr := report.WriteErrors(stderr, verrs); werr != nil {
				return werr
			}
			return errInvalidInput
		}
		return err
	}
	log.Infow("assessment complete", "source", opts.Source, "summary", report.Summary(res))

	title := opts.Title
	if title == "" {
		title = doc.Title
	}
	rep := report.New(title, res)

	ropts := report.Options{ShowLow: opts.ShowLow}
	if opts.Output == "" {
		if err := report.Write(stdout, rep, opts.Format, ropts); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else if err := writeReport(opts.Output, rep, opts.Format, ropts); err != nil {
		return err
	}

	if opts.Heatmap != "" {
		if err := writeHeatmap(opts.Heatmap, res.Heatmap); err != nil {
			return err
		}
		log.Infow("heatmap written", "path", opts.Heatmap)
	}
	return nil
}

// writeReport writes the report to path. A failed close is reported, since
// it can mean buffered data never reached the disk.
func writeReport(path string, rep *report.Report, f report.Format, opts report.Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := report.Write(file, rep, f, opts); err != nil {
		file.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func writeHeatmap(path string, h fmea.Heatmap) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heatmap: %w", err)
	}
	if err := report.RenderHeatmap(file, h, report.DefaultHeatmapConfig()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
