package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"rateorder/domain/kinetics"
	"rateorder/internal"
	"rateorder/internal/config"
	"rateorder/internal/container"
	"rateorder/internal/errors"
	"rateorder/internal/input"
	"rateorder/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cliError prefixes the message shown on stderr
type cliError struct {
	prefix string
	err    error
}

func (e *cliError) Error() string { return e.prefix + ": " + e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func inputError(err error) error {
	return &cliError{prefix: "Input error", err: err}
}

// analysisError drops the service's own context so the message reads once
func analysisError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Cause != nil {
		err = appErr.Cause
	}
	return &cliError{prefix: "Error during analysis", err: err}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "rateorder",
		Short:         "Determine the kinetic order of a reaction from concentration measurements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			*cfg = *loaded
			internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
			return nil
		},
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(cfg),
		newTransformCmd(cfg),
	)
	return rootCmd
}

type analyzeOptions struct {
	timeValues string
	concValues string
	file       string
	sheet      string
	timeCol    string
	concCol    string
	xlsxOut    string
	htmlOut    string
	format     string
	parallel   bool
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Select the reaction order whose integrated rate law fits best",
		Long: `Fit [A], ln[A] and 1/[A] against time and report the order with the highest R².

Values come from --time/--conc, from --file (.xlsx, .csv, .json, .yaml) or DATA_FILE,
or are prompted for on stdin.

Example: rateorder analyze --time "0 10 20 30" --conc "1.0 0.8 0.6 0.4"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.timeValues, "time", "", "Time values in seconds, separated by spaces")
	cmd.Flags().StringVar(&opts.concValues, "conc", "", "Concentration values in mol/L, separated by spaces")
	cmd.Flags().StringVar(&opts.file, "file", "", "Measurement file (defaults to DATA_FILE)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet holding the measurements")
	cmd.Flags().StringVar(&opts.timeCol, "time-col", "", "Time column or field name")
	cmd.Flags().StringVar(&opts.concCol, "conc-col", "", "Concentration column or field name")
	cmd.Flags().StringVar(&opts.xlsxOut, "xlsx-out", "", "Write the data and fit chart to this workbook")
	cmd.Flags().StringVar(&opts.htmlOut, "html-out", "", "Write the HTML report to this file")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, markdown or json")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "Fit candidate orders concurrently")

	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, opts analyzeOptions) error {
	switch opts.format {
	case "text", "markdown", "json":
	default:
		return errors.ValidationError(fmt.Sprintf("unknown format %q", opts.format))
	}

	if opts.sheet != "" {
		cfg.Data.Sheet = opts.sheet
	}
	if opts.timeCol != "" {
		cfg.Data.TimeColumn = opts.timeCol
	}
	if opts.concCol != "" {
		cfg.Data.ConcentrationColumn = opts.concCol
	}
	if opts.file != "" {
		cfg.Data.File = opts.file
	}
	if opts.parallel {
		cfg.Analysis.ParallelFit = true
	}

	appContainer, err := container.New(cfg)
	if err != nil {
		return err
	}

	series, err := readSeries(cmd, appContainer, opts)
	if err != nil {
		return inputError(err)
	}
	if err := series.Validate(); err != nil {
		return inputError(err)
	}

	rep, err := appContainer.Service.Analyze(cmd.Context(), series)
	if err != nil {
		return analysisError(err)
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "markdown":
		fmt.Fprint(out, report.Markdown(rep.Summary))
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	default:
		if err := report.WriteText(out, rep.Summary); err != nil {
			return err
		}
	}

	if opts.xlsxOut != "" {
		if err := appContainer.Exporter.SaveAs(opts.xlsxOut, rep.Series, rep.Best); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", opts.xlsxOut)
	}
	if opts.htmlOut != "" {
		if err := os.WriteFile(opts.htmlOut, report.HTML(rep.Summary), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.htmlOut, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", opts.htmlOut)
	}
	return nil
}

// readSeries takes values from flags, then a file, then the console
func readSeries(cmd *cobra.Command, appContainer *container.Container, opts analyzeOptions) (kinetics.Series, error) {
	if opts.timeValues != "" || opts.concValues != "" {
		return input.ParseSeries(opts.timeValues, opts.concValues)
	}

	reader, err := appContainer.DatasetReader()
	if err != nil {
		return kinetics.Series{}, err
	}
	if reader != nil {
		return reader.ReadSeries(cmd.Context())
	}

	return input.ReadInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
}

func newTransformCmd(cfg *config.Config) *cobra.Command {
	var order int
	var timeValues, concValues string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Print the linearized series for one reaction order",
		Long: `Print time against [A] (order 0), ln[A] (order 1) or 1/[A] (order 2).

Example: rateorder transform --order 1 --time "0 1 2" --conc "1 0.37 0.14"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := input.ParseSeries(timeValues, concValues)
			if err != nil {
				return inputError(err)
			}
			tr, err := transformSeries(cfg, series, order)
			if err != nil {
				return inputError(err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tr)
			}
			return writeTransform(cmd.OutOrStdout(), series, tr)
		},
	}

	cmd.Flags().IntVar(&order, "order", 0, "Reaction order (0, 1 or 2)")
	cmd.Flags().StringVar(&timeValues, "time", "", "Time values in seconds, separated by spaces")
	cmd.Flags().StringVar(&concValues, "conc", "", "Concentration values in mol/L, separated by spaces")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the transform as JSON")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("conc")

	return cmd
}

func transformSeries(cfg *config.Config, series kinetics.Series, n int) (kinetics.Transform, error) {
	order, err := kinetics.ParseOrder(n)
	if err != nil {
		return kinetics.Transform{}, err
	}
	appContainer, err := container.New(cfg)
	if err != nil {
		return kinetics.Transform{}, err
	}
	return appContainer.Service.TransformOnly(series, order)
}

func writeTransform(w io.Writer, series kinetics.Series, tr kinetics.Transform) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Time (s)\t%s\n", tr.YLabel)
	for i, t := range series.Time {
		fmt.Fprintf(tw, "%g\t%.6g\n", t, tr.Y[i])
	}
	return tw.Flush()
}
