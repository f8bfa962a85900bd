package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"gofactorial/app"
	"gofactorial/domain/core"
	"gofactorial/internal"
	"gofactorial/internal/config"
	"gofactorial/internal/container"
	"gofactorial/internal/errors"
	"gofactorial/internal/signmatrix"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file; absence is not an error
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(errors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "factorial",
		Short:         "Analyze 2^k r full factorial experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSignsCmd(),
	)
	return rootCmd
}

type analyzeFlags struct {
	confidence float64
	output     string
	brief      bool
	residuals  string
	qqnorm     string
	workers    int
	factors    int
	verbose    bool
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Estimate effects, sums of squares and confidence intervals",
		Long: `Analyze one or more observation files. Each file holds 2^k lines of r
replicate values; .csv and .xlsx files are read as tables.

Example: factorial analyze results.txt --confidence 0.95 --output latex --brief`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cfg, args)
		},
	}

	d := config.Default()
	cmd.Flags().Float64VarP(&flags.confidence, "confidence", "c", d.Analysis.Confidence, "Confidence level of the effect intervals, in (0,1)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", d.Output.Format, "Report format: text, latex, json, html or none")
	cmd.Flags().BoolVarP(&flags.brief, "brief", "b", false, "Only report effects explaining at least 10% of the variation")
	cmd.Flags().StringVar(&flags.residuals, "residuals", "", "Write fitted/residual pairs to this file")
	cmd.Flags().StringVar(&flags.qqnorm, "qqnorm", "", "Write residual/normal-quantile pairs to this file")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", d.Runtime.Workers, "Files analyzed concurrently")
	cmd.Flags().IntVar(&flags.factors, "k", 0, "Expected number of factors (0 derives it from the row count)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")

	return cmd
}

// applyFlags overrides environment configuration with the flags given on the
// command line
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags analyzeFlags) {
	changed := cmd.Flags().Changed
	if changed("confidence") {
		cfg.Analysis.Confidence = flags.confidence
	}
	if changed("k") {
		cfg.Analysis.Factors = flags.factors
	}
	if changed("output") {
		cfg.Output.Format = flags.output
	}
	if changed("brief") {
		cfg.Output.Brief = flags.brief
	}
	if changed("residuals") {
		cfg.Output.ResidualsPath = flags.residuals
	}
	if changed("qqnorm") {
		cfg.Output.QQNormPath = flags.qqnorm
	}
	if changed("workers") {
		cfg.Runtime.Workers = flags.workers
	}
	if flags.verbose {
		cfg.Runtime.LogLevel = "DEBUG"
	}
}

func runAnalyze(ctx context.Context, out io.Writer, cfg *config.Config, paths []string) error {
	level, _ := internal.ParseLogLevel(cfg.Runtime.LogLevel)
	logger := internal.NewLogger(level)

	c, err := container.New(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "cannot initialize")
	}

	reporter, err := c.Reporter()
	if err != nil {
		return errors.Wrap(err, "cannot create reporter")
	}
	exports := c.Exports()
	if len(exports) > 0 && len(paths) > 1 {
		return errors.Wrap(
			core.NewInvalidParameterError("residual export", len(paths), "requires a single input file"),
			"cannot export residuals")
	}

	reqs := make([]app.AnalysisRequest, len(paths))
	for i, path := range paths {
		reqs[i] = app.AnalysisRequest{
			Path:       path,
			Confidence: cfg.Analysis.Confidence,
			Factors:    cfg.Analysis.Factors,
		}
	}

	results, err := c.BatchService.Run(ctx, reqs)
	if err != nil {
		return err
	}

	for _, result := range results {
		if err := c.AnalysisService.Report(out, result, reporter, cfg.Output.Brief); err != nil {
			return err
		}
		for _, e := range exports {
			if err := c.AnalysisService.Export(e.Path, result, e.Exporter); err != nil {
				return err
			}
		}
	}
	return nil
}

func newSignsCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "signs",
		Short: "Print the single-factor sign table of a 2^k design",
		Long: `Print the header of factor letters followed by one line of +/- signs per
treatment combination.

Example: factorial signs --k 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := signmatrix.Render(k)
			if err != nil {
				return errors.Wrap(err, "cannot render sign table")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}

	cmd.Flags().IntVar(&k, "k", 2, "Number of factors")
	return cmd
}
