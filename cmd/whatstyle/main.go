/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for whatstyle. Wires persistent
configuration and logging flags plus the infer, list-formatters, and variants
subcommands via a cobra root command with viper.BindPFlag configuration
binding and one subcommand per search mode.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/whatstyle-go/cmd/whatstyle/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	logLevel   string

	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool

	formatterName string
	formatterBin  string
	formatterArgs string
	diffBackend   string
	concurrency   int
	timeout       time.Duration
	cacheBytes    int64

	mode string
	html bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "whatstyle",
		Short: "whatstyle - infer a formatter configuration from a reference corpus",
		Long: `whatstyle searches a formatter's configuration space to find the style
that reproduces a reference corpus as closely as possible, converging via a
greedy, deterministic search over the formatter's declared options.`,
		Version: "1.0.0",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.SetupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")

	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "search", "Log format (text, json, search)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))

	formatterFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&formatterName, "formatter", "clang-format", "Formatter adapter to use (clang-format, indent)")
		cmd.Flags().StringVar(&formatterBin, "formatter-binary", "", "Path to the formatter binary (empty = search PATH)")
		cmd.Flags().StringVar(&formatterArgs, "formatter-args", "", "Extra arguments passed through to the formatter")
		cmd.Flags().StringVar(&diffBackend, "diff-backend", "auto", "Diff backend (auto, external-diff, external-git, internal)")
		cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of parallel evaluation workers (0 = NumCPU)")
		cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Per-evaluation timeout")
		cmd.Flags().Int64Var(&cacheBytes, "cache-bytes", 64*1024*1024, "Evaluation cache size in bytes")

		viper.BindPFlag("formatter", cmd.Flags().Lookup("formatter"))
		viper.BindPFlag("formatter_binary", cmd.Flags().Lookup("formatter-binary"))
		viper.BindPFlag("formatter_args", cmd.Flags().Lookup("formatter-args"))
		viper.BindPFlag("diff_backend", cmd.Flags().Lookup("diff-backend"))
		viper.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))
		viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
		viper.BindPFlag("cache_bytes", cmd.Flags().Lookup("cache-bytes"))
	}

	inferCmd := &cobra.Command{
		Use:   "infer [files...]",
		Short: "Infer a style from a reference corpus",
		Long: `Runs Phase A (baseline selection) and Phase B (greedy option attachment)
against every named source file, printing the selected style as a clang-format
style YAML document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: commands.RunInfer,
	}
	formatterFlags(inferCmd)
	inferCmd.Flags().StringVar(&mode, "mode", "standard", "Search mode (standard, resilient)")
	viper.BindPFlag("mode", inferCmd.Flags().Lookup("mode"))

	listFormattersCmd := &cobra.Command{
		Use:   "list-formatters",
		Short: "List the registered formatter adapters and their options",
		RunE:  commands.RunListFormatters,
	}

	variantsCmd := &cobra.Command{
		Use:   "variants [files...]",
		Short: "Report distinguishable alternative option values",
		Long: `Runs the full search then Phase D, reporting every option value
whose aggregate distance differs from the selected style's. A value that
changes the output without changing the aggregate distance is not reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: commands.RunVariants,
	}
	formatterFlags(variantsCmd)
	variantsCmd.Flags().BoolVar(&html, "html", false, "Render the report as a self-contained HTML page")
	viper.BindPFlag("html", variantsCmd.Flags().Lookup("html"))

	rootCmd.AddCommand(inferCmd, listFormattersCmd, variantsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
