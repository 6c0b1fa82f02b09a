package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IvanShishkin/stconflicts/internal/compare"
	"github.com/IvanShishkin/stconflicts/internal/config"
	"github.com/IvanShishkin/stconflicts/internal/core"
	"github.com/IvanShishkin/stconflicts/internal/report"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = "0.0.1"
	logger     *zap.Logger
	verbose    bool
	configFile string
)

var (
	gray   = color.New(color.FgHiBlack)
	accent = color.New(color.FgHiYellow)
	bold   = color.New(color.Bold)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stconflicts",
		Short: "stconflicts - find Syncthing conflict files",
		Long: `Walks a synchronised folder, groups every Syncthing conflict copy with
the file it was forked from and reports size, modification time and content hash
of each variant.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML)")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger builds the development logger with --verbose, otherwise an
// error-only JSON logger on stderr
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// scanOptions holds the scan flags that override the configuration
type scanOptions struct {
	workers        int
	hashMaxSize    string
	noHash         bool
	hashAlgorithm  string
	hashTimeout    time.Duration
	followSymlinks bool
	exclude        []string
	reportFormat   string
	outputFile     string
}

// bindFlags registers the scan flags on fs
func (o *scanOptions) bindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.workers, "workers", 0, "Number of hashing goroutines (default: CPU cores)")
	fs.StringVar(&o.hashMaxSize, "hash-max-size", "", "Do not hash files larger than this, e.g. 50M, 1.5G, 64KiB (default: 50M)")
	fs.BoolVar(&o.noHash, "no-hash", false, "Disable content hashing")
	fs.StringVar(&o.hashAlgorithm, "hash-algo", "", "Hash algorithm: md5, sha256, sha3-256 (default: sha256)")
	fs.DurationVar(&o.hashTimeout, "hash-timeout", 0, "Give up hashing a single file after this long (0: no limit)")
	fs.BoolVar(&o.followSymlinks, "follow-symlinks", false, "Follow symbolic links")
	fs.StringSliceVar(&o.exclude, "exclude", nil, "Glob patterns to exclude (comma-separated)")
	fs.StringVarP(&o.reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console output)")
	fs.StringVarP(&o.outputFile, "output", "o", "", "Output file path")
}

// apply overrides cfg with every flag given on the command line, including
// explicit false and zero values
func (o *scanOptions) apply(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("workers") {
		cfg.Workers = o.workers
	}
	if fs.Changed("hash-max-size") {
		cfg.HashMaxSize = o.hashMaxSize
	}
	if fs.Changed("no-hash") {
		cfg.NoHash = o.noHash
	}
	if fs.Changed("hash-algo") {
		cfg.HashAlgorithm = o.hashAlgorithm
	}
	if fs.Changed("hash-timeout") {
		cfg.HashTimeout = o.hashTimeout
	}
	if fs.Changed("follow-symlinks") {
		cfg.FollowSymlinks = o.followSymlinks
	}
	if fs.Changed("exclude") {
		cfg.Exclude = o.exclude
	}
	if fs.Changed("report") {
		cfg.ReportFormat = o.reportFormat
	}
	if fs.Changed("output") {
		cfg.OutputFile = o.outputFile
	}
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Find conflict files under a directory",
		Long:  `Recursively scan a directory and report every group of Syncthing conflict files.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			// Validate flags before doing anything
			if err := validateFlags(&opts); err != nil {
				fmt.Printf("\n  %s %s\n\n", red.Sprint("✗ Invalid parameter:"), err.Error())
				return err
			}

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}
			opts.apply(cfg, cmd.Flags())
			cfg.Path = path
			if err := cfg.Validate(); err != nil {
				fmt.Printf("\n  %s %s\n\n", red.Sprint("✗ Invalid configuration:"), err.Error())
				return err
			}

			printBanner(path)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scanner := core.NewScanner(cfg, logger)
			scanner.SetProgressCallback(newProgressPrinter())

			result, err := scanner.Scan(ctx, path)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			generator, err := report.NewGenerator(cfg, logger)
			if err != nil {
				return err
			}
			reportPath, err := generator.Generate(result)
			if err != nil {
				logger.Error("Failed to generate report", zap.Error(err))
				return err
			}

			if result.Cancelled {
				fmt.Printf("  %s\n", yellow.Sprint("⚠ Scan interrupted, results are partial"))
			}
			if reportPath != "" {
				fmt.Printf("  %s %s\n\n", gray.Sprint("Report:"), accent.Sprint(reportPath))
			}

			return nil
		},
	}

	opts.bindFlags(cmd.Flags())

	return cmd
}

// diffCmd creates the diff command
func diffCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Open a file and its conflict copies in a diff tool",
		Long: `Find the conflict group of a file among its siblings and open the main file
and the oldest conflict copies in an external visual diff tool.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			if tool != "" {
				cfg.DiffTool = tool
			}

			group, err := compare.ResolveGroup(args[0])
			if err != nil {
				return err
			}

			launcher, err := compare.NewLauncher(cfg, logger)
			if err != nil {
				return err
			}

			paths := launcher.Paths(group)
			fmt.Fprintf(os.Stderr, "%s %s\n", gray.Sprint("Comparing:"), strings.Join(paths, "  "))

			proc, err := launcher.Launch(cmd.Context(), group)
			if err != nil {
				return err
			}
			return proc.Wait()
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "", "Diff program (default: meld)")

	return cmd
}

// versionCmd prints the version
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stconflicts v%s\n", version)
		},
	}
}

// validateFlags validates CLI flag values
func validateFlags(opts *scanOptions) error {
	if opts.workers < 0 {
		return fmt.Errorf("--workers must not be negative (got: %d)", opts.workers)
	}

	if opts.reportFormat != "" && !contains(config.ReportFormats, opts.reportFormat) {
		return fmt.Errorf("--report must be one of: %s (got: %s)",
			strings.Join(config.ReportFormats, ", "), opts.reportFormat)
	}

	if opts.hashAlgorithm != "" && !contains(config.HashAlgorithms, opts.hashAlgorithm) {
		return fmt.Errorf("--hash-algo must be one of: %s (got: %s)",
			strings.Join(config.HashAlgorithms, ", "), opts.hashAlgorithm)
	}

	if opts.hashMaxSize != "" {
		if _, err := config.ParseSize(opts.hashMaxSize); err != nil {
			return fmt.Errorf("--hash-max-size: %w", err)
		}
	}

	if opts.hashTimeout < 0 {
		return fmt.Errorf("--hash-timeout must not be negative (got: %s)", opts.hashTimeout)
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// newProgressPrinter returns a progress callback that redraws one line per phase
func newProgressPrinter() core.ProgressCallback {
	lastPhase := ""
	return func(phase string, current, total int, message string) {
		// Clear previous line if same phase
		if lastPhase == phase {
			fmt.Print("\033[1A\033[K")
		}
		lastPhase = phase

		switch phase {
		case "walking":
			if current == 0 {
				fmt.Printf("  %s\n", gray.Sprint("Walking..."))
				return
			}
			fmt.Printf("  %s %s  %s\n", gray.Sprint("Files:  "), humanize.Comma(int64(current)), gray.Sprint(truncate(message, 50)))
		case "hashing":
			if total == 0 {
				fmt.Printf("  %s nothing to collect\n", gray.Sprint("Hashing:"))
				return
			}
			pct := float64(current) / float64(total) * 100
			barWidth := 30
			filled := barWidth * current / total
			bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
			fmt.Printf("  %s [%s] %s (%d/%d)\n",
				gray.Sprint("Hashing:"), accent.Sprint(bar), accent.Sprintf("%.1f%%", pct), current, total)
		case "done":
			fmt.Printf("  %s\n", accent.Sprint("✓ Done"))
		}
	}
}

// truncate shortens s to at most n characters, keeping the end
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n+3:])
}

// printBanner prints the startup banner
func printBanner(path string) {
	fmt.Println()
	bold.Printf("stconflicts v%s\n", version)
	fmt.Println()
	fmt.Printf("  %s %s\n", gray.Sprint("Scanning:"), path)
	fmt.Println()
}
