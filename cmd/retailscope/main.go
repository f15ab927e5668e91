// Package main is the entry point for the RetailScope application.
// RetailScope serves the "AI in Indian Retail" interactive report inside a
// wide host page and exports it as HTML, JSON or PDF.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/api/handler"
	"github.com/retailscope/retailscope/internal/check"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/report/exporter"
	"github.com/retailscope/retailscope/internal/server"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/logger"
	"github.com/retailscope/retailscope/pkg/telemetry"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// configPath holds the path to the configuration file
var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   consts.ServiceName,
	Short: "RetailScope - interactive report on AI in Indian retail",
	Long: `RetailScope renders the "AI in Indian Retail" report: a single-page document
with tabs, an accordion, a scroll-aware navigation bar and three charts,
embedded in a wide host page.`,
	SilenceUsage: true,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RetailScope server",
	Long: `Start the HTTP server that hosts the report page, the raw document and the
export API.

On first run, use --check flag to interactively set up your environment:
  retailscope serve --check

After initial setup, simply run:
  retailscope serve`,
	Run: runServe,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), consts.BuildInfo())
	},
}

func init() {
	// Disable auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: "+config.DefaultConfigPath+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)

	// Serve command flags
	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	serveCmd.Flags().Bool("debug", false, "enable debug mode")
	serveCmd.Flags().Bool("check", false, "run interactive environment check before starting server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runServe starts the RetailScope server
func runServe(cmd *cobra.Command, args []string) {
	path := resolvedConfigPath()

	if interactive, _ := cmd.Flags().GetBool("check"); interactive {
		if err := check.NewChecker(path).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Environment check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\n✓ Environment check completed successfully")
	} else {
		result := check.NewChecker(path).RunNonInteractive()
		if !result.Success {
			check.PrintCheckResult(os.Stderr, result)
			os.Exit(1)
		}
		// Warnings do not block startup
		for _, warn := range result.Warnings {
			fmt.Fprintf(os.Stderr, "[WARNING] %s\n", warn)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintln(os.Stderr)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override config with command line flags
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Server.Debug = true
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "text"
	}

	exitOnInvalidConfig(cfg)

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting "+consts.ProjectName,
		zap.String("version", Version),
		zap.String("config", path),
	)

	// Initialize telemetry (OpenTelemetry traces and metrics)
	tel, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown telemetry", zap.Error(err))
		}
	}()

	renderer, err := report.NewRenderer(report.OptionsFromConfig(cfg.Report))
	if err != nil {
		logger.Fatal("Failed to create renderer", zap.Error(err))
	}
	rpt := report.IndianRetail()
	h := handler.NewReportHandler(renderer, exporter.NewDefaultManager(renderer, cfg), rpt, cfg.Page)

	srv := server.New(cfg, h)
	srv.SetupRoutes()
	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info(consts.ProjectName+" server is running",
		zap.String("address", srv.Addr()),
		zap.String("language", renderer.Language().String()),
	)

	// Log access URLs for user convenience
	port := cfg.Server.Port
	if _, p, err := net.SplitHostPort(srv.Addr()); err == nil {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	logger.Info(fmt.Sprintf("  Local:   http://localhost:%d/", port))
	if lanIP := getLocalIP(); lanIP != "" {
		logger.Info(fmt.Sprintf("  Network: http://%s:%d/", lanIP, port))
	}

	srv.WaitForShutdown()

	logger.Info(consts.ProjectName + " stopped")
}

// resolvedConfigPath returns --config or the default path
func resolvedConfigPath() string {
	if configPath == "" {
		return config.DefaultConfigPath
	}
	return configPath
}

// loadOptionalConfig loads the config file when present, else the defaults.
// export and verify work without any setup.
func loadOptionalConfig() (*config.Config, error) {
	path := resolvedConfigPath()
	if !config.Exists(path) {
		if configPath != "" {
			return nil, fmt.Errorf("configuration not found: %s", path)
		}
		return config.Default(), nil
	}
	return config.Load(path)
}

// exitOnInvalidConfig prints validation problems and exits with the config exit code
func exitOnInvalidConfig(cfg *config.Config) {
	validationErr := cfg.Validate()
	if validationErr == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\n[ERROR] Configuration validation failed\n")
	fmt.Fprintf(os.Stderr, "Error Code: %s\n", validationErr.Code)
	for _, p := range validationErr.Problems() {
		fmt.Fprintf(os.Stderr, "  - %s\n", p)
	}
	fmt.Fprintln(os.Stderr)
	os.Exit(errors.ExitCodeConfigValidation)
}

// getLocalIP returns the first non-loopback IPv4 address
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}
