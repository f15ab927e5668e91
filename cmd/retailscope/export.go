package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/report/exporter"
	"github.com/retailscope/retailscope/pkg/logger"
)

// exportCmd writes the report in one or more formats
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the report to files",
	Long: `Export the report in one or more formats. Formats run concurrently.

  html  standalone document
  host  host page with the document embedded in its frame
  json  report content
  pdf   print of the document (requires Chrome)

Example:
  retailscope export --format html,pdf --out ./exports`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "", "comma separated formats (default: export.formats from config)")
	exportCmd.Flags().String("out", "", "output directory (default: export.output_dir from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadOptionalConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	formatList, _ := cmd.Flags().GetString("format")
	if formatList == "" {
		formatList = strings.Join(cfg.Export.Formats, ",")
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.Export.OutputDir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := exportFormats(ctx, cfg, exporter.ParseFormats(formatList), outDir)
	for _, p := range paths {
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "  ✓ %s\n", p)
	}
	return err
}

// exportFormats writes every format into outDir and returns the written paths
// in format order. Formats are checked before any export starts.
func exportFormats(ctx context.Context, cfg *config.Config, formats []exporter.ExportFormat, outDir string) ([]string, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("no export formats given")
	}

	renderer, err := report.NewRenderer(report.OptionsFromConfig(cfg.Report))
	if err != nil {
		return nil, err
	}
	manager := exporter.NewDefaultManager(renderer, cfg)
	for _, f := range formats {
		if _, err := manager.GetExporter(f); err != nil {
			return nil, fmt.Errorf("%w (supported: %v)", err, manager.SupportedFormats())
		}
	}

	rpt := report.IndianRetail()
	paths := make([]string, len(formats))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		i, f := i, f
		g.Go(func() error {
			path, err := manager.ExportToFile(gctx, rpt, outDir, f)
			if err != nil {
				return fmt.Errorf("%s export: %w", f, err)
			}
			mu.Lock()
			paths[i] = path
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()

	written := paths[:0]
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, err
}
