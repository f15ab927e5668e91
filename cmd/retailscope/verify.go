package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/verify"
	"github.com/retailscope/retailscope/internal/widget"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/logger"
)

// verifyCmd checks the rendered document's presentation contract
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the rendered report's tabs, accordion, navigation and charts",
	Long: `Render the report and check it: one visible tab pane, at most one open
accordion entry, charts in sized containers, resolvable anchors and the chart
data. With --live the document is also driven in headless Chrome.

Exits with status 3 when a check fails.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Bool("live", false, "also run interactive checks in headless Chrome")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadOptionalConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	live, _ := cmd.Flags().GetBool("live")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runChecks(ctx, cfg, live)
	if result != nil {
		result.Print(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}
	if !result.Passed() {
		os.Exit(errors.ExitCodeVerifyFailed)
	}
	return nil
}

// runChecks runs the static checks and, when live is set, the browser checks
func runChecks(ctx context.Context, cfg *config.Config, live bool) (*verify.Report, error) {
	renderer, err := report.NewRenderer(report.OptionsFromConfig(cfg.Report))
	if err != nil {
		return nil, err
	}
	rpt := report.IndianRetail()

	result, err := verify.Static(ctx, renderer, rpt)
	if err != nil {
		return nil, err
	}
	if !live {
		return result, nil
	}

	doc, err := renderer.Render(ctx, rpt, widget.DefaultViewState(cfg.Report.DefaultTab))
	if err != nil {
		return nil, err
	}
	opts := verify.DefaultLiveOptions()
	opts.ChromePath = cfg.Export.PDF.ChromePath

	liveResult, err := verify.Live(ctx, doc, rpt, opts)
	result.Merge(liveResult)
	if err != nil {
		return result, fmt.Errorf("live checks: %w", err)
	}
	return result, nil
}
