package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/adapters/raster"
	"github.com/kamal-hamza/px-cli/internal/adapters/repository"
	"github.com/kamal-hamza/px-cli/internal/core/services"
	"github.com/kamal-hamza/px-cli/pkg/config"
	"github.com/kamal-hamza/px-cli/pkg/ui"
	"github.com/kamal-hamza/px-cli/pkg/workspace"
)

var (
	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
	appCtx       context.Context
	appStop      context.CancelFunc

	// Repositories
	assetRepo  *repository.FileAssetRepository
	sourceRepo *repository.FileSourceRepository

	// Image adapters
	imageInspector  *raster.Inspector
	imageTranscoder *raster.Transcoder

	// Services
	optimizeService *services.OptimizeService
	analyzeService  *services.AnalyzeService
	verifyService   *services.VerifyService
	auditService    *services.AuditService
	galleryService  *services.GalleryService

	// Output
	reporter *consoleReporter

	// Global flags
	rootFlag  string
	quietFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "px",
	Short: "PX - static image asset maintenance",
	Long: ui.StyleTitle.Render("PX") + " - Image Asset Maintenance\n\n" +
		"Keeps a web project's public images small and its source references intact.\n" +
		"Analyze oversized images, optimize and convert them, and verify that every\n" +
		"quoted image path in the source tree exists on disk.",
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if appStop != nil {
		appStop()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "project root (default: nearest directory with .px.yaml, else cwd)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "only print warnings, errors and summaries")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that need no project
	if cmd.Name() == "init" || cmd.Name() == "version" {
		return nil
	}

	// Resolve the project
	ws, err := workspace.New(rootFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}
	appWorkspace = ws

	cfg, err := config.Load(appWorkspace.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)
	appWorkspace.Configure(appConfig.PublicDir, appConfig.SrcDir)

	appCtx, appStop = signal.NotifyContext(context.Background(), os.Interrupt)

	reporter = newConsoleReporter(os.Stdout, quietFlag, appWorkspace)

	// Initialize repositories
	walkOpt := repository.WithHiddenDirs(appConfig.ScanHidden)
	assetRepo = repository.NewFileAssetRepository(appWorkspace.AssetsPath, appConfig.Exclude, walkOpt)
	sourceRepo = repository.NewFileSourceRepository(appWorkspace.SourcePath, appConfig.Exclude, walkOpt)

	// Initialize adapters
	policy := appConfig.Policy()
	imageInspector = raster.NewInspector(appWorkspace.AssetsPath)
	imageTranscoder = raster.NewTranscoder(policy)

	// Initialize services
	optimizeService = services.NewOptimizeService(assetRepo, sourceRepo, imageInspector, imageTranscoder, policy, reporter)
	analyzeService = services.NewAnalyzeService(assetRepo, imageInspector, policy, reporter)
	verifyService = services.NewVerifyService(assetRepo, sourceRepo, appWorkspace.RootPath, reporter)
	auditService = services.NewAuditService(assetRepo, sourceRepo, appConfig.AuditPrefixes, reporter)
	galleryService = services.NewGalleryService(appWorkspace.AssetsPath, appConfig.GalleryRoot)

	return nil
}

// getContext returns a context for operations, cancelled on Ctrl+C
func getContext() context.Context {
	if appCtx == nil {
		return context.Background()
	}
	return appCtx
}
