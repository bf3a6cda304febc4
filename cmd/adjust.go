package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/adapters/raster"
	"github.com/kamal-hamza/px-cli/internal/adapters/repository"
	"github.com/kamal-hamza/px-cli/internal/core/services"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var (
	adjustBrightness float64
	adjustContrast   float64
	adjustSaturation float64
	adjustQuality    int
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <src> [dst]",
	Short: "Write brightened copies of a folder of images",
	Long: `Apply brightness, contrast and saturation to every JPEG, PNG and WebP
under <src> and save the results to the same relative paths under [dst]
(default: <src>_adjusted). Originals are never modified.

Factors are multipliers: 1.0 leaves the image unchanged, 1.15 is 15% brighter.
Defaults come from the adjust section of .px.yaml.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().Float64Var(&adjustBrightness, "brightness", 0, "brightness multiplier (default from config)")
	adjustCmd.Flags().Float64Var(&adjustContrast, "contrast", 0, "contrast multiplier (default from config)")
	adjustCmd.Flags().Float64Var(&adjustSaturation, "saturation", 0, "saturation multiplier (default from config)")
	adjustCmd.Flags().IntVar(&adjustQuality, "quality", 0, "JPEG quality of the copies (default from config)")
}

func runAdjust(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	src, err := resolveAdjustDir(args[0])
	if err != nil {
		return err
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fmt.Errorf("source folder not found: %s", args[0])
	}

	dst := strings.TrimRight(src, string(filepath.Separator)) + "_adjusted"
	if len(args) == 2 {
		if dst, err = resolveAdjustDir(args[1]); err != nil {
			return err
		}
	}

	adj := appConfig.Adjustment()
	if cmd.Flags().Changed("brightness") {
		adj.Brightness = adjustBrightness
	}
	if cmd.Flags().Changed("contrast") {
		adj.Contrast = adjustContrast
	}
	if cmd.Flags().Changed("saturation") {
		adj.Saturation = adjustSaturation
	}
	if cmd.Flags().Changed("quality") {
		if adjustQuality < 1 || adjustQuality > 100 {
			return fmt.Errorf("quality must be between 1 and 100, got %d", adjustQuality)
		}
		adj.Quality = adjustQuality
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Adjusting %s -> %s", appWorkspace.RelToRoot(src), appWorkspace.RelToRoot(dst))))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("brightness %.2f, contrast %.2f, saturation %.2f, quality %d",
		adj.Brightness, adj.Contrast, adj.Saturation, adj.Quality)))
	fmt.Println()

	source := repository.NewFileAssetRepository(src, appConfig.Exclude, repository.WithHiddenDirs(appConfig.ScanHidden))
	service := services.NewAdjustService(source, raster.NewAdjuster(), reporter)

	summary, err := service.Execute(ctx, dst, adj)
	if err != nil {
		return rootMissingHint(err)
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Adjusted %d images", summary.Processed)))
	if summary.Failed > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d images failed", summary.Failed)))
	}
	return nil
}

// resolveAdjustDir makes a folder argument absolute against the working directory
func resolveAdjustDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", dir, err)
	}
	return abs, nil
}
