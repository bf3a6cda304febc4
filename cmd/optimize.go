package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/core/services"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var optimizeDryRun bool

var optimizeCmd = &cobra.Command{
	Use:     "optimize",
	Aliases: []string{"opt"},
	Short:   "Resize, recompress and convert oversized images",
	Long: `Optimize every JPEG, PNG and WebP under the public directory.

For each image:
  - the longest edge is capped at max_dimension (aspect ratio kept)
  - files over max_size_kb are recompressed
  - large opaque PNGs are converted to JPEG, the PNG is removed and every
    quoted "/path" reference in the source tree is rewritten

Hidden directories and node_modules are skipped; set scan_hidden: true in
.px.yaml to walk them too.

Files are written atomically; an interrupted run never leaves a truncated image.
Running optimize twice is safe: already optimized images are skipped.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().BoolVarP(&optimizeDryRun, "dry-run", "n", false, "show what would change without writing")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if optimizeDryRun {
		fmt.Println(ui.FormatRocket("Dry run: no files will be changed"))
	} else {
		fmt.Println(ui.FormatRocket("Optimizing images in " + appWorkspace.RelToRoot(appWorkspace.AssetsPath) + "..."))
	}
	fmt.Println()

	summary, err := optimizeService.Execute(ctx, services.OptimizeOptions{DryRun: optimizeDryRun})
	if err != nil {
		return rootMissingHint(err)
	}

	fmt.Println()
	fmt.Println(ui.FormatTitle("Summary"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Scanned", fmt.Sprintf("%d", summary.Scanned)))
	if optimizeDryRun {
		fmt.Println(ui.RenderKeyValue("Would optimize", fmt.Sprintf("%d", summary.Optimized)))
		fmt.Println(ui.RenderKeyValue("Would convert", fmt.Sprintf("%d", summary.Converted)))
	} else {
		fmt.Println(ui.RenderKeyValue("Optimized", fmt.Sprintf("%d", summary.Optimized)))
		fmt.Println(ui.RenderKeyValue("Converted", fmt.Sprintf("%d", summary.Converted)))
		fmt.Println(ui.RenderKeyValue("References", fmt.Sprintf("%s %d files updated", ui.IconLink, summary.ReferencesUpdated)))
	}
	fmt.Println(ui.RenderKeyValue("Skipped", fmt.Sprintf("%d", summary.Skipped)))

	if !optimizeDryRun && summary.BytesBefore > 0 {
		fmt.Println(ui.RenderKeyValue("Saved", fmt.Sprintf("%s (%s)",
			ui.FormatBytes(summary.Saved()),
			ui.FormatPercent(summary.Saved(), summary.BytesBefore))))
	}

	if summary.Failed > 0 {
		fmt.Println()
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d images failed and were left untouched, see errors above", summary.Failed)))
	}

	if summary.Converted > 0 && !optimizeDryRun {
		fmt.Println()
		fmt.Println(ui.FormatInfo("Run 'px verify' to confirm every reference still resolves"))
	}

	return nil
}
