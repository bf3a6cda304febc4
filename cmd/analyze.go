package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var (
	analyzeChart bool
	analyzeTop   int
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"a"},
	Short:   "Report oversized images without changing anything",
	Long: `Inspect every JPEG, PNG and WebP under the public directory and flag:
  - files larger than report_max_size_kb
  - images whose longest edge exceeds max_dimension
  - PNGs larger than report_max_png_kb (likely photographs)

Nothing is written. Use --chart to open a bar chart of the largest files.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeChart, "chart", false, "render the largest files as an HTML bar chart")
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 0, "number of largest files to list (default: top_largest from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fmt.Println(ui.FormatRocket("Analyzing images in " + appWorkspace.RelToRoot(appWorkspace.AssetsPath) + "..."))

	report, err := analyzeService.Execute(ctx)
	if err != nil {
		return rootMissingHint(err)
	}

	fmt.Println()
	fmt.Println(ui.FormatTitle("Image Analysis"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Images", fmt.Sprintf("%d", report.Total)))
	fmt.Println(ui.RenderKeyValue("Clean", fmt.Sprintf("%d", report.Clean)))
	fmt.Println(ui.RenderKeyValue("Flagged", fmt.Sprintf("%d", len(report.Findings))))
	if report.Errors > 0 {
		fmt.Println(ui.RenderKeyValue("Unreadable", fmt.Sprintf("%d", report.Errors)))
	}
	fmt.Println()

	if len(report.Findings) == 0 {
		fmt.Println(ui.FormatSuccess("Nothing oversized"))
		return nil
	}

	fmt.Println(renderFindings(report.Findings))

	top := analyzeTop
	if top <= 0 {
		top = appConfig.TopLargest
	}
	largest := report.Largest(top)
	if len(largest) > 0 {
		fmt.Println()
		fmt.Println(ui.StyleHeader.Render("Largest files"))
		biggest := largest[0].Record.Size
		for _, f := range largest {
			fmt.Printf("  %-10s %s %s\n", ui.FormatBytes(f.Record.Size), ui.Bar(f.Record.Size, biggest, 24), f.Record.RelPath)
		}
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Run 'px optimize --dry-run' to preview fixes"))

	if analyzeChart {
		return openSizeChart(largest)
	}
	return nil
}

// renderFindings lays the flagged assets out as a table
func renderFindings(findings []domain.AnalysisFinding) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Image", Width: 24, Max: 48, Align: "left"},
		{Header: "Size", Width: 10, Align: "right"},
		{Header: "Dimensions", Width: 11, Align: "right"},
		{Header: "Issues", Align: "left"},
	})

	var total int64
	limit := appConfig.Policy().ReportMaxSizeBytes
	for _, f := range findings {
		total += f.Record.Size
		table.AddRow([]string{
			f.Record.RelPath,
			ui.FormatSize(f.Record.Size, limit),
			f.Record.Dimensions(),
			findingIssues(f),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d flagged", len(findings)),
		ui.FormatBytes(total),
	})
	return table.Render()
}

func findingIssues(f domain.AnalysisFinding) string {
	var issues []string
	if f.LargeFile {
		issues = append(issues, "large file")
	}
	if f.LargeDimensions {
		issues = append(issues, "large dimensions")
	}
	if f.LargePNG {
		issues = append(issues, "heavy png")
	}
	return strings.Join(issues, ", ")
}

// openSizeChart writes a bar chart of the largest files into the cache and opens it
func openSizeChart(largest []domain.AnalysisFinding) error {
	if len(largest) == 0 {
		fmt.Println(ui.FormatWarning("No large files to chart"))
		return nil
	}

	if err := appWorkspace.EnsureCache(); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	names := make([]string, 0, len(largest))
	values := make([]opts.BarData, 0, len(largest))
	for _, f := range largest {
		names = append(names, f.Record.RelPath)
		values = append(values, opts.BarData{
			Name:  f.Record.RelPath,
			Value: f.Record.Size / 1024,
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Largest images",
			Subtitle: "Size in KB",
		}),
	)
	bar.SetXAxis(names).AddSeries("KB", values)

	path := appWorkspace.GetCachePath("analyze.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println(ui.StyleInfo.Render(ui.IconChart + " Chart written to " + appWorkspace.RelToRoot(path)))
	return OpenFile(path)
}
