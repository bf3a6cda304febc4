package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var (
	verifyStrict bool
	verifyEdit   bool
)

var verifyCmd = &cobra.Command{
	Use:     "verify",
	Aliases: []string{"check"},
	Short:   "Check that every quoted image path in the sources exists",
	Long: `Scan every .ts, .tsx, .js and .jsx file for quoted image paths such as
"/images/hero.jpg" and check each one against the public directory.

Every broken reference is listed with its source file and line.
Use --strict in CI to fail when anything is missing.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "exit non-zero when a reference is missing")
	verifyCmd.Flags().BoolVarP(&verifyEdit, "edit", "e", false, "open the first broken reference in the editor")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fmt.Println(ui.FormatRocket("Verifying image references in " + appWorkspace.RelToRoot(appWorkspace.SourcePath) + "..."))

	report, err := verifyService.Execute(ctx)
	if err != nil {
		return rootMissingHint(err)
	}

	printVerifyReport(report)

	if len(report.Missing) == 0 {
		return nil
	}

	if verifyEdit {
		first := report.Missing[0]
		path := filepath.Join(appWorkspace.RootPath, filepath.FromSlash(first.SourceFile))
		if err := OpenEditorAtLine(path, first.Line); err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}
	}

	if verifyStrict {
		return fmt.Errorf("%d missing image references", len(report.Missing))
	}
	return nil
}

func printVerifyReport(report *domain.VerifyReport) {
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Source files", fmt.Sprintf("%d", report.Scanned)))
	fmt.Println(ui.RenderKeyValue("Valid images", fmt.Sprintf("%d", report.FoundCount())))
	fmt.Println(ui.RenderKeyValue("Missing", fmt.Sprintf("%d", len(report.Missing))))
	fmt.Println()

	if len(report.Missing) == 0 {
		fmt.Println(ui.FormatSuccess("All image references resolve"))
		return
	}

	for _, ref := range report.Missing {
		fmt.Println(ui.FormatError("Missing: ") + ui.FormatBold(ref.ImagePath))
		fmt.Println(ui.FormatMuted(fmt.Sprintf("    in %s:%d", ref.SourceFile, ref.Line)))
	}
}
