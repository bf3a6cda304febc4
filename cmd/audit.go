package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List images no source file references",
	Long: `Collect every quoted image path in the sources, then list the images
in the public directory that nothing references, grouped by folder.

Set audit_prefixes in .px.yaml (e.g. [/projects, /design]) to restrict the
audit to those subtrees. Nothing is deleted.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fmt.Println(ui.FormatRocket("Auditing image usage..."))

	report, err := auditService.Execute(ctx)
	if err != nil {
		return rootMissingHint(err)
	}

	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Referenced", fmt.Sprintf("%d", report.Referenced)))
	fmt.Println(ui.RenderKeyValue("Unused", fmt.Sprintf("%d", report.UnusedCount())))
	fmt.Println(ui.RenderKeyValue("Broken", fmt.Sprintf("%d", len(report.Broken))))
	fmt.Println()

	if report.UnusedCount() == 0 {
		fmt.Println(ui.FormatSuccess("Every image is referenced"))
	} else {
		fmt.Println(ui.StyleHeader.Render("Unused images"))
		for _, folder := range report.Folders() {
			fmt.Println(ui.FormatFolder(folder))
			fmt.Print(ui.RenderSimpleList(report.Unused[folder]))
		}
	}

	if len(report.Broken) > 0 {
		fmt.Println()
		fmt.Println(ui.StyleHeader.Render("Referenced but missing"))
		for _, p := range report.Broken {
			fmt.Println(ui.FormatError(p))
		}
		fmt.Println(ui.FormatInfo("Run 'px verify' for source locations"))
	}

	return nil
}
