package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated reports from the .px cache",
	Long: `Remove everything px generated under the project's .px/ directory,
such as the chart written by 'px analyze --chart'. Images and sources are
never touched.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.StyleWarning.Render("Cleaning cache... "))

	if err := appWorkspace.CleanCache(); err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Done"))
	fmt.Println(ui.FormatMuted("Generated reports removed from " + appWorkspace.RelToRoot(appWorkspace.CachePath)))
	return nil
}
