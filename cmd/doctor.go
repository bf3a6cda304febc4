package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project setup",
	Long: `Diagnose issues with the px setup of this project.

Checks for:
  - Configuration file existence
  - Public, source and gallery directories
  - Editor used by 'px verify --edit' and 'px config'
  - Broken image references`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("px doctor"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Project", appWorkspace.RootPath))
	fmt.Println()

	checkStep("Configuration File", func() error {
		if !appWorkspace.HasConfig() {
			return fmt.Errorf("missing (defaults in use, run 'px init')")
		}
		return nil
	})

	checkStep("Public Directory", func() error {
		if !appWorkspace.AssetsExist() {
			return fmt.Errorf("missing at %s", appWorkspace.AssetsPath)
		}
		return nil
	})

	checkStep("Source Directory", func() error {
		if !appWorkspace.SourceExists() {
			return fmt.Errorf("missing at %s", appWorkspace.SourcePath)
		}
		return nil
	})

	checkStep("Gallery Root", func() error {
		dir := filepath.Join(appWorkspace.AssetsPath, filepath.FromSlash(appConfig.GalleryRoot))
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("missing at %s (only needed by 'px gallery')", appWorkspace.RelToRoot(dir))
		}
		return nil
	})

	checkStep("Editor", func() error {
		if appConfig.Editor == "" && os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})

	if !appWorkspace.AssetsExist() || !appWorkspace.SourceExists() {
		return
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking reference integrity..."))

	// Failures are shown once by the check below
	reporter.quiet = true
	checkStep("Image References", func() error {
		report, err := verifyService.Execute(getContext())
		if err != nil {
			return err
		}
		for _, ref := range report.Missing {
			fmt.Printf("    %s (%s:%d)\n", ref.ImagePath, ref.SourceFile, ref.Line)
		}
		if len(report.Missing) > 0 {
			return fmt.Errorf("found %d broken references", len(report.Missing))
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
	} else {
		fmt.Printf("%s %s\n", ui.StyleError.Render(ui.IconError), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
