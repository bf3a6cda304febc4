package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/pkg/config"
	"github.com/kamal-hamza/px-cli/pkg/ui"
	"github.com/kamal-hamza/px-cli/pkg/workspace"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .px.yaml in the project root",
	Long: `Create a .px.yaml configuration file in the project root.

The file records where the project keeps its images and sources:
  - public_dir : images served as /<path> (default: public)
  - src_dir    : TS/JS sources referencing them (default: src)

All other settings have sensible defaults and can be edited later
with 'px config'.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing .px.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	root := rootFlag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Println(ui.FormatError("Failed to determine current directory"))
			return err
		}
		root = cwd
	}

	ws, err := workspace.New(root)
	if err != nil {
		return err
	}

	// Check if already initialized
	if ws.HasConfig() && !initForce {
		fmt.Println(ui.FormatWarning("Project already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + ws.ConfigPath))
		fmt.Println(ui.FormatMuted("Use --force to overwrite it"))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing px..."))
	fmt.Println()

	cfg := config.DefaultConfig()
	if err := cfg.Save(ws.ConfigPath); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}

	ws.Configure(cfg.PublicDir, cfg.SrcDir)

	fmt.Println(ui.FormatSuccess("Project initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Config", ws.ConfigPath))
	fmt.Println(ui.RenderKeyValue("Images", describeDir(ws.AssetsPath, ws.AssetsExist())))
	fmt.Println(ui.RenderKeyValue("Sources", describeDir(ws.SourcePath, ws.SourceExists())))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Review the settings: px config"))
	fmt.Println(ui.FormatMuted("  2. See what is oversized: px analyze"))
	fmt.Println(ui.FormatMuted("  3. Shrink it: px optimize --dry-run, then px optimize"))

	return nil
}

func describeDir(path string, exists bool) string {
	name := filepath.Base(path) + "/"
	if !exists {
		return name + " " + ui.FormatMuted("(not found yet)")
	}
	return name
}
