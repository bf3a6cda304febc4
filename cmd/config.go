package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var configPathOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the project's .px.yaml",
	Long: `Open the project's .px.yaml in the configured editor.

The file is validated on every px run; invalid values abort with a message
naming the offending key. Use --path to print the file location instead.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "print the config file path and exit")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := appWorkspace.ConfigPath

	if configPathOnly {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	if !appWorkspace.HasConfig() {
		fmt.Println(ui.FormatMuted("Run 'px init' to create one"))
		return fmt.Errorf("config file not found at %s", path)
	}

	fmt.Println(ui.FormatInfo("Opening config: " + path))

	c := exec.Command(GetPreferredEditor(), path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
