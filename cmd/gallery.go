package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery [folder...]",
	Short: "Print gallery image lists as JSON",
	Long: `List the images of each gallery folder as web paths and print them as
indented JSON keyed by folder name, ready to paste into a data file.

Folders live under <public_dir>/<gallery_root> (default: public/projects).
Without arguments every folder is listed. Missing folders map to [].`,
	RunE: runGallery,
}

func runGallery(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	folders := args
	if len(folders) == 0 {
		all, err := galleryService.Folders(ctx)
		if err != nil {
			return err
		}
		folders = all
	}

	data, err := galleryService.Execute(ctx, folders)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
