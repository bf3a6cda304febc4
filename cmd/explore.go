package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/services"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

// exploreEntry is one image offered by the picker
type exploreEntry struct {
	RelPath string
	AbsPath string
	Size    int64
	UsedIn  []string // source files quoting the image
}

var exploreCmd = &cobra.Command{
	Use:     "explore",
	Aliases: []string{"x"},
	Short:   "Fuzzy-find an image and copy its reference",
	Long: `Open an interactive fuzzy finder over every image in the public directory.

The preview shows size, dimensions and the source files that reference it.
Selecting an image copies its quoted web path (e.g. "/images/hero.jpg")
to the clipboard.`,
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	entries, err := collectExploreEntries(ctx)
	if err != nil {
		return rootMissingHint(err)
	}
	if len(entries) == 0 {
		fmt.Println(ui.FormatInfo("No images found in " + appWorkspace.RelToRoot(appWorkspace.AssetsPath)))
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return entries[i].RelPath
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return explorePreview(ctx, entries[i])
		}),
	)
	if err != nil {
		fmt.Println(ui.FormatInfo("Selection cancelled."))
		return nil
	}

	selected := entries[idx]
	snippet := fmt.Sprintf("%q", "/"+selected.RelPath)

	fmt.Println(ui.FormatImage("Selected: " + selected.RelPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Reference (Copied):"))
	fmt.Println(ui.StyleBold.Render(snippet))

	if err := clipboard.WriteAll(snippet); err != nil {
		fmt.Println(ui.FormatMuted("(Clipboard access failed)"))
	}

	return nil
}

// collectExploreEntries lists every image and which source files quote it
func collectExploreEntries(ctx context.Context) ([]exploreEntry, error) {
	files, err := assetRepo.List(ctx, domain.ImageExtensions)
	if err != nil {
		return nil, err
	}

	usage := make(map[string][]string)
	if srcFiles, err := sourceRepo.List(ctx); err == nil {
		for _, src := range srcFiles {
			content, err := sourceRepo.Read(ctx, src)
			if err != nil {
				continue
			}
			seen := make(map[string]bool)
			for _, m := range services.ScanReferences(content) {
				if seen[m.Path] {
					continue
				}
				seen[m.Path] = true
				usage[m.Path] = append(usage[m.Path], appWorkspace.RelToRoot(src))
			}
		}
	}

	entries := make([]exploreEntry, 0, len(files))
	for _, abs := range files {
		rel, err := domain.RelativeTo(appWorkspace.AssetsPath, abs)
		if err != nil {
			continue
		}
		var size int64
		if info, err := os.Stat(abs); err == nil {
			size = info.Size()
		}
		used := usage["/"+rel]
		sort.Strings(used)
		entries = append(entries, exploreEntry{
			RelPath: rel,
			AbsPath: abs,
			Size:    size,
			UsedIn:  used,
		})
	}
	return entries, nil
}

func explorePreview(ctx context.Context, e exploreEntry) string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("File: %s\n", ui.StyleBold.Render(e.RelPath)))
	s.WriteString(fmt.Sprintf("Size: %s\n", ui.FormatBytes(e.Size)))

	if rec, err := imageInspector.Inspect(ctx, e.AbsPath); err == nil {
		s.WriteString(fmt.Sprintf("Dimensions: %s (%s)\n", rec.Dimensions(), rec.Format))
	}
	s.WriteString("\n")

	if len(e.UsedIn) > 0 {
		s.WriteString(ui.StyleHeader.Render("Used In") + "\n")
		for _, src := range e.UsedIn {
			s.WriteString(fmt.Sprintf("• %s\n", src))
		}
	} else {
		s.WriteString(ui.FormatMuted("(Not referenced by any source file)"))
	}

	return s.String()
}
