package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/adapters/repository"
	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run verify whenever sources or images change",
	Long: `Watch the source and public directories and re-run verify after each
burst of changes (debounced by watch_debounce_ms, default 500ms).

Only .ts, .tsx, .js, .jsx and image files trigger a run.
Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range []string{appWorkspace.SourcePath, appWorkspace.AssetsPath} {
		if err := addWatchTree(watcher, dir); err != nil {
			return rootMissingHint(err)
		}
	}

	fmt.Println(ui.FormatRocket("Watching for changes..."))
	fmt.Println(ui.FormatMuted("Sources: " + appWorkspace.RelToRoot(appWorkspace.SourcePath)))
	fmt.Println(ui.FormatMuted("Images:  " + appWorkspace.RelToRoot(appWorkspace.AssetsPath)))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	runWatchVerify()

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	// Event loop; verify runs here, never on the timer goroutine
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchTree(watcher, event.Name); err != nil {
						log.Printf("Watcher error: %v", err)
					}
					continue
				}
			}

			if !isWatchedFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {
				pending = true
				timer.Reset(debounce)
			}

		case <-timer.C:
			if pending {
				pending = false
				runWatchVerify()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			fmt.Println()
			fmt.Println(ui.FormatMuted("Watch stopped"))
			return nil
		}
	}
}

func runWatchVerify() {
	fmt.Println(ui.StyleSubtle.Render(time.Now().Format("15:04:05")) + " " + ui.FormatInfo("verifying..."))

	report, err := verifyService.Execute(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Verify failed: " + err.Error()))
		return
	}

	if len(report.Missing) == 0 {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("%d images referenced, all present", report.FoundCount())))
		return
	}
	for _, ref := range report.Missing {
		fmt.Println(ui.FormatError(fmt.Sprintf("Missing: %s (%s:%d)", ref.ImagePath, ref.SourceFile, ref.Line)))
	}
}

// addWatchTree registers dir and every visible subdirectory with the watcher
func addWatchTree(watcher *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRootMissing, dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are not watched
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && !appConfig.ScanHidden && repository.SkipsDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// isWatchedFile reports whether a change to path can affect verification
func isWatchedFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range domain.SourceExtensions {
		if ext == e {
			return true
		}
	}
	for _, e := range domain.ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
