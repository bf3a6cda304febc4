package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
	"github.com/kamal-hamza/px-cli/pkg/ui"
	"github.com/kamal-hamza/px-cli/pkg/workspace"
)

// consoleReporter prints service progress with the ui styles
type consoleReporter struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
	ws    *workspace.Workspace
}

var _ ports.Reporter = (*consoleReporter)(nil)

func newConsoleReporter(out io.Writer, quiet bool, ws *workspace.Workspace) *consoleReporter {
	return &consoleReporter{out: out, quiet: quiet, ws: ws}
}

func (r *consoleReporter) Info(msg string) {
	if r.quiet {
		return
	}
	r.println(ui.FormatInfo(msg))
}

func (r *consoleReporter) Success(msg string) {
	if r.quiet {
		return
	}
	r.println(ui.FormatSuccess(msg))
}

func (r *consoleReporter) Warn(msg string) {
	r.println(ui.FormatWarning(msg))
}

func (r *consoleReporter) Fail(path string, err error) {
	if r.ws != nil {
		path = r.ws.RelToRoot(path)
	}
	r.println(ui.FormatError(fmt.Sprintf("%s: %s", path, describeError(err))))
}

func (r *consoleReporter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

// describeError gives the error class a short human prefix
func describeError(err error) string {
	var decodeErr *domain.DecodeError
	var ioErr *domain.IOError
	switch {
	case errors.As(err, &decodeErr):
		return "not a readable image (" + decodeErr.Err.Error() + ")"
	case errors.As(err, &ioErr):
		return ioErr.Op + " failed (" + ioErr.Err.Error() + ")"
	case errors.Is(err, domain.ErrTargetExists):
		return "conversion target already exists, left as is"
	}
	return err.Error()
}

// rootMissingHint turns a missing tree into an actionable message
func rootMissingHint(err error) error {
	if errors.Is(err, domain.ErrRootMissing) {
		fmt.Println(ui.FormatError(err.Error()))
		fmt.Println(ui.FormatInfo("Set public_dir / src_dir in .px.yaml or pass --root (run 'px init' to create the file)"))
	}
	return err
}

// GetPreferredEditor returns the editor command from config, env, or default
func GetPreferredEditor() string {
	// 1. Check Config
	if appConfig != nil && appConfig.Editor != "" {
		return appConfig.Editor
	}
	// 2. Check Environment
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	// 3. Fallback
	return "vi"
}

// OpenFile opens a file with the OS default application.
func OpenFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	// Start() detaches so px can exit while the viewer stays open
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}

// editorArgs builds the "open at line" arguments for the common editor families
func editorArgs(editor, path string, line int) []string {
	lowerEditor := strings.ToLower(editor)

	// VS Code family needs -g to parse file:line
	if strings.Contains(lowerEditor, "code") ||
		strings.Contains(lowerEditor, "cursor") ||
		strings.Contains(lowerEditor, "windsurf") {
		return []string{"-g", fmt.Sprintf("%s:%d", path, line)}
	}

	if strings.Contains(lowerEditor, "subl") ||
		strings.Contains(lowerEditor, "zed") ||
		strings.Contains(lowerEditor, "idea") ||
		strings.Contains(lowerEditor, "goland") {
		return []string{fmt.Sprintf("%s:%d", path, line)}
	}

	// vim, nano, emacs, kakoune
	return []string{fmt.Sprintf("+%d", line), path}
}

// OpenEditorAtLine opens the user's preferred editor at a specific line number.
func OpenEditorAtLine(path string, line int) error {
	editor := GetPreferredEditor()
	args := editorArgs(editor, path, line)

	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// Fallback: If line number fails, just open the file
		fallback := exec.Command(editor, path)
		fallback.Stdin = os.Stdin
		fallback.Stdout = os.Stdout
		fallback.Stderr = os.Stderr
		return fallback.Run()
	}

	return nil
}
