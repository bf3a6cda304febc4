package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/pkg/ui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse oversized images and broken references interactively",
	Long: `Run analyze and verify, then show every finding in a full-screen table.

Keyboard Shortcuts:
  ↑/k, ↓/j    Move
  Enter       Open the image, or the source file at the broken reference
  q           Quit`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// Progress lines would tear the alternate screen
	reporter.quiet = true

	analyzeReport, err := analyzeService.Execute(ctx)
	if err != nil {
		return rootMissingHint(err)
	}
	verifyReport, err := verifyService.Execute(ctx)
	if err != nil {
		return rootMissingHint(err)
	}

	items := buildReviewItems(analyzeReport, verifyReport, appWorkspace.AssetsPath, appWorkspace.RootPath)
	if len(items) == 0 {
		fmt.Println(ui.FormatSuccess("Nothing to review: no oversized images and no broken references"))
		return nil
	}

	p := tea.NewProgram(newReviewModel(ctx, items), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running review: %w", err)
	}
	return nil
}

// reviewItem is one row of the review table
type reviewItem struct {
	Kind     string // "oversized" or "broken"
	Path     string
	Detail   string
	OpenPath string // image to view or source file to edit
	Line     int    // set for broken references
}

// buildReviewItems merges both reports into table rows, broken references first
func buildReviewItems(analyze *domain.AnalyzeReport, verify *domain.VerifyReport, assetsRoot, projectRoot string) []reviewItem {
	var items []reviewItem

	if verify != nil {
		for _, ref := range verify.Missing {
			items = append(items, reviewItem{
				Kind:     "broken",
				Path:     ref.ImagePath,
				Detail:   fmt.Sprintf("%s:%d", ref.SourceFile, ref.Line),
				OpenPath: filepath.Join(projectRoot, filepath.FromSlash(ref.SourceFile)),
				Line:     ref.Line,
			})
		}
	}

	if analyze != nil {
		for _, f := range analyze.Findings {
			items = append(items, reviewItem{
				Kind:     "oversized",
				Path:     f.Record.WebPath(),
				Detail:   fmt.Sprintf("%s, %s, %s", ui.FormatBytes(f.Record.Size), f.Record.Dimensions(), findingIssues(f)),
				OpenPath: filepath.Join(assetsRoot, filepath.FromSlash(f.Record.RelPath)),
			})
		}
	}

	return items
}

type reviewKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Quit key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Open, k.Quit}}
}

var reviewKeys = reviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter", "open"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type reviewStatusMsg struct {
	message string
	style   lipgloss.Style
}

type reviewModel struct {
	ctx          context.Context
	items        []reviewItem
	table        table.Model
	help         help.Model
	keys         reviewKeyMap
	width        int
	height       int
	ready        bool
	message      string
	messageStyle lipgloss.Style
}

func newReviewModel(ctx context.Context, items []reviewItem) reviewModel {
	columns := []table.Column{
		{Title: "Kind", Width: 10},
		{Title: "Image", Width: 40},
		{Title: "Detail", Width: 48},
	}

	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row{it.Kind, it.Path, it.Detail})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(styles)

	return reviewModel{
		ctx:   ctx,
		items: items,
		table: t,
		help:  help.New(),
		keys:  reviewKeys,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

		height := msg.Height - 8
		if height < 5 {
			height = 5
		}
		m.table.SetHeight(height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			return m, m.openSelected()
		}

	case reviewStatusMsg:
		m.message = msg.message
		m.messageStyle = msg.style
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the highlighted item, if any
func (m reviewModel) selected() (reviewItem, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return reviewItem{}, false
	}
	return m.items[i], true
}

func (m reviewModel) openSelected() tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}

	if item.Line > 0 {
		editor := GetPreferredEditor()
		c := exec.Command(editor, editorArgs(editor, item.OpenPath, item.Line)...)
		return tea.ExecProcess(c, func(err error) tea.Msg {
			if err != nil {
				return reviewStatusMsg{
					message: fmt.Sprintf("Editor error: %v", err),
					style:   ui.StyleError,
				}
			}
			return reviewStatusMsg{message: "Back from " + filepath.Base(item.OpenPath), style: ui.StyleMuted}
		})
	}

	return func() tea.Msg {
		if err := OpenFile(item.OpenPath); err != nil {
			return reviewStatusMsg{message: err.Error(), style: ui.StyleError}
		}
		return reviewStatusMsg{message: "Opened: " + item.Path, style: ui.StyleSuccess}
	}
}

func (m reviewModel) View() string {
	broken := 0
	for _, it := range m.items {
		if it.Kind == "broken" {
			broken++
		}
	}

	header := ui.StyleTitle.Render("px review") + "  " +
		ui.StyleMuted.Render(fmt.Sprintf("%d broken references, %d oversized images", broken, len(m.items)-broken))

	view := header + "\n\n" + m.table.View() + "\n"
	if m.message != "" {
		view += "\n" + m.messageStyle.Render(m.message) + "\n"
	}
	view += "\n" + m.help.View(m.keys)
	return view
}
