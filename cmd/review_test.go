package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

func createTestItems() []reviewItem {
	return []reviewItem{
		{Kind: "broken", Path: "/images/b.webp", Detail: "src/App.tsx:3", OpenPath: "/p/src/App.tsx", Line: 3},
		{Kind: "oversized", Path: "/images/big.png", Detail: "2.00 MB", OpenPath: "/p/public/images/big.png"},
		{Kind: "oversized", Path: "/images/wide.jpg", Detail: "4000x1000", OpenPath: "/p/public/images/wide.jpg"},
	}
}

func TestBuildReviewItems(t *testing.T) {
	analyze := &domain.AnalyzeReport{
		Findings: []domain.AnalysisFinding{
			{Record: domain.AssetRecord{RelPath: "images/big.png", Size: 2 << 20, Width: 3000, Height: 2000}, LargeFile: true, LargePNG: true},
		},
	}
	verify := &domain.VerifyReport{
		Missing: []domain.Reference{
			{ImagePath: "/images/b.webp", SourceFile: "src/App.tsx", Line: 3},
		},
	}

	items := buildReviewItems(analyze, verify, filepath.FromSlash("/p/public"), filepath.FromSlash("/p"))
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	broken := items[0]
	if broken.Kind != "broken" || broken.Line != 3 {
		t.Errorf("expected broken reference first, got %+v", broken)
	}
	if broken.OpenPath != filepath.Join(filepath.FromSlash("/p"), "src", "App.tsx") {
		t.Errorf("unexpected source path %q", broken.OpenPath)
	}

	oversized := items[1]
	if oversized.Path != "/images/big.png" {
		t.Errorf("expected web path, got %q", oversized.Path)
	}
	if !strings.Contains(oversized.Detail, "3000x2000") || !strings.Contains(oversized.Detail, "heavy png") {
		t.Errorf("unexpected detail %q", oversized.Detail)
	}
	if oversized.Line != 0 {
		t.Error("oversized items should not carry a line")
	}
}

func TestBuildReviewItems_NilReports(t *testing.T) {
	if items := buildReviewItems(nil, nil, "/p/public", "/p"); len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestReviewModelInitialization(t *testing.T) {
	m := newReviewModel(context.Background(), createTestItems())

	if len(m.items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(m.items))
	}
	if m.table.Cursor() != 0 {
		t.Errorf("Expected cursor at 0, got %d", m.table.Cursor())
	}
	if m.ready {
		t.Error("Expected ready to be false initially")
	}
}

func TestReviewNavigation(t *testing.T) {
	m := newReviewModel(context.Background(), createTestItems())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(reviewModel)
	if m.table.Cursor() != 1 {
		t.Errorf("Expected cursor at 1 after down, got %d", m.table.Cursor())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(reviewModel)
	if m.table.Cursor() != 0 {
		t.Errorf("Expected cursor at 0 after up, got %d", m.table.Cursor())
	}

	item, ok := m.selected()
	if !ok || item.Path != "/images/b.webp" {
		t.Errorf("unexpected selection %+v", item)
	}
}

func TestReviewQuit(t *testing.T) {
	m := newReviewModel(context.Background(), createTestItems())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestReviewWindowResize(t *testing.T) {
	m := newReviewModel(context.Background(), createTestItems())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(reviewModel)

	if !m.ready {
		t.Error("Expected ready after window size message")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestReviewStatusMessage(t *testing.T) {
	m := newReviewModel(context.Background(), createTestItems())

	updated, _ := m.Update(reviewStatusMsg{message: "Opened: /images/big.png"})
	m = updated.(reviewModel)

	if !strings.Contains(m.View(), "Opened: /images/big.png") {
		t.Error("Expected status message in view")
	}
}

func TestReviewView(t *testing.T) {
	m := newReviewModel(context.Background(), createTestItems())
	view := m.View()

	if !strings.Contains(view, "1 broken references, 2 oversized images") {
		t.Errorf("Expected counts in header, got:\n%s", view)
	}
	if !strings.Contains(view, "/images/b.webp") {
		t.Error("Expected first item in the table")
	}
}
