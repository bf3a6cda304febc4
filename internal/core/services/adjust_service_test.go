package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports/mocks"
)

func TestAdjustService_MirrorsTree(t *testing.T) {
	source := mocks.NewMockAssetRepository("/project/public/design/pools")
	a := source.AddFile("a.jpg")
	b := source.AddFile("night/b.png")
	source.AddFile("notes.txt")

	adjuster := mocks.NewMockAdjuster()
	reporter := mocks.NewMockReporter()
	svc := NewAdjustService(source, adjuster, reporter)

	dest := filepath.Join(t.TempDir(), "pools_adjusted")
	summary, err := svc.Execute(context.Background(), dest, domain.DefaultAdjustment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Processed != 2 || summary.Failed != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if got := adjuster.Destination(a); got != filepath.Join(dest, "a.jpg") {
		t.Errorf("unexpected destination %q", got)
	}
	if got := adjuster.Destination(b); got != filepath.Join(dest, "night", "b.png") {
		t.Errorf("unexpected destination %q", got)
	}
	if len(reporter.Warnings) != 0 {
		t.Error("fresh destination should not warn")
	}
}

func TestAdjustService_ContinuesAfterFailure(t *testing.T) {
	source := mocks.NewMockAssetRepository("/in")
	bad := source.AddFile("a.jpg")
	source.AddFile("b.jpg")

	adjuster := mocks.NewMockAdjuster()
	adjuster.SetShouldFail(bad, errors.New("corrupt"))
	reporter := mocks.NewMockReporter()

	dest := t.TempDir()
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	summary, err := NewAdjustService(source, adjuster, reporter).Execute(context.Background(), dest, domain.DefaultAdjustment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 1 || summary.Failed != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(reporter.Warnings) != 1 {
		t.Errorf("existing destination should warn once, got %v", reporter.Warnings)
	}
}
