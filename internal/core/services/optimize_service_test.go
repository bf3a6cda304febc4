package services

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamal-hamza/px-cli/internal/adapters/raster"
	"github.com/kamal-hamza/px-cli/internal/adapters/repository"
	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports/mocks"
)

type optimizeFixture struct {
	assets     *mocks.MockAssetRepository
	sources    *mocks.MockSourceRepository
	inspector  *mocks.MockInspector
	transcoder *mocks.MockTranscoder
	reporter   *mocks.MockReporter
	svc        *OptimizeService
}

func newOptimizeFixture() *optimizeFixture {
	f := &optimizeFixture{
		assets:     mocks.NewMockAssetRepository("/project/public"),
		sources:    mocks.NewMockSourceRepository("/project/src"),
		inspector:  mocks.NewMockInspector(),
		transcoder: mocks.NewMockTranscoder(),
		reporter:   mocks.NewMockReporter(),
	}
	f.svc = NewOptimizeService(f.assets, f.sources, f.inspector, f.transcoder, domain.DefaultPolicy(), f.reporter)
	return f
}

func (f *optimizeFixture) add(rel string, format domain.Format, w, h int, size int64) string {
	abs := f.assets.AddFile(rel)
	f.inspector.SetRecord(domain.AssetRecord{AbsPath: abs, RelPath: rel, Format: format, Width: w, Height: h, Size: size})
	return abs
}

func TestOptimizeService_ConvertsAndRelinks(t *testing.T) {
	f := newOptimizeFixture()
	big := int64(2 * 1024 * 1024)
	f.add("images/large.png", domain.FormatPNG, 3000, 2000, big)
	page := f.sources.AddFile("Home.tsx", `<img src="/images/large.png" />`)

	summary, err := f.svc.Execute(context.Background(), OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Optimized != 1 || summary.Converted != 1 {
		t.Errorf("expected 1 optimized and 1 converted, got %+v", summary)
	}
	if summary.ReferencesUpdated != 1 {
		t.Errorf("expected 1 reference update, got %d", summary.ReferencesUpdated)
	}
	if got := f.sources.Content(page); got != `<img src="/images/large.jpg" />` {
		t.Errorf("reference not rewritten: %q", got)
	}
	if calls := f.inspector.TransparencyCalls(); len(calls) != 1 {
		t.Errorf("expected one transparency check, got %v", calls)
	}
	if summary.Saved() != big/2 {
		t.Errorf("expected %d bytes saved, got %d", big/2, summary.Saved())
	}
}

func TestOptimizeService_TransparentPNGIsNotConverted(t *testing.T) {
	f := newOptimizeFixture()
	abs := f.add("logo.png", domain.FormatPNG, 100, 100, 900*1024)
	f.inspector.SetTransparent(abs, true)
	page := f.sources.AddFile("Nav.tsx", `"/logo.png"`)

	summary, err := f.svc.Execute(context.Background(), OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Optimized != 1 || summary.Converted != 0 {
		t.Errorf("expected in-place recompression only, got %+v", summary)
	}
	if f.sources.WriteCount(page) != 0 {
		t.Error("source must not be touched when the path is unchanged")
	}
}

func TestOptimizeService_SkipsCheapAndUnsupported(t *testing.T) {
	f := newOptimizeFixture()
	f.add("small.jpg", domain.FormatJPEG, 100, 100, 1024)
	fake := f.assets.AddFile("really-a-gif.png")
	f.inspector.SetError(fake, domain.ErrUnsupportedFormat)

	summary, err := f.svc.Execute(context.Background(), OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Skipped != 2 || summary.Failed != 0 {
		t.Errorf("expected 2 skipped, got %+v", summary)
	}
	if len(f.transcoder.GetCalls()) != 0 {
		t.Error("transcoder should not be called")
	}
	if len(f.inspector.TransparencyCalls()) != 0 {
		t.Error("small files must not be fully decoded")
	}
	if len(f.reporter.Warnings) != 1 {
		t.Errorf("expected a warning for the unsupported file, got %v", f.reporter.Warnings)
	}
}

func TestOptimizeService_FailureDoesNotStopRun(t *testing.T) {
	f := newOptimizeFixture()
	bad := f.add("a.jpg", domain.FormatJPEG, 4000, 100, 1024)
	f.add("b.jpg", domain.FormatJPEG, 4000, 100, 1024)
	corrupt := f.assets.AddFile("c.jpg")
	f.transcoder.SetShouldFail(bad, &domain.IOError{Op: "write", Path: bad, Err: errors.New("disk full")})

	summary, err := f.svc.Execute(context.Background(), OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Failed != 2 || summary.Optimized != 1 {
		t.Errorf("expected 2 failed and 1 optimized, got %+v", summary)
	}
	if _, ok := f.reporter.Failures[bad]; !ok {
		t.Error("transcode failure should be reported")
	}
	if !domain.IsDecodeError(f.reporter.Failures[corrupt]) {
		t.Errorf("expected decode error for %s, got %v", corrupt, f.reporter.Failures[corrupt])
	}
}

func TestOptimizeService_DryRun(t *testing.T) {
	f := newOptimizeFixture()
	f.add("images/large.png", domain.FormatPNG, 3000, 2000, 2*1024*1024)
	page := f.sources.AddFile("Home.tsx", `"/images/large.png"`)

	summary, err := f.svc.Execute(context.Background(), OptimizeOptions{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Optimized != 1 || summary.Converted != 1 {
		t.Errorf("dry run should still count decisions, got %+v", summary)
	}
	if len(f.transcoder.GetCalls()) != 0 || f.sources.WriteCount(page) != 0 {
		t.Error("dry run must not write anything")
	}
	found := false
	for _, msg := range f.reporter.Infos {
		if strings.Contains(msg, "resize and convert to jpeg") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the decision to be described, got %v", f.reporter.Infos)
	}
}

func TestOptimizeService_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")
	assets := repository.NewFileAssetRepository(root, nil)
	sources := repository.NewFileSourceRepository(t.TempDir(), nil)
	svc := NewOptimizeService(assets, sources, raster.NewInspector(root), raster.NewTranscoder(domain.DefaultPolicy()), domain.DefaultPolicy(), mocks.NewMockReporter())

	if _, err := svc.Execute(context.Background(), OptimizeOptions{}); !errors.Is(err, domain.ErrRootMissing) {
		t.Errorf("expected ErrRootMissing, got %v", err)
	}
}

// noisyOpaqueImage has a band of random pixels so the PNG stays large
func noisyOpaqueImage(w, h, noisyRows int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 30, G: 120, B: 200, A: 255}
			if y < noisyRows {
				c = color.NRGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOptimizeService_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("encodes a 3000x2000 image")
	}

	project := t.TempDir()
	publicDir := filepath.Join(project, "public")
	srcDir := filepath.Join(project, "src")
	if err := os.MkdirAll(filepath.Join(publicDir, "images"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(srcDir, "pages"), 0755); err != nil {
		t.Fatal(err)
	}

	largePNG := filepath.Join(publicDir, "images", "large.png")
	f, err := os.Create(largePNG)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, noisyOpaqueImage(3000, 2000, 250)); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	f.Close()

	info, _ := os.Stat(largePNG)
	if info.Size() <= domain.DefaultPolicy().MaxSizeBytes {
		t.Fatalf("fixture too small to trigger conversion: %d bytes", info.Size())
	}

	page := filepath.Join(srcDir, "pages", "Home.tsx")
	os.WriteFile(page, []byte(`export const Hero = () => <img src="/images/large.png" />;`+"\n"), 0644)
	untouched := filepath.Join(srcDir, "pages", "About.tsx")
	os.WriteFile(untouched, []byte(`export const About = () => null;`+"\n"), 0644)

	policy := domain.DefaultPolicy()
	svc := NewOptimizeService(
		repository.NewFileAssetRepository(publicDir, nil),
		repository.NewFileSourceRepository(srcDir, nil),
		raster.NewInspector(publicDir),
		raster.NewTranscoder(policy),
		policy,
		mocks.NewMockReporter(),
	)

	summary, err := svc.Execute(context.Background(), OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Converted != 1 || summary.ReferencesUpdated != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}

	if _, err := os.Stat(largePNG); !os.IsNotExist(err) {
		t.Error("images/large.png should be deleted")
	}

	jpg := filepath.Join(publicDir, "images", "large.jpg")
	jf, err := os.Open(jpg)
	if err != nil {
		t.Fatalf("images/large.jpg missing: %v", err)
	}
	defer jf.Close()
	cfg, format, err := image.DecodeConfig(jf)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg, got %s", format)
	}
	if cfg.Width > 2500 || cfg.Height > 2500 {
		t.Errorf("longest edge exceeds ceiling: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width != 2500 || cfg.Height != 1667 {
		t.Errorf("expected aspect preserving 2500x1667, got %dx%d", cfg.Width, cfg.Height)
	}

	content, _ := os.ReadFile(page)
	if !strings.Contains(string(content), `"/images/large.jpg"`) || strings.Contains(string(content), "large.png") {
		t.Errorf("reference not rewritten: %s", content)
	}
	if data, _ := os.ReadFile(untouched); string(data) != "export const About = () => null;\n" {
		t.Error("unrelated source file changed")
	}

	// A second run finds nothing left to do
	again, err := svc.Execute(context.Background(), OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if again.Converted != 0 || again.ReferencesUpdated != 0 {
		t.Errorf("second run should not convert again, got %+v", again)
	}
}
