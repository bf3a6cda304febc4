package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kamal-hamza/px-cli/internal/core/ports/mocks"
)

func TestRewriteService_RewriteOnceThenNothing(t *testing.T) {
	repo := mocks.NewMockSourceRepository("/project/src")
	page := repo.AddFile("pages/Home.tsx", `<img src="/a/b.png" alt="" />`)
	svc := NewRewriteService(repo)
	ctx := context.Background()

	res, err := svc.Rewrite(ctx, "a/b.png", "a/b.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FilesChanged != 1 {
		t.Errorf("expected 1 file changed, got %d", res.FilesChanged)
	}
	if got := repo.Content(page); got != `<img src="/a/b.jpg" alt="" />` {
		t.Errorf("unexpected content %q", got)
	}

	res, err = svc.Rewrite(ctx, "a/b.png", "a/b.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FilesChanged != 0 {
		t.Errorf("second rewrite should change nothing, got %d", res.FilesChanged)
	}
	if repo.WriteCount(page) != 1 {
		t.Errorf("expected exactly one write, got %d", repo.WriteCount(page))
	}
}

func TestRewriteService_UntouchedFiles(t *testing.T) {
	repo := mocks.NewMockSourceRepository("/project/src")
	other := repo.AddFile("Other.tsx", `<img src="/a/c.png" />`)
	bare := repo.AddFile("Bare.ts", `const img = "a/b.png";`)
	svc := NewRewriteService(repo)

	res, err := svc.Rewrite(context.Background(), "a/b.png", "a/b.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FilesChanged != 0 {
		t.Errorf("expected no changes, got %d", res.FilesChanged)
	}
	if repo.WriteCount(other) != 0 || repo.WriteCount(bare) != 0 {
		t.Error("files without a leading-slash literal must not be written")
	}
}

func TestRewriteService_ContinuesAfterReadError(t *testing.T) {
	repo := mocks.NewMockSourceRepository("/project/src")
	broken := repo.AddFile("A.tsx", `"/x.png"`)
	ok := repo.AddFile("B.tsx", `"/x.png"`)
	repo.SetReadError(broken, errors.New("permission denied"))

	res, err := NewRewriteService(repo).Rewrite(context.Background(), "x.png", "x.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Errors) != 1 {
		t.Errorf("expected 1 collected error, got %v", res.Errors)
	}
	if res.FilesChanged != 1 || repo.Content(ok) != `"/x.jpg"` {
		t.Error("readable file should still be rewritten")
	}
}

func TestReplaceReferences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		changed bool
	}{
		{"double quotes", `src="/a/b.png"`, `src="/a/b.jpg"`, true},
		{"single quotes", `src='/a/b.png'`, `src='/a/b.jpg'`, true},
		{"both styles", `["/a/b.png", '/a/b.png']`, `["/a/b.jpg", '/a/b.jpg']`, true},
		{"every occurrence", `"/a/b.png" "/a/b.png"`, `"/a/b.jpg" "/a/b.jpg"`, true},
		{"mixed quotes do not match", `"/a/b.png'`, `"/a/b.png'`, false},
		{"template literal", "`/a/b.png`", "`/a/b.png`", false},
		{"no leading slash", `"a/b.png"`, `"a/b.png"`, false},
		{"longer path", `"/a/b.png.bak"`, `"/a/b.png.bak"`, false},
		{"nested prefix", `"/x/a/b.png"`, `"/x/a/b.png"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ReplaceReferences(tt.content, "a/b.png", "a/b.jpg")
			if got != tt.want || changed != tt.changed {
				t.Errorf("ReplaceReferences(%q) = (%q, %v), want (%q, %v)", tt.content, got, changed, tt.want, tt.changed)
			}
		})
	}
}
