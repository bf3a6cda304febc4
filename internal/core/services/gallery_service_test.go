package services

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGalleryService_Execute(t *testing.T) {
	public := t.TempDir()
	pool := filepath.Join(public, "projects", "Ultra Luxe Private Pool")
	os.MkdirAll(filepath.Join(pool, "raw"), 0755)
	for _, name := range []string{"2.JPG", "1.jpg", "plan.pdf", "3.webp"} {
		os.WriteFile(filepath.Join(pool, name), nil, 0644)
	}

	svc := NewGalleryService(public, "projects")
	got, err := svc.Execute(context.Background(), []string{"Ultra Luxe Private Pool", "missing-folder"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string][]string{
		"Ultra Luxe Private Pool": {
			"/projects/Ultra Luxe Private Pool/1.jpg",
			"/projects/Ultra Luxe Private Pool/2.JPG",
			"/projects/Ultra Luxe Private Pool/3.webp",
		},
		"missing-folder": {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Execute() = %v, want %v", got, want)
	}
}

func TestGalleryService_Folders(t *testing.T) {
	public := t.TempDir()
	for _, dir := range []string{"b", "a", ".hidden"} {
		os.MkdirAll(filepath.Join(public, "projects", dir), 0755)
	}
	os.WriteFile(filepath.Join(public, "projects", "readme.txt"), nil, 0644)

	folders, err := NewGalleryService(public, "/projects/").Folders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(folders, []string{"a", "b"}) {
		t.Errorf("unexpected folders %v", folders)
	}
}
