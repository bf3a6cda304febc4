package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// galleryExtensions are the files listed in gallery data
var galleryExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// GalleryService lists the images of gallery folders as web paths
type GalleryService struct {
	assetsRoot  string
	galleryRoot string
}

// NewGalleryService creates a gallery service for <assetsRoot>/<galleryRoot>
func NewGalleryService(assetsRoot, galleryRoot string) *GalleryService {
	return &GalleryService{
		assetsRoot:  assetsRoot,
		galleryRoot: strings.Trim(filepath.ToSlash(galleryRoot), "/"),
	}
}

// Folders returns the sub-directories of the gallery root, sorted
func (s *GalleryService) Folders(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir(""))
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery root: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			folders = append(folders, entry.Name())
		}
	}
	return folders, nil
}

// Execute maps every folder to its images ("/projects/<folder>/<file>").
// A missing folder maps to an empty list.
func (s *GalleryService) Execute(ctx context.Context, folders []string) (map[string][]string, error) {
	result := make(map[string][]string, len(folders))

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		images, err := s.imagesIn(folder)
		if err != nil {
			return nil, err
		}
		result[folder] = images
	}

	return result, nil
}

func (s *GalleryService) imagesIn(folder string) ([]string, error) {
	images := []string{}

	entries, err := os.ReadDir(s.dir(folder))
	if err != nil {
		if os.IsNotExist(err) {
			return images, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", folder, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !galleryExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		images = append(images, "/"+path.Join(s.galleryRoot, folder, entry.Name()))
	}
	sort.Strings(images)
	return images, nil
}

func (s *GalleryService) dir(folder string) string {
	return filepath.Join(s.assetsRoot, filepath.FromSlash(s.galleryRoot), folder)
}
