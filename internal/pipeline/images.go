package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/yumscrape/pkg/fetcher"
)

// ImageStore saves the photo of a recipe under its cooking id.
type ImageStore interface {
	// Save downloads imageURL and stores it for cookingID, returning the
	// number of bytes written.
	Save(ctx context.Context, imageURL, cookingID string) (int64, error)
}

// ImagePath returns where the image for cookingID is stored under dir.
func ImagePath(dir, cookingID string) string {
	return filepath.Join(dir, "id_"+cookingID+".png")
}

// FileImageStore downloads images through a Fetcher and writes them into a
// directory. The bytes are stored as served; the .png extension is fixed
// regardless of the actual format.
type FileImageStore struct {
	fetcher fetcher.Fetcher
	dir     string
	opts    fetcher.Options
}

// NewFileImageStore creates an ImageStore writing into dir.
func NewFileImageStore(f fetcher.Fetcher, dir string, opts fetcher.Options) *FileImageStore {
	return &FileImageStore{fetcher: f, dir: dir, opts: opts}
}

// Save implements ImageStore. A non-2xx response is returned as an error
// and nothing is written.
func (s *FileImageStore) Save(ctx context.Context, imageURL, cookingID string) (int64, error) {
	content, err := s.fetcher.Fetch(ctx, imageURL, s.opts)
	if err != nil {
		return 0, fmt.Errorf("download image for %s: %w", cookingID, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create image directory: %w", err)
	}

	path := ImagePath(s.dir, cookingID)
	if err := os.WriteFile(path, content.Body, 0o644); err != nil { //#nosec G306 -- images are not sensitive
		return 0, fmt.Errorf("write image %s: %w", path, err)
	}
	return int64(len(content.Body)), nil
}
