// Package assets resolves audio asset references to local files and publishes
// finished mixes. References are opaque to the rest of the pipeline; the store
// decides how they map onto storage.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mixdown/internal/fileutil"
	"mixdown/internal/services"
)

// Store fetches referenced assets into a working directory and publishes
// rendered output under a destination reference.
type Store interface {
	// Download resolves ref into destDir and returns the local path.
	Download(ctx context.Context, ref, destDir string) (string, error)
	// Upload publishes localPath under destRef and returns the stored
	// reference of the published copy.
	Upload(ctx context.Context, localPath, destRef string) (string, error)
}

// LocalStore serves assets from a library directory on the local filesystem
// and publishes mixes into an output directory.
type LocalStore struct {
	LibraryDir string
	OutputDir  string
}

// NewLocalStore returns a store rooted at the given library and output
// directories.
func NewLocalStore(libraryDir, outputDir string) *LocalStore {
	return &LocalStore{LibraryDir: libraryDir, OutputDir: outputDir}
}

// Download copies the referenced library file into destDir. Absolute
// references are honored as-is; everything else resolves under LibraryDir.
func (s *LocalStore) Download(ctx context.Context, ref, destDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", services.Wrap(services.ErrTransient, "fetching", "download", "asset "+ref, err)
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", services.Wrap(services.ErrValidation, "fetching", "download", "empty asset reference", nil)
	}

	source := ref
	if !filepath.IsAbs(source) {
		source = filepath.Join(s.LibraryDir, filepath.Clean(ref))
	}
	if !fileutil.FileExists(source) {
		return "", services.Wrap(services.ErrNotFound, "fetching", "download", "asset "+ref, nil)
	}

	dest := filepath.Join(destDir, filepath.Base(source))
	if err := fileutil.CopyFile(source, dest); err != nil {
		return "", services.Wrap(services.ErrTransient, "fetching", "download",
			fmt.Sprintf("asset %s to %s", ref, dest), err)
	}
	return dest, nil
}

// Upload copies a rendered file into OutputDir under destRef and returns the
// absolute path of the published copy.
func (s *LocalStore) Upload(ctx context.Context, localPath, destRef string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", services.Wrap(services.ErrTransient, "publishing", "upload", "asset "+destRef, err)
	}
	destRef = strings.TrimSpace(destRef)
	if destRef == "" {
		return "", services.Wrap(services.ErrValidation, "publishing", "upload", "empty destination reference", nil)
	}
	if !fileutil.FileExists(localPath) {
		return "", services.Wrap(services.ErrNotFound, "publishing", "upload", "rendered file "+localPath, nil)
	}

	dest := filepath.Join(s.OutputDir, filepath.Clean(destRef))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "publishing", "upload", "create output directory", err)
	}
	if err := fileutil.CopyFile(localPath, dest); err != nil {
		return "", services.Wrap(services.ErrTransient, "publishing", "upload",
			fmt.Sprintf("publish %s as %s", localPath, destRef), err)
	}
	return dest, nil
}
