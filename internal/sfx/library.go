package sfx

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mixdown/internal/services"
)

// Loader produces the full sound-id to asset-reference catalog.
type Loader func() (map[string]string, error)

// Library caches the effect catalog so repeated mixes do not rescan storage.
// The catalog loads lazily on first Resolve and stays cached until
// Invalidate.
type Library struct {
	mu      sync.Mutex
	load    Loader
	catalog map[string]string
}

// NewLibrary returns a library backed by the given loader.
func NewLibrary(load Loader) *Library {
	return &Library{load: load}
}

// Resolve maps a sound id to its asset reference, loading the catalog if
// needed. Unknown ids return a not-found error naming the id.
func (l *Library) Resolve(soundID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.catalog == nil {
		catalog, err := l.load()
		if err != nil {
			return "", services.Wrap(services.ErrTransient, "fetching", "sfx library", "load catalog", err)
		}
		if catalog == nil {
			catalog = map[string]string{}
		}
		l.catalog = catalog
	}

	ref, ok := l.catalog[soundID]
	if !ok {
		return "", services.Wrap(services.ErrNotFound, "fetching", "sfx library", "sound "+soundID, nil)
	}
	return ref, nil
}

// Invalidate drops the cached catalog so the next Resolve reloads it.
func (l *Library) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.catalog = nil
}

var audioExtensions = map[string]bool{
	".wav":  true,
	".flac": true,
	".mp3":  true,
	".ogg":  true,
	".m4a":  true,
}

// DirLoader scans a directory tree for audio files and maps each file's base
// name (without extension, lowercased) to its path.
func DirLoader(dir string) Loader {
	return func() (map[string]string, error) {
		catalog := make(map[string]string)
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if !audioExtensions[ext] {
				return nil
			}
			id := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
			catalog[id] = path
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				return map[string]string{}, nil
			}
			return nil, err
		}
		return catalog, nil
	}
}
