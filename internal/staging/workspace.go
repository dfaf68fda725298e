// Package staging manages per-mix scratch directories and reclaims disk from
// abandoned ones.
package staging

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mixdown/internal/logging"
	"mixdown/internal/services"
)

// workspacePrefix names every per-mix scratch directory.
const workspacePrefix = "mix-"

// Workspace is one mix's private scratch directory under the staging root.
type Workspace struct {
	Dir string
}

// NewWorkspace creates a uniquely named scratch directory under root.
func NewWorkspace(root string) (*Workspace, error) {
	dir := filepath.Join(root, workspacePrefix+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrTransient, "initializing", "staging", "create workspace", err)
	}
	return &Workspace{Dir: dir}, nil
}

// Path joins parts onto the workspace directory.
func (w *Workspace) Path(parts ...string) string {
	return filepath.Join(append([]string{w.Dir}, parts...)...)
}

// Cleanup removes the workspace and everything in it. Failures are logged,
// never returned; stale cleanup will catch leftovers.
func (w *Workspace) Cleanup(logger *slog.Logger) {
	if w == nil || w.Dir == "" {
		return
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		if logger != nil {
			logger.Warn("failed to remove mix workspace",
				logging.String("path", w.Dir),
				logging.Error(err),
				logging.String(logging.FieldEventType, "staging_cleanup_failed"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
		}
	}
}
