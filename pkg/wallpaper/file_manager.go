package wallpaper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jamesbarr/centr/util/log"
)

// renderedExts are the extensions FileManager writes and is allowed to prune.
var renderedExts = map[string]bool{".jpg": true, ".png": true}

// FileManager owns the directory that rendered wallpapers are written to.
type FileManager struct {
	rootDir string
}

// NewFileManager creates a new FileManager with the given root directory.
func NewFileManager(rootDir string) *FileManager {
	return &FileManager{rootDir: rootDir}
}

// Dir returns the root directory.
func (fm *FileManager) Dir() string {
	return fm.rootDir
}

// EnsureDir creates the root directory if it does not exist.
func (fm *FileManager) EnsureDir() error {
	if err := os.MkdirAll(fm.rootDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", fm.rootDir, err)
	}
	return nil
}

// NewPath returns a fresh path for a rendered wallpaper with extension ext
// ("jpg" or "png").
func (fm *FileManager) NewPath(ext string) (string, error) {
	ext = "." + strings.TrimPrefix(ext, ".")
	if !renderedExts[ext] {
		return "", fmt.Errorf("invalid extension %q", ext)
	}
	return filepath.Join(fm.rootDir, uuid.NewString()+ext), nil
}

// Prune removes all but the keep most recent rendered wallpapers. current is
// never removed. It returns the number of files deleted.
func (fm *FileManager) Prune(keep int, current string) int {
	entries, err := os.ReadDir(fm.rootDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("FileManager: Error reading %s: %v", fm.rootDir, err)
		}
		return 0
	}

	type rendered struct {
		path    string
		modTime time.Time
	}
	var files []rendered
	for _, entry := range entries {
		if entry.IsDir() || !renderedExts[filepath.Ext(entry.Name())] {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if uuid.Validate(id) != nil {
			continue // not ours
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, rendered{filepath.Join(fm.rootDir, entry.Name()), info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	deleted := 0
	kept := 0
	for _, f := range files {
		if f.path == current || kept < keep {
			kept++
			continue
		}
		if err := os.Remove(f.path); err != nil {
			// the desktop may still hold the previous wallpaper open
			if strings.Contains(err.Error(), "used by another process") || strings.Contains(err.Error(), "access is denied") {
				log.Debugf("Prune: Skipped locked file %s: %v", f.path, err)
			} else if !os.IsNotExist(err) {
				log.Printf("Prune: Failed to delete %s: %v", f.path, err)
			}
			continue
		}
		deleted++
	}
	if deleted > 0 {
		log.Debugf("Prune: Removed %d old wallpapers from %s", deleted, fm.rootDir)
	}
	return deleted
}
