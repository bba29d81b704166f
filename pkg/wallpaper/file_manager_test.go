package wallpaper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_NewPath(t *testing.T) {
	fm := NewFileManager(t.TempDir())

	p, err := fm.NewPath("jpg")
	require.NoError(t, err)
	assert.Equal(t, fm.Dir(), filepath.Dir(p))
	assert.True(t, strings.HasSuffix(p, ".jpg"))

	p2, err := fm.NewPath(".png")
	require.NoError(t, err)
	assert.NotEqual(t, p, p2)

	_, err = fm.NewPath("../evil")
	assert.Error(t, err)
	_, err = fm.NewPath("gif")
	assert.Error(t, err)
}

func TestFileManager_Prune(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fm := NewFileManager(dir)
	require.NoError(t, fm.EnsureDir())

	// oldest first
	var paths []string
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p, err := fm.NewPath("jpg")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		mt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mt, mt))
		paths = append(paths, p)
	}
	foreign := filepath.Join(dir, "holiday.jpg")
	require.NoError(t, os.WriteFile(foreign, []byte("x"), 0644))

	// the oldest file is current and must survive
	deleted := fm.Prune(2, paths[0])
	assert.Equal(t, 2, deleted)

	assert.FileExists(t, paths[0])
	assert.NoFileExists(t, paths[1])
	assert.NoFileExists(t, paths[2])
	assert.FileExists(t, paths[3])
	assert.FileExists(t, paths[4])
	assert.FileExists(t, foreign, "files not written by centr are left alone")
}

func TestFileManager_PruneMissingDir(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 0, fm.Prune(1, ""))
}
