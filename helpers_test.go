package main_test

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	ive "gregoryjjb/ive"
)

var baseTime = time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)

type testFile struct {
	name    string
	size    int
	modTime time.Time
}

// newTestFS creates /images populated with files of the given sizes and
// modification times. Contents are junk, only the metadata matters.
func newTestFS(t *testing.T, files ...testFile) ive.IveFS {
	t.Helper()

	fs := ive.NewIveMemFS()
	require.NoError(t, fs.MkdirAll("/images", 0755))

	for _, f := range files {
		path := filepath.Join("/images", f.name)
		require.NoError(t, afero.WriteFile(fs, path, bytes.Repeat([]byte{'x'}, f.size), 0644))
		require.NoError(t, fs.Chtimes(path, f.modTime, f.modTime))
	}

	return fs
}

func writePNG(t *testing.T, fs afero.Fs, path string, width, height int) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
}

// numberedFiles returns 0.png through n-1.png, ordered by name
func numberedFiles(n int) []testFile {
	files := make([]testFile, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, testFile{
			name:    string(rune('0'+i)) + ".png",
			size:    100 + i,
			modTime: baseTime.Add(time.Duration(i) * time.Hour),
		})
	}
	return files
}

func newTestViewer(t *testing.T, fs ive.IveFS, order ive.SortOrder) *ive.Viewer {
	t.Helper()

	loader := ive.NewImageLoader(fs, "/images", ive.NewImageFilter(nil), order)
	viewer, err := ive.NewViewer(loader, 4)
	require.NoError(t, err)
	require.NoError(t, viewer.Load())
	t.Cleanup(viewer.Close)

	return viewer
}

func names(images []ive.ImageFile) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.Name)
	}
	return out
}
