package main

import (
	"archive/zip"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var llog zerolog.Logger

func init() {
	llog = log.With().Str("component", "loader").Logger()
}

// DefaultExtensions are the image types the viewer knows how to show
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// ImageFilter accepts regular files whose extension is one of Extensions
type ImageFilter struct {
	Extensions []string
}

func NewImageFilter(extensions []string) ImageFilter {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return ImageFilter{Extensions: normalized}
}

func (f ImageFilter) Accept(info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(info.Name()))
	return slices.Contains(f.Extensions, ext)
}

// ImageLoader lists the images of a single directory in a chosen order
type ImageLoader struct {
	fs     afero.Fs
	dir    string
	filter ImageFilter
	order  SortOrder
}

func NewImageLoader(fs afero.Fs, dir string, filter ImageFilter, order SortOrder) *ImageLoader {
	return &ImageLoader{
		fs:     fs,
		dir:    dir,
		filter: filter,
		order:  order,
	}
}

func (l *ImageLoader) Dir() string {
	return l.dir
}

func (l *ImageLoader) SortOrder() SortOrder {
	return l.order
}

func (l *ImageLoader) SetSortOrder(order SortOrder) {
	l.order = order
}

// LoadImages reads the directory and returns the accepted files sorted by
// the current order
func (l *ImageLoader) LoadImages() ([]ImageFile, error) {
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory %q %w", l.dir, ErrNotExist)
		}
		return nil, err
	}

	var images []ImageFile
	for _, entry := range entries {
		if !l.filter.Accept(entry) {
			continue
		}
		images = append(images, ImageFile{
			Name:    entry.Name(),
			Path:    filepath.Join(l.dir, entry.Name()),
			Size:    entry.Size(),
			ModTime: entry.ModTime(),
		})
	}

	slices.SortStableFunc(images, l.order.Compare)

	llog.Debug().
		Str("dir", l.dir).
		Str("order", l.order.String()).
		Int("entries", len(entries)).
		Int("images", len(images)).
		Msg("Loaded images")

	return images, nil
}

func (l *ImageLoader) Open(img ImageFile) (afero.File, error) {
	f, err := l.fs.Open(img.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %q %w", img.Name, ErrNotExist)
		}
		return nil, err
	}
	return f, nil
}

// Dimensions decodes just the image header to find its size
func (l *ImageLoader) Dimensions(img ImageFile) (int, int, error) {
	f, err := l.Open(img)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %q: %w", img.Name, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Export bundles images into a zip archive written to w, in the order given
func (l *ImageLoader) Export(images []ImageFile, w io.Writer) error {
	z := zip.NewWriter(w)

	for _, img := range images {
		if err := l.exportOne(z, img); err != nil {
			return err
		}
	}

	return z.Close()
}

func (l *ImageLoader) exportOne(z *zip.Writer, img ImageFile) error {
	f, err := l.Open(img)
	if err != nil {
		return err
	}
	defer f.Close()

	header := &zip.FileHeader{
		Name:     img.Name,
		Method:   zip.Store,
		Modified: img.ModTime,
	}
	entry, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(entry, f)
	return err
}
