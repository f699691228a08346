package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// IveFS is an Afero FS with added functionality
// to replicate OS filesystems in testing
type IveFS interface {
	afero.Fs
	Abs(string) (string, error)
	HomeDir() (string, error)
}

type iveOSFS struct {
	afero.Fs
}

func NewIveOSFS() IveFS {
	return &iveOSFS{
		afero.NewOsFs(),
	}
}

func (g *iveOSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (g *iveOSFS) HomeDir() (string, error) {
	return os.UserHomeDir()
}

type iveMemFS struct {
	afero.Fs
}

func NewIveMemFS() IveFS {
	return &iveMemFS{
		afero.NewMemMapFs(),
	}
}

func (g *iveMemFS) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join("/", path), nil
}

func (g *iveMemFS) HomeDir() (string, error) {
	return "/", nil
}
