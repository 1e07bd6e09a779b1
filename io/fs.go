package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating files and directories.
// It extends basic file system operations with write capabilities for saving
// memory images.
type CreateFS interface {
	// Sub returns a filesystem for a subdirectory.
	Sub(name string) (sub CreateFS, err error)
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS returns a CreateFS rooted at a directory of the host file system.
// It is also an fs.FS.
func DirFS(dir string) *DirectoryFS {
	return &DirectoryFS{Dir: dir}
}

// DirectoryFS is a host directory.
type DirectoryFS struct {
	Dir string
}

var _ CreateFS = (*DirectoryFS)(nil)
var _ fs.FS = (*DirectoryFS)(nil)

func (dfs *DirectoryFS) path(name string) (path string, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		return
	}

	path = filepath.Join(dfs.Dir, filepath.FromSlash(name))
	return
}

// Open opens a file for reading.
func (dfs *DirectoryFS) Open(name string) (file fs.File, err error) {
	return os.DirFS(dfs.Dir).Open(name)
}

// Sub returns the subdirectory, which must exist.
func (dfs *DirectoryFS) Sub(name string) (sub CreateFS, err error) {
	path, err := dfs.path(name)
	if err != nil {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = &fs.PathError{Op: "sub", Path: name, Err: fs.ErrInvalid}
		return
	}

	sub = &DirectoryFS{Dir: path}
	return
}

// Create creates or truncates a file.
func (dfs *DirectoryFS) Create(name string) (file io.WriteCloser, err error) {
	path, err := dfs.path(name)
	if err != nil {
		return
	}

	return os.Create(path)
}

// Mkdir creates a directory.
func (dfs *DirectoryFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	path, err := dfs.path(name)
	if err != nil {
		return
	}

	return os.Mkdir(path, filemode)
}
