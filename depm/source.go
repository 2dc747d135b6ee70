package depm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SeppDev/eclipse-sub000/common"
)

// FileResolver reads source files by their project-relative path.  Sources are
// read-only for the duration of the compilation.
type FileResolver interface {
	// ReadFile returns the source text of the file at the given path.
	ReadFile(path common.Path) (string, error)

	// Exists returns whether a file exists at the given path.
	Exists(path common.Path) bool
}

// ErrFileNotFound is returned by file resolvers when a file does not exist.
var ErrFileNotFound = errors.New("file not found")

// DiskResolver is a file resolver which reads files from disk relative to a
// project root directory.
type DiskResolver struct {
	// The absolute path to the project root.
	Root string
}

// NewDiskResolver creates a new disk resolver rooted at the given directory.
func NewDiskResolver(root string) *DiskResolver {
	return &DiskResolver{Root: root}
}

func (dr *DiskResolver) abs(path common.Path) string {
	return filepath.Join(dr.Root, filepath.FromSlash(path.FilePath()))
}

func (dr *DiskResolver) ReadFile(path common.Path) (string, error) {
	buff, err := os.ReadFile(dr.abs(path))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path.FilePath())
	} else if err != nil {
		return "", fmt.Errorf("failed to read file `%s`: %w", path.FilePath(), err)
	}

	return string(buff), nil
}

func (dr *DiskResolver) Exists(path common.Path) bool {
	finfo, err := os.Stat(dr.abs(path))
	return err == nil && !finfo.IsDir()
}

// MapResolver is a file resolver backed by an in-memory map of file paths to
// source text.  It is used to feed the compiler without touching disk.
type MapResolver struct {
	// The source files keyed by slash-separated file path: `src/main.ecl`.
	Files map[string]string
}

// NewMapResolver creates a new in-memory file resolver.
func NewMapResolver(files map[string]string) *MapResolver {
	return &MapResolver{Files: files}
}

func (mr *MapResolver) ReadFile(path common.Path) (string, error) {
	if src, ok := mr.Files[path.FilePath()]; ok {
		return src, nil
	}

	return "", fmt.Errorf("%w: %s", ErrFileNotFound, path.FilePath())
}

func (mr *MapResolver) Exists(path common.Path) bool {
	_, ok := mr.Files[path.FilePath()]
	return ok
}
