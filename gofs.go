package fat12

import (
	"io"
	"io/fs"
)

// GoFS wraps a mounted volume so it satisfies fs.FS in addition to the
// afero surface.
type GoFS struct {
	Fs
}

// NewGoFS mounts the FAT12 volume read from device as an fs.FS compatible
// filesystem.
func NewGoFS(device io.ReadSeeker) (*GoFS, error) {
	mounted, err := New(device)
	if err != nil {
		return nil, err
	}

	return &GoFS{*mounted}, nil
}

func (g *GoFS) Open(name string) (fs.File, error) {
	file, err := g.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	return goFile{file.(*File)}, nil
}

type goFile struct {
	*File
}

func (g goFile) Stat() (fs.FileInfo, error) {
	return g.File.Stat()
}

func (g goFile) ReadDir(n int) ([]fs.DirEntry, error) {
	entries, err := g.File.Readdir(n)

	goEntries := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		goEntries[i] = goDirEntry{e}
	}

	return goEntries, err
}

type goDirEntry struct {
	fs.FileInfo
}

func (g goDirEntry) Type() fs.FileMode {
	return g.FileInfo.Mode().Type()
}

func (g goDirEntry) Info() (fs.FileInfo, error) {
	return g.FileInfo, nil
}
