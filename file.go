package fat12

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/dosimg/fat12/fault"
)

// These errors may occur while processing a file.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)

// volume provides the operations File needs from a mounted filesystem.
// It mainly exists to be able to mock the Fs in tests.
// Generated mock using mockgen:
//  mockgen -source=file.go -destination=volume_mock.go -package fat12
type volume interface {
	readFileAt(start fatEntry, fileSize, offset, length int64) ([]byte, error)
	readRoot() ([]DirEntry, error)
}

// File is an open file (or the root directory) of a mounted volume. It
// implements the read side of afero.File; all write operations fail with
// ErrReadOnly.
type File struct {
	fs   volume
	path string

	isDirectory bool
	isReadOnly  bool
	isHidden    bool
	isSystem    bool

	startBlock fatEntry
	stat       os.FileInfo
	offset     int64
}

var _ afero.File = (*File)(nil)

// Close drops the reference to the filesystem. The File must not be used
// afterwards.
func (f *File) Close() error {
	*f = File{}
	return nil
}

func (f *File) Name() string {
	return f.stat.Name()
}

func (f *File) Read(p []byte) (n int, err error) {
	if p == nil {
		return 0, nil
	}

	if f.offset >= f.stat.Size() {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.startBlock, f.stat.Size(), f.offset, int64(len(p)))
	if data != nil {
		copy(p, data)
	}

	// Advance the cursor even on error so partial reads are not repeated.
	_, seekErr := f.Seek(int64(len(data)), io.SeekCurrent)

	if err != nil {
		return len(data), fault.Wrap(err, ErrReadFile)
	}
	if seekErr != nil {
		return len(data), fault.Wrap(seekErr, ErrReadFile)
	}

	return len(data), nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if p == nil {
		return 0, nil
	}

	if off >= f.stat.Size() {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.startBlock, f.stat.Size(), off, int64(len(p)))
	if data != nil {
		copy(p, data)
	}

	if err != nil {
		return len(data), fault.Wrap(err, ErrReadFile)
	}
	if len(data) < len(p) {
		return len(data), fault.Wrap(io.ErrUnexpectedEOF, ErrReadFile)
	}

	return len(data), nil
}

// Seek moves the read cursor. It affects Read and Readdir but not ReadAt.
// An invalid whence fails with syscall.EINVAL, an offset outside the file
// with afero.ErrOutOfRange.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, fault.Wrap(fmt.Errorf("%w: whence %v", syscall.EINVAL, whence), ErrSeekFile)
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, fault.Wrap(fmt.Errorf("offset %v", offset), afero.ErrOutOfRange)
	}

	f.offset = offset
	return offset, nil
}

// Readdir lists the files of the root directory, which is the only
// directory a FAT12 volume has. It fails with syscall.ENOTDIR on a file.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if !f.isDirectory {
		return nil, fault.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	content, err := f.fs.readRoot()
	if err != nil {
		return nil, fault.Wrap(err, ErrReadDir)
	}

	if f.offset > int64(len(content)) {
		return nil, io.EOF
	}
	content = content[f.offset:]

	if count > 0 && count < len(content) {
		content = content[:count]
	} else if count > 0 {
		err = io.EOF
	}
	f.offset += int64(len(content))

	result := make([]os.FileInfo, len(content))
	for i := range content {
		result[i] = content[i].FileInfo()
	}

	return result, err
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil && err != io.EOF {
		return nil, err
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, err
}

func (f *File) Stat() (os.FileInfo, error) {
	return f.stat, nil
}

func (f *File) Sync() error {
	return nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, fault.From(ErrReadOnly)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, fault.From(ErrReadOnly)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return 0, fault.From(ErrReadOnly)
}

func (f *File) Truncate(size int64) error {
	return fault.From(ErrReadOnly)
}
