// Package fat12 implements a read-only decoder for FAT12 volumes.
//
// A volume is mounted from any io.ReadSeeker (usually a block device image
// file). Mounting reads the boot sector, the first file allocation table and
// the root directory eagerly; everything after that is served from the
// in-memory snapshot plus positioned reads of the data region. The mounted
// volume satisfies the read side of afero.Fs.
package fat12

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dosimg/fat12/fault"
)

// These errors may occur while mounting a volume.
var (
	ErrReadDevice        = errors.New("could not read block from device")
	ErrUnsupportedLayout = errors.New("unsupported sector layout")
	ErrNotFat12          = errors.New("not a FAT12 filesystem")
	ErrDirectoryTooLarge = errors.New("root directory exceeds maximum size")
)

// ErrReadOnly is returned by every mutating operation of the afero surface.
var ErrReadOnly = errors.New("fat12 volumes are read-only")

// Info describes the geometry of a mounted volume as computed from the boot
// sector. All block numbers are physical unless stated otherwise.
type Info struct {
	// BlockSize is fixed at 512; volumes declaring anything else are
	// rejected at mount.
	BlockSize uint16

	// TotalBlocks is the usable data-block count plus the two reserved
	// low block numbers, so valid data blocks are [2, TotalBlocks).
	TotalBlocks uint32

	FatBlockOffset uint32
	FatBlocks      uint32
	NumFats        uint8

	// FatEntries is the number of addressable FAT entries, clamped to
	// TotalBlocks because the last FAT block may be only partially used.
	FatEntries uint32

	RootDirOffset  uint32
	RootDirEntries uint32

	// DataRegionOrigin is the physical block holding logical data
	// block 2, the first addressable data block.
	DataRegionOrigin uint32
}

// Fs is a handle on a mounted FAT12 volume. It owns the in-memory FAT and
// root-directory snapshots for its lifetime. All state is immutable after
// mount, so concurrent reads are safe as long as the underlying reader is.
type Fs struct {
	device  io.ReadSeeker
	info    Info
	fat     fatTable
	rootDir []DirEntry
}

var _ afero.Fs = (*Fs)(nil)

// New mounts the FAT12 volume read from device. On any failure no handle is
// returned and all partially loaded state is dropped.
func New(device io.ReadSeeker) (*Fs, error) {
	fs := &Fs{device: device}

	if err := fs.initialize(); err != nil {
		fs.fat = fatTable{}
		fs.rootDir = nil
		return nil, err
	}

	log.WithFields(log.Fields{
		"blocks":     fs.info.TotalBlocks,
		"fatEntries": fs.info.FatEntries,
		"rootDir":    fs.info.RootDirEntries,
	}).Debug("mounted fat12 volume")

	return fs, nil
}

// Mount opens the image at path and mounts it. Closing the returned handle
// also closes the file.
func Mount(path string) (*Fs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.From(err)
	}

	fs, err := New(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return fs, nil
}

func (fs *Fs) initialize() error {
	block, err := fs.readBlock(0)
	if err != nil {
		return err
	}

	bs := decodeBootSector(block)
	fs.info, err = bs.geometry()
	if err != nil {
		return err
	}

	if err := fs.loadFat(); err != nil {
		return err
	}

	return fs.loadRootDir()
}

// loadFat reads all blocks of the first FAT copy into one contiguous buffer.
// Additional copies exist only for redundancy and are ignored.
func (fs *Fs) loadFat() error {
	data := make([]byte, 0, fs.info.FatBlocks*uint32(fs.info.BlockSize))

	for i := uint32(0); i < fs.info.FatBlocks; i++ {
		block, err := fs.readBlock(fs.info.FatBlockOffset + i)
		if err != nil {
			return err
		}
		data = append(data, block...)
	}

	fs.fat = fatTable{data: data, entries: fs.info.FatEntries}
	return nil
}

func (fs *Fs) loadRootDir() error {
	blocks := (fs.info.RootDirEntries + entriesPerBlock - 1) / entriesPerBlock

	raw := make([]byte, 0, blocks*uint32(fs.info.BlockSize))
	for i := uint32(0); i < blocks; i++ {
		block, err := fs.readBlock(fs.info.RootDirOffset + i)
		if err != nil {
			return err
		}
		raw = append(raw, block...)
	}

	fs.rootDir = make([]DirEntry, fs.info.RootDirEntries)
	for i := range fs.rootDir {
		fs.rootDir[i] = decodeDirEntry(raw[i*dirEntrySize:])
	}

	return nil
}

// Info returns the volume geometry.
func (fs *Fs) Info() Info {
	return fs.info
}

// Label returns the volume label from the root directory, or "" if the
// volume carries none.
func (fs *Fs) Label() string {
	for _, e := range fs.rootDir {
		if e.Class() == EntryVolumeLabel {
			return trimPadding(e.Name[:]) + trimPadding(e.Ext[:])
		}
	}
	return ""
}

// Entry returns the root directory entry at index.
func (fs *Fs) Entry(index int) (DirEntry, error) {
	if index < 0 || index >= len(fs.rootDir) {
		return DirEntry{}, fault.Wrap(fmt.Errorf("directory index %d, have %d entries", index, len(fs.rootDir)), ErrNotFound)
	}
	return fs.rootDir[index], nil
}

// Close releases the in-memory snapshots and closes the underlying device if
// it is an io.Closer. The handle must not be used afterwards.
func (fs *Fs) Close() error {
	fs.fat = fatTable{}
	fs.rootDir = nil

	var err error
	if c, ok := fs.device.(io.Closer); ok {
		err = c.Close()
	}
	fs.device = nil

	log.Debug("unmounted fat12 volume")
	return fault.From(err)
}

func (fs *Fs) readRoot() ([]DirEntry, error) {
	files := make([]DirEntry, 0, len(fs.rootDir))
	for _, e := range fs.rootDir {
		if e.Class() == EntryFile {
			files = append(files, e)
		}
	}
	return files, nil
}

// Name returns the name of this filesystem for the afero surface.
func (fs *Fs) Name() string {
	return "fat12"
}

// Open opens the named file, or the root directory for "", "/" or ".".
func (fs *Fs) Open(name string) (afero.File, error) {
	if name == "" || name == "/" || name == "." {
		return &File{fs: fs, path: "", isDirectory: true, stat: rootDirInfo{}}, nil
	}

	index, err := fs.Search(trimPath(name))
	if err != nil {
		return nil, err
	}

	entry := fs.rootDir[index]
	return &File{
		fs:         fs,
		path:       entry.DisplayName(),
		isReadOnly: entry.Attribute&attrReadOnly != 0,
		isHidden:   entry.Attribute&attrHidden != 0,
		isSystem:   entry.Attribute&attrSystem != 0,
		startBlock: fatEntry(entry.StartBlock),
		stat:       entry.FileInfo(),
	}, nil
}

// OpenFile supports read-only flags; any write flag fails with ErrReadOnly.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, fault.Wrap(syscall.EPERM, ErrReadOnly)
	}
	return fs.Open(name)
}

// Stat returns the FileInfo of the named file.
func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	if name == "" || name == "/" || name == "." {
		return rootDirInfo{}, nil
	}

	index, err := fs.Search(trimPath(name))
	if err != nil {
		return nil, err
	}

	return fs.rootDir[index].FileInfo(), nil
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, fault.From(ErrReadOnly)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) Remove(name string) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) RemoveAll(path string) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return fault.From(ErrReadOnly)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return fault.From(ErrReadOnly)
}

func trimPath(name string) string {
	for len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return name
}
