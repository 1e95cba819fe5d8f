package fat12

import (
	"os"
	"time"
)

// FileInfo returns an os.FileInfo view of the directory entry.
func (e DirEntry) FileInfo() os.FileInfo {
	return entryFileInfo{e}
}

type entryFileInfo struct {
	entry DirEntry
}

func (e entryFileInfo) Name() string {
	return e.entry.DisplayName()
}

func (e entryFileInfo) Size() int64 {
	return int64(e.entry.FileSize)
}

func (e entryFileInfo) Mode() os.FileMode {
	var mode os.FileMode = 0444
	if e.IsDir() {
		mode |= os.ModeDir
	}
	return mode
}

func (e entryFileInfo) ModTime() time.Time {
	writeDate := ParseDate(e.entry.WriteDate)
	writeTime := ParseTime(e.entry.WriteTime)

	// A zero date means the stamp was invalid or never set. The time
	// cannot be checked the same way because midnight is a valid stamp.
	if writeDate.IsZero() {
		return time.Time{}
	}

	return time.Date(writeDate.Year(), writeDate.Month(), writeDate.Day(),
		writeTime.Hour(), writeTime.Minute(), writeTime.Second(), 0, time.UTC)
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.Attribute&attrDir != 0
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}

// rootDirInfo is the synthetic FileInfo of the root directory, which has no
// directory entry of its own.
type rootDirInfo struct{}

func (rootDirInfo) Name() string       { return "/" }
func (rootDirInfo) Size() int64        { return 0 }
func (rootDirInfo) Mode() os.FileMode  { return os.ModeDir | 0555 }
func (rootDirInfo) ModTime() time.Time { return time.Time{} }
func (rootDirInfo) IsDir() bool        { return true }
func (rootDirInfo) Sys() interface{}   { return nil }
