package fat12

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dosimg/fat12/fault"
)

// These errors may occur while looking up a file by name.
var (
	ErrNotFound        = errors.New("file not found in root directory")
	ErrInvalidFilename = errors.New("filename must be of the form NAME.EXT")
)

// Directory entry attribute bits.
const (
	attrReadOnly = 0x01
	attrHidden   = 0x02
	attrSystem   = 0x04
	attrVolume   = 0x08
	attrDir      = 0x10
	attrArchive  = 0x20
)

// Special first-name-byte markers.
const (
	name0Empty   = 0x00
	name0Deleted = 0xE5
)

// EntryClass is the derived status of a directory entry.
type EntryClass int

const (
	EntryFile EntryClass = iota
	EntryVolumeLabel
	EntryDeleted
	EntryEmpty
)

func (c EntryClass) String() string {
	switch c {
	case EntryFile:
		return "FILE"
	case EntryVolumeLabel:
		return "VOL"
	case EntryDeleted:
		return "DEL"
	case EntryEmpty:
		return "EMPTY"
	}
	return "?"
}

// DirEntry is one 32-byte slot of the root directory.
type DirEntry struct {
	Name      [8]byte
	Ext       [3]byte
	Attribute byte

	WriteTime uint16
	WriteDate uint16

	StartBlock uint16
	FileSize   uint32
}

func decodeDirEntry(raw []byte) DirEntry {
	var e DirEntry

	copy(e.Name[:], raw[0:8])
	copy(e.Ext[:], raw[8:11])
	e.Attribute = raw[11]
	e.WriteTime = binary.LittleEndian.Uint16(raw[22:24])
	e.WriteDate = binary.LittleEndian.Uint16(raw[24:26])
	e.StartBlock = binary.LittleEndian.Uint16(raw[26:28])
	e.FileSize = binary.LittleEndian.Uint32(raw[28:32])

	return e
}

// Class derives the entry status from the first name byte and the attribute
// byte. Long-name entries carry the volume bit and classify as volume
// labels, which keeps them out of every file lookup.
func (e DirEntry) Class() EntryClass {
	switch {
	case e.Name[0] == name0Empty:
		return EntryEmpty
	case e.Name[0] == name0Deleted:
		return EntryDeleted
	case e.Attribute&attrVolume != 0:
		return EntryVolumeLabel
	}
	return EntryFile
}

// DisplayName renders the entry as NAME.EXT with the space padding removed.
func (e DirEntry) DisplayName() string {
	name := trimPadding(e.Name[:])
	ext := trimPadding(e.Ext[:])

	if ext == "" {
		return name
	}
	return name + "." + ext
}

func trimPadding(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

// Search finds filename in the root directory and returns its entry index.
// Lookup follows DOS semantics: the name portion before the first "." is
// compared case-insensitively, and only entries classified FILE are
// eligible. Empty slots are skipped rather than treated as the end of the
// directory; some DOS implementations stop at the first one, but a defensive
// reader keeps scanning. The lowest matching index wins.
func (fs *Fs) Search(filename string) (int, error) {
	name, _, err := splitFilename(filename)
	if err != nil {
		return 0, err
	}

	for i, e := range fs.rootDir {
		if e.Class() != EntryFile {
			continue
		}
		if matchesName(e, name) {
			return i, nil
		}
	}

	return 0, fault.Wrap(fmt.Errorf("no entry matches %q", filename), ErrNotFound)
}

// splitFilename splits on the first "." into an uppercased name of at most 8
// characters and an extension of at most 3.
func splitFilename(filename string) (name, ext string, err error) {
	dot := strings.IndexByte(filename, '.')
	if dot < 0 {
		return "", "", fault.Wrap(fmt.Errorf("%q has no extension separator", filename), ErrInvalidFilename)
	}

	name = strings.ToUpper(filename[:dot])
	ext = strings.ToUpper(filename[dot+1:])

	if len(name) > 8 {
		name = name[:8]
	}
	if len(ext) > 3 {
		ext = ext[:3]
	}

	return name, ext, nil
}

// matchesName compares name byte-for-byte against the stored name prefix.
// The extension does not take part in the comparison; stored names are space
// padded, so a full 8-character name matches exactly.
func matchesName(e DirEntry, name string) bool {
	for i := 0; i < len(name); i++ {
		if e.Name[i] != name[i] {
			return false
		}
	}
	return true
}

// DumpDirectory writes every non-empty root directory entry to w in index
// order with its classification, name, size and start block.
func (fs *Fs) DumpDirectory(w io.Writer) error {
	fmt.Fprintln(w, "Root directory:")

	for i, e := range fs.rootDir {
		if e.Class() == EntryEmpty {
			continue
		}

		_, err := fmt.Fprintf(w, "%4d : %-4s [%-8s.%-3s] (%d bytes, start %d)\n",
			i, e.Class(), string(e.Name[:]), string(e.Ext[:]), e.FileSize, e.StartBlock)
		if err != nil {
			return fault.From(err)
		}
	}

	return nil
}
