package fat12

import (
	"github.com/dosimg/fat12/fault"
)

// Integrity is the result of a chain-integrity check.
type Integrity int

const (
	// IntegrityOk means the chain covers exactly the declared file length
	// and terminates with an end-of-file marker.
	IntegrityOk Integrity = iota

	// IntegrityCorrupt means the chain ends before the declared length,
	// or its final entry is not an end-of-file marker.
	IntegrityCorrupt

	// IntegrityNotAFile means the entry is not classified as a file.
	IntegrityNotAFile
)

func (i Integrity) String() string {
	switch i {
	case IntegrityOk:
		return "OK"
	case IntegrityCorrupt:
		return "CORRUPT"
	case IntegrityNotAFile:
		return "NOT A FILE"
	}
	return "?"
}

// VerifyIntegrity walks the FAT chain of the root directory entry at index
// and checks it against the declared file length: no block before the last
// may carry an end-of-file marker, and the entry at the final block must.
func (fs *Fs) VerifyIntegrity(index int) Integrity {
	if index < 0 || index >= len(fs.rootDir) {
		return IntegrityNotAFile
	}

	entry := fs.rootDir[index]
	if entry.Class() != EntryFile {
		return IntegrityNotAFile
	}

	current := fatEntry(entry.StartBlock)
	remaining := int64(entry.FileSize)

	// remaining strictly decreases, but a malformed image must not walk
	// further than the declared length allows.
	for steps := int64(entry.FileSize)/BlockSize + 1; remaining > 0 && steps > 0; steps-- {
		remaining -= BlockSize

		if remaining > 0 {
			if current.IsEof() {
				// Chain shorter than the declared length.
				return IntegrityCorrupt
			}

			next, err := fs.fat.entry(uint32(current))
			if err != nil {
				return IntegrityCorrupt
			}
			current = next
		}
	}

	final, err := fs.fat.entry(uint32(current))
	if err != nil {
		return IntegrityCorrupt
	}
	if final&fatEofFirst == fatEofFirst {
		return IntegrityOk
	}

	return IntegrityCorrupt
}

// ReadRange reads up to length bytes of the named file starting at offset.
// A chain that ends before the requested range is exhausted yields the bytes
// gathered up to that point without an error, so callers always get whatever
// data the volume actually holds.
func (fs *Fs) ReadRange(filename string, offset, length int64) ([]byte, error) {
	index, err := fs.Search(filename)
	if err != nil {
		return nil, err
	}

	entry := fs.rootDir[index]
	return fs.readFileAt(fatEntry(entry.StartBlock), int64(entry.FileSize), offset, length)
}

// readFileAt walks the FAT chain from start and copies the slice of the file
// overlapping [offset, offset+length). Blocks are read in full and trimmed
// to the overlap; the walk stops at an end-of-file marker or an unresolvable
// chain entry, returning the partial result.
func (fs *Fs) readFileAt(start fatEntry, fileSize, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset >= fileSize {
		return nil, nil
	}
	if want := fileSize - offset; length > want {
		length = want
	}

	out := make([]byte, 0, length)
	current := start
	remaining := fileSize
	cursor := int64(0)

	for steps := fileSize/BlockSize + 1; remaining > 0 && steps > 0; steps-- {
		if current.IsEof() {
			// The declared length outruns the chain; hand back
			// what the chain covered.
			return out, nil
		}

		bytesThisBlock := remaining
		if bytesThisBlock > BlockSize {
			bytesThisBlock = BlockSize
		}

		// Copy only the part of this block inside the requested range.
		if cursor+bytesThisBlock > offset && cursor < offset+length {
			block, err := fs.loadDataBlock(current)
			if err != nil {
				return out, fault.Wrap(err, ErrReadFile)
			}

			lo := int64(0)
			if offset > cursor {
				lo = offset - cursor
			}
			hi := bytesThisBlock
			if end := offset + length - cursor; end < hi {
				hi = end
			}

			out = append(out, block[lo:hi]...)
		}

		remaining -= BlockSize
		cursor += BlockSize

		if remaining > 0 {
			next, err := fs.fat.entry(uint32(current))
			if err != nil {
				return out, nil
			}
			current = next
		}
	}

	return out, nil
}
