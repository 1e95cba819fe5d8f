package fat12

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dosimg/fat12/fault"
)

// ErrFatIndexRange is returned for FAT lookups outside [0, FatEntries).
var ErrFatIndexRange = errors.New("FAT index out of range")

// fatEntry is one 12-bit file allocation table value. Besides their use as
// table entries, values of this type also serve as data-block numbers, since
// a chain entry is exactly the number of the next block.
type fatEntry uint16

const (
	fatFree fatEntry = 0

	// End of file is a value range, not a single sentinel. Any entry in
	// [fatEofFirst, fatEofLast] terminates a chain.
	fatEofFirst fatEntry = 0x0FF8
	fatEofLast  fatEntry = 0x0FFF
)

func (e fatEntry) Value() uint16 {
	return uint16(e)
}

// IsFree reports whether the entry marks an unallocated block.
func (e fatEntry) IsFree() bool {
	return e == fatFree
}

// IsEof reports whether the entry lies in the end-of-file range.
func (e fatEntry) IsEof() bool {
	return e >= fatEofFirst && e <= fatEofLast
}

// IsChain reports whether the entry points at a next block.
func (e fatEntry) IsChain() bool {
	return !e.IsFree() && !e.IsEof()
}

// fatTable is the first FAT copy held in memory as the raw packed bytes.
// Entries are decoded lazily per lookup and never mutated.
type fatTable struct {
	data    []byte
	entries uint32
}

// entry decodes the 12-bit value at index. Two entries share each 3-byte
// group: the even entry occupies the low 12 bits of the little-endian word
// at byte offset index*3/2, the odd entry the high 12 bits of the word 4
// bits further in. Reading the 16-bit word at index*3/2 and shifting by 4
// for odd indices recovers either one.
func (t fatTable) entry(index uint32) (fatEntry, error) {
	if index >= t.entries {
		return 0, fault.Wrap(fmt.Errorf("index %d, table has %d entries", index, t.entries), ErrFatIndexRange)
	}

	offset := index * 3 / 2
	value := binary.LittleEndian.Uint16(t.data[offset : offset+2])
	if index&1 == 1 {
		value >>= 4
	}

	return fatEntry(value & 0x0FFF), nil
}

// DumpFat writes a human-readable rendering of the FAT to w: first the
// allocated entries with chain targets, then the full table in hex, sixteen
// entries per row.
func (fs *Fs) DumpFat(w io.Writer) error {
	fmt.Fprintf(w, "FAT table, allocated entries:\n")

	printed := 0
	for i := uint32(0); i < fs.fat.entries; i++ {
		entry, err := fs.fat.entry(i)
		if err != nil {
			return err
		}
		if entry.IsFree() {
			continue
		}

		if entry.IsEof() {
			fmt.Fprintf(w, "|%04d: EOF|", i)
		} else {
			fmt.Fprintf(w, "|%04d:%4d|", i, entry.Value())
		}

		printed++
		if printed%8 == 0 {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(w, "\n\nFAT table, raw:\n")
	for i := uint32(0); i < fs.fat.entries; i++ {
		if i%16 == 0 {
			fmt.Fprintf(w, "%04d :", i)
		}

		entry, err := fs.fat.entry(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, " %03x", entry.Value())

		if i%16 == 15 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)

	return nil
}
