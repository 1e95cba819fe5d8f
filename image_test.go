package fat12

import (
	"bytes"
	"encoding/binary"
)

// imageBuilder assembles a small FAT12 volume in memory so tests do not need
// binary fixtures. The default geometry is one reserved block, two FAT
// copies of one block each and a 32-entry root directory.
type imageBuilder struct {
	bytesPerSector  uint16
	sectorsPerBlock uint8
	reservedBlocks  uint16
	numFats         uint8
	fatBlocks       uint16
	rootDirEntries  uint16
	totalSectors16  uint16
	totalSectors32  uint32

	fat      []byte
	dir      []byte
	data     map[uint16][]byte
	dirCount int
}

func newImageBuilder() *imageBuilder {
	b := &imageBuilder{
		bytesPerSector:  BlockSize,
		sectorsPerBlock: 1,
		reservedBlocks:  1,
		numFats:         2,
		fatBlocks:       1,
		rootDirEntries:  32,
		totalSectors16:  64,
		data:            map[uint16][]byte{},
	}

	b.fat = make([]byte, int(b.fatBlocks)*BlockSize)
	b.dir = make([]byte, int(b.rootDirEntries)*dirEntrySize)

	// Entry 0 carries the media type, entry 1 is reserved.
	b.setFat(0, 0xFF0)
	b.setFat(1, 0xFFF)

	return b
}

// setFat stores a packed 12-bit value at the given FAT index.
func (b *imageBuilder) setFat(index int, value uint16) {
	off := index * 3 / 2
	if index%2 == 0 {
		b.fat[off] = byte(value)
		b.fat[off+1] = b.fat[off+1]&0xF0 | byte(value>>8)&0x0F
	} else {
		b.fat[off] = b.fat[off]&0x0F | byte(value&0x0F)<<4
		b.fat[off+1] = byte(value >> 4)
	}
}

// addEntry appends a 32-byte directory slot and returns its index. Name and
// extension are space padded; bytes beyond the field widths are dropped.
func (b *imageBuilder) addEntry(name, ext string, attr byte, start uint16, size uint32) int {
	off := b.dirCount * dirEntrySize

	copy(b.dir[off:off+8], pad(name, 8))
	copy(b.dir[off+8:off+11], pad(ext, 3))
	b.dir[off+11] = attr
	binary.LittleEndian.PutUint16(b.dir[off+26:off+28], start)
	binary.LittleEndian.PutUint32(b.dir[off+28:off+32], size)

	b.dirCount++
	return b.dirCount - 1
}

// skipEntry leaves one slot empty.
func (b *imageBuilder) skipEntry() {
	b.dirCount++
}

// addFile stores data in consecutive blocks from start, chains them in the
// FAT ending with an end-of-file marker and adds the directory entry with
// declaredSize as the file length.
func (b *imageBuilder) addFile(name, ext string, data []byte, start uint16, declaredSize uint32) int {
	blocks := (len(data) + BlockSize - 1) / BlockSize
	if blocks == 0 {
		blocks = 1
	}

	for i := 0; i < blocks; i++ {
		end := (i + 1) * BlockSize
		if end > len(data) {
			end = len(data)
		}
		b.data[start+uint16(i)] = data[i*BlockSize : end]

		if i < blocks-1 {
			b.setFat(int(start)+i, start+uint16(i)+1)
		} else {
			b.setFat(int(start)+i, 0xFFF)
		}
	}

	return b.addEntry(name, ext, 0, start, declaredSize)
}

func (b *imageBuilder) bootSector() []byte {
	block := make([]byte, BlockSize)

	block[0] = 0xEB
	block[1] = 0x3C
	block[2] = 0x90
	copy(block[3:11], "FATTEST ")
	binary.LittleEndian.PutUint16(block[11:13], b.bytesPerSector)
	block[13] = b.sectorsPerBlock
	binary.LittleEndian.PutUint16(block[14:16], b.reservedBlocks)
	block[16] = b.numFats
	binary.LittleEndian.PutUint16(block[17:19], b.rootDirEntries)
	binary.LittleEndian.PutUint16(block[19:21], b.totalSectors16)
	block[21] = 0xF0
	binary.LittleEndian.PutUint16(block[22:24], b.fatBlocks)
	binary.LittleEndian.PutUint32(block[32:36], b.totalSectors32)
	block[510] = 0x55
	block[511] = 0xAA

	return block
}

func (b *imageBuilder) bytes() []byte {
	total := int(b.totalSectors16)
	if total == 0 {
		total = int(b.totalSectors32)
	}
	img := make([]byte, total*BlockSize)

	copy(img, b.bootSector())

	for c := 0; c < int(b.numFats); c++ {
		copy(img[(int(b.reservedBlocks)+c*int(b.fatBlocks))*BlockSize:], b.fat)
	}

	dirBlock := int(b.reservedBlocks) + int(b.numFats)*int(b.fatBlocks)
	copy(img[dirBlock*BlockSize:], b.dir)

	origin := dirBlock + int(b.rootDirEntries)*dirEntrySize/BlockSize
	for logical, content := range b.data {
		copy(img[(origin+int(logical)-dataBlockOrigin)*BlockSize:], content)
	}

	return img
}

func (b *imageBuilder) reader() *bytes.Reader {
	return bytes.NewReader(b.bytes())
}

func pad(s string, width int) []byte {
	out := bytes.Repeat([]byte{' '}, width)
	copy(out, s)
	return out
}

// repeatPattern produces deterministic, position-dependent file content.
func repeatPattern(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('A' + i%23)
	}
	return out
}
