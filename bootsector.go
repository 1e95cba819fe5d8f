package fat12

import (
	"encoding/binary"
	"fmt"

	"github.com/dosimg/fat12/fault"
)

const (
	// BlockSize is the only sector size this decoder supports. Nearly all
	// FAT12 media uses it, and assuming it keeps the offset arithmetic
	// one-to-one between sectors and blocks.
	BlockSize = 512

	// fat12MaxDataBlocks is the largest usable data-block count a FAT12
	// volume can have. Anything above it is FAT16 or FAT32.
	fat12MaxDataBlocks = 4086

	// dataBlockOrigin is the logical number of the first data block. DOS
	// reserves values 0 and 1, so data blocks count from 2.
	dataBlockOrigin = 2

	dirEntrySize    = 32
	entriesPerBlock = BlockSize / dirEntrySize

	// maxRootDirEntries caps the root directory at 25 blocks of entries.
	maxRootDirEntries = 25 * BlockSize / dirEntrySize
)

// bootSector holds the raw fields of the DOS 5 boot block that matter for a
// read-only mount. Decoding is field-by-field little-endian rather than a
// struct overlay, so the in-memory layout never matters.
type bootSector struct {
	oemName         [8]byte
	bytesPerSector  uint16
	sectorsPerBlock uint8
	reservedSectors uint16
	numFats         uint8
	rootDirEntries  uint16
	totalSectors16  uint16
	media           byte
	sectorsPerFat   uint16
	hiddenSectors   uint32
	totalSectors32  uint32
}

// decodeBootSector decodes the first block of the volume. The block must be
// at least BlockSize bytes; validation happens in geometry.
func decodeBootSector(block []byte) bootSector {
	var bs bootSector

	copy(bs.oemName[:], block[3:11])
	bs.bytesPerSector = binary.LittleEndian.Uint16(block[11:13])
	bs.sectorsPerBlock = block[13]
	bs.reservedSectors = binary.LittleEndian.Uint16(block[14:16])
	bs.numFats = block[16]
	bs.rootDirEntries = binary.LittleEndian.Uint16(block[17:19])
	bs.totalSectors16 = binary.LittleEndian.Uint16(block[19:21])
	bs.media = block[21]
	bs.sectorsPerFat = binary.LittleEndian.Uint16(block[22:24])
	bs.hiddenSectors = binary.LittleEndian.Uint32(block[28:32])
	bs.totalSectors32 = binary.LittleEndian.Uint32(block[32:36])

	return bs
}

// geometry validates the boot sector and computes the volume geometry.
func (bs bootSector) geometry() (Info, error) {
	info := Info{BlockSize: BlockSize}

	// All later arithmetic assumes one sector per block of exactly
	// BlockSize bytes.
	if bs.bytesPerSector != BlockSize || bs.sectorsPerBlock != 1 {
		return info, fault.Wrap(
			fmt.Errorf("%d bytes/sector, %d sectors/block", bs.bytesPerSector, bs.sectorsPerBlock),
			ErrUnsupportedLayout)
	}

	info.FatBlockOffset = uint32(bs.reservedSectors)
	info.FatBlocks = uint32(bs.sectorsPerFat)
	info.NumFats = bs.numFats

	// Every 3 FAT bytes hold 2 entries.
	info.FatEntries = info.FatBlocks * BlockSize * 2 / 3

	info.RootDirOffset = info.FatBlockOffset + uint32(bs.numFats)*info.FatBlocks

	if bs.rootDirEntries > maxRootDirEntries {
		return info, fault.Wrap(
			fmt.Errorf("%d root directory entries, max %d", bs.rootDirEntries, maxRootDirEntries),
			ErrDirectoryTooLarge)
	}
	info.RootDirEntries = uint32(bs.rootDirEntries)

	info.DataRegionOrigin = info.RootDirOffset + info.RootDirEntries*dirEntrySize/BlockSize

	// DOS 5 moved large sector counts to the 32-bit field.
	totalSectors := uint32(bs.totalSectors16)
	if totalSectors == 0 {
		totalSectors = bs.totalSectors32
	}

	dataBlocks := int64(totalSectors) - int64(info.DataRegionOrigin)
	if dataBlocks <= 0 || dataBlocks > fat12MaxDataBlocks {
		return info, fault.Wrap(
			fmt.Errorf("%d data blocks, FAT12 allows (0, %d]", dataBlocks, fat12MaxDataBlocks),
			ErrNotFat12)
	}

	// Data blocks count from dataBlockOrigin, so the highest valid block
	// number is dataBlocks + 1.
	info.TotalBlocks = uint32(dataBlocks) + dataBlockOrigin

	// The last FAT block may be only partially used; entries past the
	// data region are not addressable.
	if info.TotalBlocks < info.FatEntries {
		info.FatEntries = info.TotalBlocks
	}

	return info, nil
}
