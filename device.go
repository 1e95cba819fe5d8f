package fat12

import (
	"fmt"
	"io"

	"github.com/dosimg/fat12/fault"
)

// readBlock reads the physical block at the given index from the device.
// Every call is a fresh positioned read; nothing is cached. It returns
// exactly BlockSize bytes or fails with ErrReadDevice.
func (fs *Fs) readBlock(block uint32) ([]byte, error) {
	if _, err := fs.device.Seek(int64(block)*BlockSize, io.SeekStart); err != nil {
		return nil, fault.Wrap(fmt.Errorf("seek to block %d: %w", block, err), ErrReadDevice)
	}

	buf := make([]byte, BlockSize)
	if _, err := io.ReadFull(fs.device, buf); err != nil {
		return nil, fault.Wrap(fmt.Errorf("read block %d: %w", block, err), ErrReadDevice)
	}

	return buf, nil
}

// loadDataBlock reads the data block with the given logical number. Logical
// data blocks count from dataBlockOrigin, so the physical block is the data
// region origin plus the logical number minus that origin.
func (fs *Fs) loadDataBlock(logical fatEntry) ([]byte, error) {
	return fs.readBlock(fs.info.DataRegionOrigin + uint32(logical) - dataBlockOrigin)
}
