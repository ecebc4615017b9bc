// Package simplefs implements the SimpleFS on-disk filesystem: a
// superblock, an inode table, and data/indirect blocks addressed by direct
// pointers plus one level of indirection, layered on top of block.Device.
package simplefs

import (
	bitmap "github.com/boljen/go-bitmap"

	"github.com/Rob-Reutiman/simple-FS/block"
	"github.com/Rob-Reutiman/simple-FS/errors"
)

// FileSystem is a handle that is either detached or mounted onto exactly
// one block.Device. While detached it holds no bitmap and no superblock
// copy; while mounted it owns an in-memory free-block bitmap rebuilt from
// the live inode table.
type FileSystem struct {
	device  *block.Device
	super   SuperBlock
	freemap bitmap.Bitmap
	mounted bool
}

// New returns a detached FileSystem handle.
func New() *FileSystem {
	return &FileSystem{}
}

// Mounted reports whether the handle is currently bound to a device.
func (fs *FileSystem) Mounted() bool {
	return fs.mounted
}

// isFree reports whether block index is currently unallocated.
func (fs *FileSystem) isFree(index uint32) bool {
	return fs.freemap.Get(int(index))
}

// markUsed marks block index as allocated.
func (fs *FileSystem) markUsed(index uint32) {
	fs.freemap.Set(int(index), false)
}

// markFree marks block index as available for allocation again.
func (fs *FileSystem) markFree(index uint32) {
	fs.freemap.Set(int(index), true)
}

// Format writes a fresh superblock to block 0 and zeroes every remaining
// block on device, discarding whatever was there before. Refused if the
// handle calling it is mounted to any device (formatting a mounted
// filesystem is never allowed, even if it targets a different device).
func (fs *FileSystem) Format(device *block.Device) error {
	if fs.mounted {
		return errors.ErrAlreadyMounted.WithMessage(
			"cannot format while this handle is mounted")
	}
	if device == nil {
		return errors.ErrBlockDeviceRequired
	}

	blocks := uint32(device.Count())
	inodeBlocks := ceilDiv10(blocks)

	super := SuperBlock{
		MagicNumber: MagicNumber,
		Blocks:      blocks,
		InodeBlocks: inodeBlocks,
		Inodes:      inodeBlocks * InodesPerBlock,
	}

	if err := device.WriteBlock(0, super.encode()); err != nil {
		return err
	}

	zero := make([]byte, BlockSize)
	for i := uint32(1); i < blocks; i++ {
		if err := device.WriteBlock(uint(i), zero); err != nil {
			return err
		}
	}

	return nil
}

// Mount binds the handle to device and rebuilds the free-block bitmap by
// scanning every inode in the inode table. Refused if the handle is already
// mounted, or if device does not hold a valid, matching superblock.
func (fs *FileSystem) Mount(device *block.Device) error {
	if fs.mounted {
		return errors.ErrAlreadyMounted
	}
	if device == nil {
		return errors.ErrBlockDeviceRequired
	}

	buf := make([]byte, BlockSize)
	if err := device.ReadBlock(0, buf); err != nil {
		return err
	}

	super, err := decodeSuperBlock(buf)
	if err != nil {
		return err
	}

	if err := validateSuperBlock(super, device); err != nil {
		return err
	}

	freemap := bitmap.New(int(super.Blocks))
	for i := 0; i < int(super.Blocks); i++ {
		freemap.Set(i, true)
	}
	for i := uint32(0); i <= super.InodeBlocks; i++ {
		freemap.Set(int(i), false)
	}

	for b := uint32(1); b <= super.InodeBlocks; b++ {
		if err := device.ReadBlock(uint(b), buf); err != nil {
			return err
		}

		for slot := uint32(0); slot < InodesPerBlock; slot++ {
			inode, err := decodeInode(buf[slot*InodeSize : (slot+1)*InodeSize])
			if err != nil {
				return err
			}
			if inode.Valid != 1 {
				continue
			}

			for _, d := range inode.Direct {
				if d != 0 {
					freemap.Set(int(d), false)
				}
			}

			if inode.Indirect != 0 {
				freemap.Set(int(inode.Indirect), false)

				indirectBuf := make([]byte, BlockSize)
				if err := device.ReadBlock(uint(inode.Indirect), indirectBuf); err != nil {
					return err
				}
				ib, err := decodeIndirectBlock(indirectBuf)
				if err != nil {
					return err
				}
				for _, p := range ib {
					if p != 0 {
						freemap.Set(int(p), false)
					}
				}
			}
		}
	}

	fs.device = device
	fs.super = super
	fs.freemap = freemap
	fs.mounted = true
	return nil
}

func validateSuperBlock(super SuperBlock, device *block.Device) error {
	if super.MagicNumber != MagicNumber {
		return errors.ErrCorruptSuperblock.WithMessage("bad magic number")
	}
	if super.Blocks != uint32(device.Count()) {
		return errors.ErrCorruptSuperblock.WithMessage(
			"superblock block count does not match device")
	}

	expectedLow := super.Blocks / 10
	expectedHigh := expectedLow + 1
	if super.InodeBlocks != expectedLow && super.InodeBlocks != expectedHigh {
		return errors.ErrCorruptSuperblock.WithMessage(
			"inode block count is not consistent with total blocks")
	}

	return nil
}

// Unmount releases the bitmap and detaches the device. No flush is
// performed: every write made while mounted is already durable.
func (fs *FileSystem) Unmount() {
	fs.device = nil
	fs.freemap = nil
	fs.mounted = false
	fs.super = SuperBlock{}
}
