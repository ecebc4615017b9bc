package simplefs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/Rob-Reutiman/simple-FS/errors"
)

// Check walks the mounted filesystem's bitmap and inode table and verifies
// the on-disk invariants from simplefs' data-model documentation: the
// superblock and inode-table blocks stay marked used, every reachable
// pointer is marked used and falls inside the data region, and every valid
// inode's size stays within the maximum addressable size. It is read-only:
// it never repairs anything, only reports.
//
// Every violation found is accumulated rather than stopping at the first
// one; Check returns nil if the filesystem is fully consistent.
func (fs *FileSystem) Check() error {
	if !fs.mounted {
		return errors.ErrNotMounted
	}

	var result *multierror.Error

	for i := uint32(0); i <= fs.super.InodeBlocks; i++ {
		if fs.isFree(i) {
			result = multierror.Append(result, fmt.Errorf(
				"reserved block %d (superblock/inode table) is marked free", i))
		}
	}

	buf := make([]byte, BlockSize)
	seen := make(map[uint32]bool)

	for b := uint32(1); b <= fs.super.InodeBlocks; b++ {
		if err := fs.device.ReadBlock(uint(b), buf); err != nil {
			result = multierror.Append(result, err)
			continue
		}

		for slot := uint32(0); slot < InodesPerBlock; slot++ {
			inode, err := decodeInode(buf[slot*InodeSize : (slot+1)*InodeSize])
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			if inode.Valid != 1 {
				continue
			}

			inodeNumber := (b-1)*InodesPerBlock + slot

			if inode.Size > MaxFileSize {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: size %d exceeds maximum addressable size %d",
					inodeNumber, inode.Size, MaxFileSize))
			}

			for _, ptr := range inode.Direct {
				fs.checkPointer(inodeNumber, ptr, seen, &result)
			}

			if inode.Indirect != 0 {
				fs.checkPointer(inodeNumber, inode.Indirect, seen, &result)

				indirectBuf := make([]byte, BlockSize)
				if err := fs.device.ReadBlock(uint(inode.Indirect), indirectBuf); err != nil {
					result = multierror.Append(result, err)
					continue
				}
				ib, err := decodeIndirectBlock(indirectBuf)
				if err != nil {
					result = multierror.Append(result, err)
					continue
				}
				for _, ptr := range ib {
					fs.checkPointer(inodeNumber, ptr, seen, &result)
				}
			}
		}
	}

	if result == nil {
		return nil
	}
	return result.ErrorOrNil()
}

func (fs *FileSystem) checkPointer(
	inodeNumber, ptr uint32, seen map[uint32]bool, result **multierror.Error,
) {
	if ptr == 0 {
		return
	}

	if ptr <= fs.super.InodeBlocks || ptr >= fs.super.Blocks {
		*result = multierror.Append(*result, fmt.Errorf(
			"inode %d: pointer %d falls outside the data region", inodeNumber, ptr))
		return
	}

	if fs.isFree(ptr) {
		*result = multierror.Append(*result, fmt.Errorf(
			"inode %d: block %d is reachable but marked free", inodeNumber, ptr))
	}

	if seen[ptr] {
		*result = multierror.Append(*result, fmt.Errorf(
			"block %d is referenced by more than one inode (last seen from inode %d)",
			ptr, inodeNumber))
	}
	seen[ptr] = true
}
