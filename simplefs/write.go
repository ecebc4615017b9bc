package simplefs

import (
	stderrors "errors"

	"github.com/Rob-Reutiman/simple-FS/errors"
)

// Write places up to length bytes of buf into inodeNumber's file starting
// at logical offset, allocating data blocks (and the indirect block, if
// needed) on the fly. It returns the number of bytes actually written.
//
// length == 0 returns 0 immediately. offset+length is clamped to
// MaxFileSize. Running out of free blocks partway through is not an error:
// Write returns the number of bytes it managed to store before exhaustion,
// and the inode's size reflects exactly that much.
func (fs *FileSystem) Write(inodeNumber uint32, buf []byte, length, offset uint32) (uint32, error) {
	if !fs.mounted {
		return 0, errors.ErrNotMounted
	}
	if length == 0 {
		return 0, nil
	}

	inode, blockNum, rawBlock, err := fs.readInode(inodeNumber)
	if err != nil {
		return 0, err
	}
	if inode.Valid != 1 {
		return 0, errors.ErrInodeNotFound
	}

	switch {
	case offset >= MaxFileSize:
		length = 0
	case offset+length > MaxFileSize:
		length = MaxFileSize - offset
	}
	if length == 0 {
		return 0, nil
	}
	if uint32(len(buf)) < length {
		return 0, errors.ErrInvalidArgument.WithMessage("source buffer smaller than requested length")
	}

	_, slot := inodeBlockAndSlot(inodeNumber)
	inodeRaw := rawBlock[slot*InodeSize : (slot+1)*InodeSize]

	var written uint32
	pos := offset
	highWater := offset

	for written < length {
		logical := pos / BlockSize
		offsetInBlock := pos % BlockSize

		toCopy := BlockSize - offsetInBlock
		if remaining := length - written; toCopy > remaining {
			toCopy = remaining
		}

		dataBlock, err := fs.ensureDataBlock(&inode, inodeRaw, blockNum, rawBlock, logical)
		if err != nil {
			if stderrors.Is(err, errors.ErrNoSpace) {
				break
			}
			return written, err
		}

		dataBuf := make([]byte, BlockSize)
		if offsetInBlock != 0 || toCopy != BlockSize {
			if err := fs.device.ReadBlock(uint(dataBlock), dataBuf); err != nil {
				return written, err
			}
		}
		copy(dataBuf[offsetInBlock:offsetInBlock+toCopy], buf[written:written+toCopy])
		if err := fs.device.WriteBlock(uint(dataBlock), dataBuf); err != nil {
			return written, err
		}

		written += toCopy
		pos += toCopy
		if pos > highWater {
			highWater = pos
		}
	}

	if highWater > inode.Size {
		inode.Size = highWater
		inode.encode(inodeRaw)
		if err := fs.device.WriteBlock(uint(blockNum), rawBlock); err != nil {
			return written, err
		}
	}

	return written, nil
}

// ensureDataBlock returns the data block index backing logical block
// logical of inode, allocating it (and, if needed, the indirect block)
// if it doesn't exist yet. Every pointer it allocates is persisted to disk
// before ensureDataBlock returns.
func (fs *FileSystem) ensureDataBlock(
	inode *Inode, inodeRaw []byte, inodeBlockNum uint32, rawBlock []byte, logical uint32,
) (uint32, error) {
	if logical < PointersPerInode {
		if inode.Direct[logical] == 0 {
			idx, err := fs.allocateBlock()
			if err != nil {
				return 0, err
			}
			inode.Direct[logical] = idx
			inode.encode(inodeRaw)
			if err := fs.device.WriteBlock(uint(inodeBlockNum), rawBlock); err != nil {
				return 0, err
			}
		}
		return inode.Direct[logical], nil
	}

	if inode.Indirect == 0 {
		idx, err := fs.allocateBlock()
		if err != nil {
			return 0, err
		}

		zero := make([]byte, BlockSize)
		if err := fs.device.WriteBlock(uint(idx), zero); err != nil {
			return 0, err
		}

		inode.Indirect = idx
		inode.encode(inodeRaw)
		if err := fs.device.WriteBlock(uint(inodeBlockNum), rawBlock); err != nil {
			return 0, err
		}
	}

	indirectBuf := make([]byte, BlockSize)
	if err := fs.device.ReadBlock(uint(inode.Indirect), indirectBuf); err != nil {
		return 0, err
	}
	ib, err := decodeIndirectBlock(indirectBuf)
	if err != nil {
		return 0, err
	}

	ptrIndex := logical - PointersPerInode
	if ib[ptrIndex] == 0 {
		idx, err := fs.allocateBlock()
		if err != nil {
			return 0, err
		}
		ib[ptrIndex] = idx
		ib.encode(indirectBuf)
		if err := fs.device.WriteBlock(uint(inode.Indirect), indirectBuf); err != nil {
			return 0, err
		}
	}

	return ib[ptrIndex], nil
}

// allocateBlock returns the lowest-index free block, marking it used.
func (fs *FileSystem) allocateBlock() (uint32, error) {
	for i := uint32(0); i < fs.super.Blocks; i++ {
		if fs.isFree(i) {
			fs.markUsed(i)
			return i, nil
		}
	}
	return 0, errors.ErrNoSpace.WithMessage("no free data block")
}
