package simplefs

import "github.com/Rob-Reutiman/simple-FS/errors"

// Read copies up to length bytes of inodeNumber's file, starting at byte
// offset, into buf, and returns the number of bytes actually copied.
//
// length == 0 returns 0 immediately. If offset is at or past the end of the
// file, it returns 0. If offset+length runs past the end of the file, the
// read is clamped to what's left.
func (fs *FileSystem) Read(inodeNumber uint32, buf []byte, length, offset uint32) (uint32, error) {
	if !fs.mounted {
		return 0, errors.ErrNotMounted
	}
	if length == 0 {
		return 0, nil
	}

	inode, _, _, err := fs.readInode(inodeNumber)
	if err != nil {
		return 0, err
	}
	if inode.Valid != 1 {
		return 0, errors.ErrInodeNotFound
	}

	if offset >= inode.Size {
		return 0, nil
	}
	if offset+length > inode.Size {
		length = inode.Size - offset
	}
	if uint32(len(buf)) < length {
		return 0, errors.ErrInvalidArgument.WithMessage("destination buffer smaller than requested length")
	}

	var ib indirectBlock
	haveIndirect := false

	var read uint32
	pos := offset
	for read < length {
		logical := pos / BlockSize
		offsetInBlock := pos % BlockSize

		toCopy := BlockSize - offsetInBlock
		if remaining := length - read; toCopy > remaining {
			toCopy = remaining
		}

		var dataBlock uint32
		switch {
		case logical < PointersPerInode:
			dataBlock = inode.Direct[logical]
		case inode.Indirect == 0:
			dataBlock = 0
		default:
			if !haveIndirect {
				indirectBuf := make([]byte, BlockSize)
				if err := fs.device.ReadBlock(uint(inode.Indirect), indirectBuf); err != nil {
					return read, err
				}
				ib, err = decodeIndirectBlock(indirectBuf)
				if err != nil {
					return read, err
				}
				haveIndirect = true
			}
			dataBlock = ib[logical-PointersPerInode]
		}

		if dataBlock == 0 {
			// Sparse hole left by a write that skipped ahead; zero-fill.
			clear(buf[read : read+toCopy])
		} else {
			dataBuf := make([]byte, BlockSize)
			if err := fs.device.ReadBlock(uint(dataBlock), dataBuf); err != nil {
				return read, err
			}
			copy(buf[read:read+toCopy], dataBuf[offsetInBlock:offsetInBlock+toCopy])
		}

		read += toCopy
		pos += toCopy
	}

	return read, nil
}
