package simplefs

import (
	"github.com/Rob-Reutiman/simple-FS/errors"
)

// Create allocates the first free inode slot, zeroes it, marks it valid,
// and returns its global inode number. Returns ErrNoSpace if every inode
// slot is already in use.
func (fs *FileSystem) Create() (uint32, error) {
	if !fs.mounted {
		return 0, errors.ErrNotMounted
	}

	buf := make([]byte, BlockSize)
	for b := uint32(1); b <= fs.super.InodeBlocks; b++ {
		if err := fs.device.ReadBlock(uint(b), buf); err != nil {
			return 0, err
		}

		for slot := uint32(0); slot < InodesPerBlock; slot++ {
			raw := buf[slot*InodeSize : (slot+1)*InodeSize]
			inode, err := decodeInode(raw)
			if err != nil {
				return 0, err
			}
			if inode.Valid != 0 {
				continue
			}

			fresh := Inode{Valid: 1}
			fresh.encode(raw)
			if err := fs.device.WriteBlock(uint(b), buf); err != nil {
				return 0, err
			}

			return (b-1)*InodesPerBlock + slot, nil
		}
	}

	return 0, errors.ErrNoSpace.WithMessage("no free inode")
}

// readInode loads the inode numbered inodeNumber, returning
// ErrInodeNotFound if the number is out of range.
func (fs *FileSystem) readInode(inodeNumber uint32) (Inode, uint32, []byte, error) {
	if inodeNumber >= fs.super.Inodes {
		return Inode{}, 0, nil, errors.ErrInodeNotFound
	}

	blockNum, slot := inodeBlockAndSlot(inodeNumber)
	buf := make([]byte, BlockSize)
	if err := fs.device.ReadBlock(uint(blockNum), buf); err != nil {
		return Inode{}, 0, nil, err
	}

	inode, err := decodeInode(buf[slot*InodeSize : (slot+1)*InodeSize])
	if err != nil {
		return Inode{}, 0, nil, err
	}

	return inode, blockNum, buf, nil
}

// Remove frees every data and indirect block reachable from inodeNumber and
// marks the inode itself free. Returns ErrInodeNotFound if the inode
// number is out of range or not currently valid.
func (fs *FileSystem) Remove(inodeNumber uint32) error {
	if !fs.mounted {
		return errors.ErrNotMounted
	}

	inode, blockNum, buf, err := fs.readInode(inodeNumber)
	if err != nil {
		return err
	}
	if inode.Valid != 1 {
		return errors.ErrInodeNotFound
	}

	for _, d := range inode.Direct {
		if d != 0 {
			fs.markFree(d)
		}
	}

	if inode.Indirect != 0 {
		indirectBuf := make([]byte, BlockSize)
		if err := fs.device.ReadBlock(uint(inode.Indirect), indirectBuf); err != nil {
			return err
		}
		ib, err := decodeIndirectBlock(indirectBuf)
		if err != nil {
			return err
		}
		for _, p := range ib {
			if p != 0 {
				fs.markFree(p)
			}
		}
		fs.markFree(inode.Indirect)
	}

	_, slot := inodeBlockAndSlot(inodeNumber)
	Inode{}.encode(buf[slot*InodeSize : (slot+1)*InodeSize])
	return fs.device.WriteBlock(uint(blockNum), buf)
}

// Stat returns the size, in bytes, of inodeNumber's file, or
// ErrInodeNotFound if it isn't a currently valid inode.
func (fs *FileSystem) Stat(inodeNumber uint32) (uint32, error) {
	if !fs.mounted {
		return 0, errors.ErrNotMounted
	}

	inode, _, _, err := fs.readInode(inodeNumber)
	if err != nil {
		return 0, err
	}
	if inode.Valid != 1 {
		return 0, errors.ErrInodeNotFound
	}

	return inode.Size, nil
}
