package simplefs

import (
	"bytes"
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/Rob-Reutiman/simple-FS/block"
	"github.com/Rob-Reutiman/simple-FS/errors"
)

// BlockSize is the size, in bytes, of every block simplefs reads or writes.
const BlockSize = block.BlockSize

// MagicNumber identifies a block 0 as a valid simplefs superblock.
const MagicNumber uint32 = 0xf0f03410

// PointersPerInode is the number of direct data-block pointers an inode
// carries.
const PointersPerInode = 5

// PointersPerBlock is the number of 32-bit block pointers that fit in one
// indirect block.
const PointersPerBlock = BlockSize / 4

// InodeSize is the packed, on-disk size of one Inode, in bytes.
const InodeSize = 4 + 4 + PointersPerInode*4 + 4 // valid, size, direct[5], indirect

// InodesPerBlock is the number of inodes packed into one inode-table block.
const InodesPerBlock = BlockSize / InodeSize

// MaxFileSize is the largest file size, in bytes, addressable through an
// inode's direct and (single level of) indirect pointers.
const MaxFileSize = (PointersPerInode + PointersPerBlock) * BlockSize

// SuperBlock identifies and sizes a mounted filesystem. It occupies block 0;
// every byte beyond the four fields below is zero.
type SuperBlock struct {
	MagicNumber uint32
	Blocks      uint32
	InodeBlocks uint32
	Inodes      uint32
}

func (s SuperBlock) encode() []byte {
	buf := make([]byte, BlockSize)
	writer := bytewriter.New(buf)
	binary.Write(writer, binary.LittleEndian, &s)
	return buf
}

func decodeSuperBlock(buf []byte) (SuperBlock, error) {
	var s SuperBlock
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &s); err != nil {
		return SuperBlock{}, errors.ErrIO.Wrap(err)
	}
	return s, nil
}

// Inode describes one file: its validity, size, and up to
// PointersPerInode direct block pointers plus one indirect pointer.
type Inode struct {
	Valid    uint32
	Size     uint32
	Direct   [PointersPerInode]uint32
	Indirect uint32
}

func (i Inode) encode(buf []byte) {
	writer := bytewriter.New(buf)
	binary.Write(writer, binary.LittleEndian, &i)
}

func decodeInode(buf []byte) (Inode, error) {
	var i Inode
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &i); err != nil {
		return Inode{}, errors.ErrIO.Wrap(err)
	}
	return i, nil
}

// indirectBlock is the 1024 32-bit data-block pointers addressed by an
// inode's Indirect field; a zero entry is an unused slot.
type indirectBlock [PointersPerBlock]uint32

func (ib indirectBlock) encode(buf []byte) {
	writer := bytewriter.New(buf)
	binary.Write(writer, binary.LittleEndian, &ib)
}

func decodeIndirectBlock(buf []byte) (indirectBlock, error) {
	var ib indirectBlock
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &ib); err != nil {
		return indirectBlock{}, errors.ErrIO.Wrap(err)
	}
	return ib, nil
}

// inodeBlockAndSlot splits a global inode number into the inode-table block
// that holds it and the slot within that block.
func inodeBlockAndSlot(inodeNumber uint32) (block uint32, slot uint32) {
	return 1 + inodeNumber/InodesPerBlock, inodeNumber % InodesPerBlock
}

// ceilDiv10 computes ceil(n/10) without floating point, per spec.md's
// inode_blocks = ceil(blocks / 10).
func ceilDiv10(n uint32) uint32 {
	if n%10 == 0 {
		return n / 10
	}
	return n/10 + 1
}
