package simplefs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rob-Reutiman/simple-FS/block"
)

// Debug reads device directly (it does not need to be mounted) and builds
// a plain-text report of the superblock and every valid inode, in the
// format described by simplefs' wire documentation. It is a read-only
// diagnostic; nothing here mutates device.
func Debug(device *block.Device) (string, error) {
	var out strings.Builder

	superBuf := make([]byte, BlockSize)
	if err := device.ReadBlock(0, superBuf); err != nil {
		return "", err
	}
	super, err := decodeSuperBlock(superBuf)
	if err != nil {
		return "", err
	}

	out.WriteString("SuperBlock:\n")
	if super.MagicNumber == MagicNumber {
		out.WriteString("    magic number is valid\n")
	} else {
		out.WriteString("    magic number is invalid\n")
	}
	fmt.Fprintf(&out, "    %d blocks\n", super.Blocks)
	fmt.Fprintf(&out, "    %d inode blocks\n", super.InodeBlocks)
	fmt.Fprintf(&out, "    %d inodes\n", super.Inodes)

	buf := make([]byte, BlockSize)
	for b := uint32(1); b <= super.InodeBlocks && b < super.Blocks; b++ {
		if err := device.ReadBlock(uint(b), buf); err != nil {
			return "", err
		}

		for slot := uint32(0); slot < InodesPerBlock; slot++ {
			inode, err := decodeInode(buf[slot*InodeSize : (slot+1)*InodeSize])
			if err != nil {
				return "", err
			}
			if inode.Valid != 1 {
				continue
			}

			inodeNumber := (b-1)*InodesPerBlock + slot
			fmt.Fprintf(&out, "Inode %d:\n", inodeNumber)
			fmt.Fprintf(&out, "    size: %d bytes\n", inode.Size)

			direct := nonZero(inode.Direct[:])
			out.WriteString("    direct blocks: " + joinUint32(direct) + "\n")

			if inode.Indirect != 0 {
				fmt.Fprintf(&out, "    indirect block: %d\n", inode.Indirect)

				indirectBuf := make([]byte, BlockSize)
				if err := device.ReadBlock(uint(inode.Indirect), indirectBuf); err != nil {
					return "", err
				}
				ib, err := decodeIndirectBlock(indirectBuf)
				if err != nil {
					return "", err
				}

				out.WriteString("    indirect data blocks: " + joinUint32(nonZero(ib[:])) + "\n")
			}
		}
	}

	return out.String(), nil
}

func nonZero(values []uint32) []uint32 {
	out := make([]uint32, 0, len(values))
	for _, v := range values {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func joinUint32(values []uint32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, " ")
}
