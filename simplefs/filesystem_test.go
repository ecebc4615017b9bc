package simplefs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rob-Reutiman/simple-FS/simplefs"
	sfstesting "github.com/Rob-Reutiman/simple-FS/testing"
)

// S1 — Fresh format/mount.
func TestFormatMountFreshDisk(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()

	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)
	assert.EqualValues(t, 0, inode)

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, 0, size)
}

func TestFormatRefusedWhileMounted(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	assert.Error(t, fs.Format(device))
}

func TestMountRefusedWhenAlreadyMounted(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	assert.Error(t, fs.Mount(device))
}

func TestMountRejectsBadMagic(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()

	assert.Error(t, fs.Mount(device), "mounting an unformatted disk must fail")
}

// S2 — Small write in one direct block.
func TestSmallWriteInOneDirectBlock(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)

	n, err := fs.Write(inode, []byte("hello world"), 11, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 11, n)

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, 11, size)

	out := make([]byte, 11)
	n, err = fs.Read(inode, out, 11, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 11, n)
	assert.Equal(t, "hello world", string(out))
}

// S3 — Write spanning direct into indirect, and S4 — partial-block offset read.
func TestWriteSpanningDirectIntoIndirect(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 200)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)

	const totalSize = 6 * simplefs.BlockSize
	pattern := make([]byte, totalSize)
	for i := range pattern {
		pattern[i] = 0x5A
	}

	n, err := fs.Write(inode, pattern, totalSize, 0)
	require.NoError(t, err)
	assert.EqualValues(t, totalSize, n)

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, totalSize, size)

	out := make([]byte, totalSize)
	n, err = fs.Read(inode, out, totalSize, 0)
	require.NoError(t, err)
	assert.EqualValues(t, totalSize, n)
	assert.Equal(t, pattern, out)

	// S4: partial-block offset read crossing the direct[0]/direct[1] boundary.
	small := make([]byte, 10)
	n, err = fs.Read(inode, small, 10, simplefs.BlockSize-5)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
	for _, b := range small {
		assert.Equal(t, byte(0x5A), b)
	}
}

// S5 — Remove frees blocks and they become available again.
func TestRemoveFreesBlocksForReuse(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 200)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)

	pattern := make([]byte, 6*simplefs.BlockSize)
	_, err = fs.Write(inode, pattern, uint32(len(pattern)), 0)
	require.NoError(t, err)

	require.NoError(t, fs.Remove(inode))

	_, err = fs.Stat(inode)
	assert.Error(t, err)

	again, err := fs.Create()
	require.NoError(t, err)
	assert.Equal(t, inode, again)

	n, err := fs.Write(again, []byte("x"), 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// A 200-block disk has 20 inode blocks, so block 21 is the first data
	// block; the first write took it and Remove freed it, so it is reused.
	report, err := simplefs.Debug(device)
	require.NoError(t, err)
	assert.Contains(t, report, "direct blocks: 21\n")
}

// S6 — Remount rebuilds the bitmap and preserves file contents.
func TestRemountPreservesContents(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 200)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))

	inode, err := fs.Create()
	require.NoError(t, err)

	pattern := make([]byte, 6*simplefs.BlockSize)
	for i := range pattern {
		pattern[i] = 0x5A
	}
	_, err = fs.Write(inode, pattern, uint32(len(pattern)), 0)
	require.NoError(t, err)

	fs.Unmount()
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), size)

	out := make([]byte, len(pattern))
	n, err := fs.Read(inode, out, uint32(len(pattern)), 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), n)
	assert.Equal(t, pattern, out)
}

func TestReadClampsPastEndOfFile(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)

	_, err = fs.Write(inode, []byte("0123456789"), 10, 0)
	require.NoError(t, err)

	out := make([]byte, 100)
	n, err := fs.Read(inode, out, 100, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	assert.Equal(t, "56789", string(out[:n]))
}

func TestReadPastEndOfFileReturnsZero(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)
	_, err = fs.Write(inode, []byte("hi"), 2, 0)
	require.NoError(t, err)

	out := make([]byte, 10)
	n, err := fs.Read(inode, out, 10, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestCreateExhaustionReturnsError(t *testing.T) {
	device := sfstesting.NewMemoryDevice(t, 100)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	// 100-block disk => 10 inode blocks => 1280 inodes.
	for i := 0; i < 1280; i++ {
		_, err := fs.Create()
		require.NoError(t, err)
	}

	_, err := fs.Create()
	assert.Error(t, err)
}

func TestWriteExhaustionReturnsPartialCountNotError(t *testing.T) {
	// 12 blocks total: block 0 (super) + ceilDiv10(12)=2 inode blocks,
	// leaving only 9 free data blocks, far fewer than the write below asks
	// for.
	device := sfstesting.NewMemoryDevice(t, 12)
	fs := simplefs.New()
	require.NoError(t, fs.Format(device))
	require.NoError(t, fs.Mount(device))
	defer fs.Unmount()

	inode, err := fs.Create()
	require.NoError(t, err)

	data := make([]byte, 20*simplefs.BlockSize)
	n, err := fs.Write(inode, data, uint32(len(data)), 0)
	require.NoError(t, err)
	assert.Less(t, n, uint32(len(data)))

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.Equal(t, n, size)
}
