// Package testing provides shared fixtures for the rest of the module's
// test suites: in-memory block devices so tests never touch the host
// filesystem, built the same way the reference disk-image stack's own
// test helpers load fixture images.
package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/Rob-Reutiman/simple-FS/block"
)

// NewMemoryDevice returns a Device of blockCount freshly-zeroed blocks
// backed by an in-memory buffer rather than a host file.
func NewMemoryDevice(t *testing.T, blockCount uint) *block.Device {
	t.Helper()

	buf := make([]byte, blockCount*block.BlockSize)
	stream := bytesextra.NewReadWriteSeeker(buf)
	return block.NewFromStream(stream, blockCount)
}

// NewFormattedDevice returns an in-memory Device of blockCount blocks that
// has already been passed through the caller-supplied format function
// (typically simplefs' Format), so the caller can mount it with whatever
// FileSystem type it's testing.
func NewFormattedDevice(
	t *testing.T,
	blockCount uint,
	format func(*block.Device) error,
) *block.Device {
	t.Helper()

	device := NewMemoryDevice(t, blockCount)
	require.NoError(t, format(device), "failed to format fixture device")
	return device
}
