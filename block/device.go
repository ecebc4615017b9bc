// Package block provides the fixed-size, indexable block-storage
// abstraction that simplefs is layered on: a flat array of BlockSize-byte
// blocks backed by a host file (or, for tests, an in-memory buffer), with
// whole-block read/write, the block count and close as its operations and
// counters kept for diagnostics.
package block

import (
	"fmt"
	"io"
	"os"

	"github.com/Rob-Reutiman/simple-FS/errors"
)

// BlockSize is the fixed size, in bytes, of every block on a Device.
const BlockSize = 4096

// Device is a fixed number of BlockSize-byte blocks addressed by index in
// [0, Count()). All addressing above this layer is by block index; Device
// itself knows nothing about superblocks, inodes, or bitmaps.
type Device struct {
	stream     io.ReadWriteSeeker
	closer     io.Closer
	blockCount uint
	reads      uint64
	writes     uint64
}

// Open opens (or creates) the file at path and resizes it to
// blockCount*BlockSize bytes. A freshly extended region reads back as
// zeros; a reopened file's existing contents are preserved.
func Open(path string, blockCount uint) (*Device, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.ErrIO.Wrap(err)
	}

	if err := file.Truncate(int64(blockCount) * BlockSize); err != nil {
		file.Close()
		return nil, errors.ErrIO.Wrap(err)
	}

	return &Device{
		stream:     file,
		closer:     file,
		blockCount: blockCount,
	}, nil
}

// NewFromStream wraps an already-open io.ReadWriteSeeker (for example an
// in-memory buffer from the testing package) as a Device of blockCount
// blocks. The stream is assumed to already be sized correctly; no Close is
// performed unless the stream also implements io.Closer.
func NewFromStream(stream io.ReadWriteSeeker, blockCount uint) *Device {
	d := &Device{stream: stream, blockCount: blockCount}
	if closer, ok := stream.(io.Closer); ok {
		d.closer = closer
	}
	return d
}

// Count returns the number of addressable blocks on the device.
func (d *Device) Count() uint {
	return d.blockCount
}

func (d *Device) checkBounds(index uint, buf []byte) errors.DriverError {
	if index >= d.blockCount {
		return errors.ErrOutOfRange.WithMessage(
			"block index not in range of device")
	}
	if buf == nil {
		return errors.ErrInvalidArgument.WithMessage("buffer is nil")
	}
	if len(buf) != BlockSize {
		return errors.ErrInvalidArgument.WithMessage(
			"buffer must be exactly one block")
	}
	return nil
}

func (d *Device) seekToBlock(index uint) error {
	_, err := d.stream.Seek(int64(index)*BlockSize, io.SeekStart)
	return err
}

// ReadBlock copies exactly BlockSize bytes from block index into buf, which
// must be exactly BlockSize bytes long. The read counter is only
// incremented on success.
func (d *Device) ReadBlock(index uint, buf []byte) error {
	if err := d.checkBounds(index, buf); err != nil {
		return err
	}

	if err := d.seekToBlock(index); err != nil {
		return errors.ErrIO.Wrap(err)
	}

	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return errors.ErrIO.Wrap(err)
	}

	d.reads++
	return nil
}

// WriteBlock durably places buf at block index, which must be exactly
// BlockSize bytes long. The write counter is only incremented on success.
func (d *Device) WriteBlock(index uint, buf []byte) error {
	if err := d.checkBounds(index, buf); err != nil {
		return err
	}

	if err := d.seekToBlock(index); err != nil {
		return errors.ErrIO.Wrap(err)
	}

	if _, err := d.stream.Write(buf); err != nil {
		return errors.ErrIO.Wrap(err)
	}

	d.writes++
	return nil
}

// Reads returns the number of successful ReadBlock calls so far.
func (d *Device) Reads() uint64 {
	return d.reads
}

// Writes returns the number of successful WriteBlock calls so far.
func (d *Device) Writes() uint64 {
	return d.writes
}

// Close releases the backing store and prints the cumulative read/write
// counters, mirroring the block-device emulator this type is modeled on.
func (d *Device) Close() error {
	var closeErr error
	if d.closer != nil {
		closeErr = d.closer.Close()
	}

	fmt.Printf("disk reads:  %d\ndisk writes: %d\n", d.reads, d.writes)

	if closeErr != nil {
		return errors.ErrIO.Wrap(closeErr)
	}
	return nil
}
