package errors

// Code is a sentinel error identifying one failure condition. It implements
// DriverError directly so it can be returned bare, or built up into a
// wrappedError via WithMessage/Wrap when the caller has more context to add.
type Code string

const (
	// ErrBlockDeviceRequired means an operation needs a bound BlockDevice
	// but none was given.
	ErrBlockDeviceRequired = Code("block device required")
	// ErrOutOfRange means a block index fell outside the valid range for
	// the device. An out-of-range inode number is reported as
	// ErrInodeNotFound.
	ErrOutOfRange = Code("index out of range")
	// ErrInvalidArgument means a buffer or parameter failed a precondition
	// check (wrong size, nil, etc.).
	ErrInvalidArgument = Code("invalid argument")
	// ErrIO means the underlying host file failed to read or write.
	ErrIO = Code("input/output error")
	// ErrCorruptSuperblock means the superblock read at mount time failed
	// validation (bad magic, mismatched geometry).
	ErrCorruptSuperblock = Code("corrupt or foreign superblock")
	// ErrAlreadyMounted means a FileSystem handle that is already bound to
	// a device was asked to mount or format again.
	ErrAlreadyMounted = Code("filesystem already mounted")
	// ErrNotMounted means an operation that requires a mounted handle was
	// called on a detached one.
	ErrNotMounted = Code("filesystem not mounted")
	// ErrNoSpace means no free inode or no free data block was available.
	ErrNoSpace = Code("no space left on device")
	// ErrInodeNotFound means the requested inode number is out of range or
	// not currently valid.
	ErrInodeNotFound = Code("no such inode")
	// ErrUnknownGeometry means a named disk-size preset wasn't found in the
	// geometry table.
	ErrUnknownGeometry = Code("unknown disk geometry preset")
)

func (c Code) Error() string {
	return string(c)
}

func (c Code) WithMessage(message string) DriverError {
	return wrappedError{code: c, message: message}
}

func (c Code) Wrap(err error) DriverError {
	return wrappedError{
		code:    c,
		message: c.Error() + ": " + err.Error(),
		cause:   err,
	}
}

func (c Code) Unwrap() []error {
	return nil
}
