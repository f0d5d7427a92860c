// Package nvme models the platform's NVMe-style storage controller: an
// append-only backing file written on MMIO control writes.
package nvme

import (
	"os"

	"golang.org/x/sys/unix"
)

// Resolver translates a bus address to a backing byte slice.
type Resolver func(addr uint32) []byte

// Controller owns the NVMe register block and the append-only backing
// file handle.
type Controller struct {
	Ctrl         uint32
	Status       uint32
	WriteBufAddr uint32
	WriteBufLen  uint32

	BytesWritten    uint64
	WritesCompleted uint64

	file *os.File
}

// Open opens (creating if necessary) the NVMe backing file in append mode.
func Open(path string) (*Controller, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Controller{file: f}, nil
}

// Close releases the backing file handle.
func (c *Controller) Close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}

// Write appends WriteBufLen bytes resolved from WriteBufAddr to the backing
// file and flushes. A failure to resolve the source address, or no backing
// file, silently drops the write.
func (c *Controller) Write(resolve Resolver) (written uint64, ok bool) {
	if c.file == nil {
		return 0, false
	}
	src := resolve(c.WriteBufAddr)
	if src == nil || uint32(len(src)) < c.WriteBufLen {
		return 0, false
	}

	if _, err := c.file.Write(src[:c.WriteBufLen]); err != nil {
		return 0, false
	}
	if err := unix.Fsync(int(c.file.Fd())); err != nil {
		return 0, false
	}

	c.BytesWritten += uint64(c.WriteBufLen)
	c.WritesCompleted++
	return uint64(c.WriteBufLen), true
}

// ReadAt reads n bytes from the backing file at offset, for the transfer
// gate's random-access retrieval.
func (c *Controller) ReadAt(offset int64, n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := c.file.ReadAt(buf, offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// Size returns the current backing file size, i.e. the offset at which the
// next append will land.
func (c *Controller) Size() (int64, error) {
	info, err := c.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
