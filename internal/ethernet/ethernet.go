// Package ethernet models the platform's Ethernet MAC: a local "cloud
// backup" append plus a best-effort remote delivery over HTTP.
package ethernet

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Resolver translates a bus address to a backing byte slice.
type Resolver func(addr uint32) []byte

// MAC is the Ethernet MAC's register block, local backup file, and remote
// delivery client.
type MAC struct {
	Ctrl      uint32
	Status    uint32
	TxBufAddr uint32
	TxBufLen  uint32

	BytesTransmitted   uint64
	PacketsTransmitted uint64

	RemoteEndpoint string
	Timeout        time.Duration

	backupFile *os.File
	client     *http.Client
}

// Open opens (creating if necessary) the local cloud-backup file in append
// mode and returns a MAC configured to deliver to endpoint (empty string
// disables remote delivery attempts, leaving only the local backup path).
func Open(backupPath string, endpoint string, timeout time.Duration) (*MAC, error) {
	f, err := os.OpenFile(backupPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MAC{
		RemoteEndpoint: endpoint,
		Timeout:        timeout,
		backupFile:     f,
		client:         &http.Client{Timeout: timeout},
	}, nil
}

// Close releases the local backup file handle.
func (m *MAC) Close() error {
	if m.backupFile == nil {
		return nil
	}
	return m.backupFile.Close()
}

// Transmit resolves TxBufAddr, appends the bytes to the local cloud backup
// unconditionally, and attempts remote delivery. Counters are only updated
// on a successful remote delivery; failures are reported but
// not retried.
func (m *MAC) Transmit(resolve Resolver) (delivered bool, err error) {
	src := resolve(m.TxBufAddr)
	if src == nil || uint32(len(src)) < m.TxBufLen {
		return false, nil
	}
	payload := src[:m.TxBufLen]

	if m.backupFile != nil {
		if _, werr := m.backupFile.Write(payload); werr == nil {
			unix.Fsync(int(m.backupFile.Fd()))
		}
	}

	if m.RemoteEndpoint == "" {
		return false, nil
	}

	if derr := m.post(payload); derr != nil {
		return false, derr
	}

	m.BytesTransmitted += uint64(m.TxBufLen)
	m.PacketsTransmitted++
	return true, nil
}

func (m *MAC) post(payload []byte) error {
	resp, err := m.client.Post(m.RemoteEndpoint, "application/octet-stream", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &httpStatusError{code: resp.StatusCode}
	}
	return nil
}

type httpStatusError struct {
	code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("remote endpoint returned status %d", e.code)
}
