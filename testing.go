package platform

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dpusim/platform/internal/config"
)

// StubPermissionOracle returns a fixed decision regardless of locality, for
// tests that need to force a grant or a denial.
type StubPermissionOracle struct {
	Grant bool
}

// Allow implements PermissionOracle.
func (s *StubPermissionOracle) Allow(bool) bool {
	return s.Grant
}

// NewStubRemoteEndpoint starts an httptest.Server that accepts any POST and
// returns 200 OK, recording how many deliveries it has received. Callers
// must Close() the returned server.
func NewStubRemoteEndpoint() (*httptest.Server, *int) {
	received := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*received++
		w.WriteHeader(http.StatusOK)
	}))
	return srv, received
}

// NewTestPlatform builds a Platform backed by temp-dir files, wired to a
// stub remote endpoint, and with an always-grant permission oracle. The
// marker key file is pre-seeded with key, so HandleTransferRequest(ts, key,
// true) can be exercised directly.
func NewTestPlatform(t *testing.T, key string) (*Platform, *int) {
	t.Helper()

	dir := t.TempDir()
	srv, received := NewStubRemoteEndpoint()
	t.Cleanup(srv.Close)

	markerPath := filepath.Join(dir, "marker.key")
	if err := os.WriteFile(markerPath, []byte(key+"\n"), 0o644); err != nil {
		t.Fatalf("seed marker key: %v", err)
	}

	cfg := &config.PlatformConfig{
		NVMeBackingFile:  filepath.Join(dir, "nvme.img"),
		CloudBackupFile:  filepath.Join(dir, "cloud-backup.img"),
		MarkerKeyFile:    markerPath,
		RemoteEndpoint:   srv.URL,
		CompressionLevel: 3,
	}

	p, err := New(cfg, nil, &StubPermissionOracle{Grant: true})
	if err != nil {
		t.Fatalf("new platform: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	return p, received
}
