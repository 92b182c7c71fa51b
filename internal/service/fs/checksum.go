package fs

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ChecksumManager is a thread-safe checksum cache keyed by path.
// Checksums are xxhash64 digests rendered as hex; they detect change, not tampering.
type ChecksumManager struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewChecksumManager creates a new thread-safe checksum manager instance.
func NewChecksumManager() *ChecksumManager {
	return &ChecksumManager{
		store: make(map[string]string),
	}
}

// Compute computes the checksum of data.
func (m *ChecksumManager) Compute(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Get retrieves the cached checksum for a path.
func (m *ChecksumManager) Get(path string) (checksum string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	checksum, ok = m.store[path]
	return checksum, ok
}

// Update stores or updates the checksum for a path.
func (m *ChecksumManager) Update(path string, checksum string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[path] = checksum
}

// Forget drops the cached checksum for a path.
func (m *ChecksumManager) Forget(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, path)
}

// Clear removes all cached checksums from the manager.
func (m *ChecksumManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]string)
}
