package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ruteri/swarm-package-registry/interfaces"
)

// ComputeHandle derives a package handle from a name the way the registry contract does.
func ComputeHandle(name interfaces.PackageName) interfaces.PackageHandle {
	return interfaces.PackageHandle(crypto.Keccak256Hash([]byte(name)))
}

// MemoryRegistry provides a simple in-memory implementation of the PackageRegistry
// interface for testing purposes without requiring a blockchain connection.
// It mirrors the contract's observable behaviour: registering a taken name is
// rejected, unknown names resolve to the zero handle and publishing under an
// unknown handle is rejected.
type MemoryRegistry struct {
	mutex            sync.RWMutex
	handles          map[interfaces.PackageName]interfaces.PackageHandle
	names            map[interfaces.PackageHandle]interfaces.PackageName
	releases         map[interfaces.PackageHandle][]interfaces.Release
	allowTransacting bool
}

// NewMemoryRegistry creates a new in-memory registry with empty initial state.
// The registry starts in a read-only state - call SetTransactOpts to enable transaction operations.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		handles:  make(map[interfaces.PackageName]interfaces.PackageHandle),
		names:    make(map[interfaces.PackageHandle]interfaces.PackageName),
		releases: make(map[interfaces.PackageHandle][]interfaces.Release),
	}
}

// SetTransactOpts enables transaction operations on the in-memory registry.
func (m *MemoryRegistry) SetTransactOpts() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.allowTransacting = true
}

// Register assigns the keccak-256 hash of name as its handle.
func (m *MemoryRegistry) Register(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.allowTransacting {
		return interfaces.PackageHandle{}, ErrNoTransactOpts
	}

	if _, exists := m.handles[name]; exists {
		return interfaces.PackageHandle{}, fmt.Errorf("%w: name %q already registered", interfaces.ErrTransaction, name)
	}

	handle := ComputeHandle(name)
	m.handles[name] = handle
	m.names[handle] = name
	return handle, nil
}

// Resolve returns the handle registered for name, or the zero handle.
func (m *MemoryRegistry) Resolve(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.handles[name], nil
}

// Publish records a release under handle.
func (m *MemoryRegistry) Publish(ctx context.Context, handle interfaces.PackageHandle, version interfaces.Version, address interfaces.ContentAddress) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.allowTransacting {
		return ErrNoTransactOpts
	}

	name, exists := m.names[handle]
	if !exists {
		return fmt.Errorf("%w: unknown package handle %s", interfaces.ErrTransaction, handle)
	}

	m.releases[handle] = append(m.releases[handle], interfaces.Release{
		Name:    name,
		Handle:  handle,
		Version: version,
		Address: address,
	})
	return nil
}

// Releases returns every release published under handle in publish order.
func (m *MemoryRegistry) Releases(handle interfaces.PackageHandle) []interfaces.Release {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	// Return a copy to prevent modification of internal state
	releases := make([]interfaces.Release, len(m.releases[handle]))
	copy(releases, m.releases[handle])
	return releases
}

// Latest returns the most recently published release under handle.
// Versions are not required to increase, so this is the last write, not the highest version.
func (m *MemoryRegistry) Latest(handle interfaces.PackageHandle) (interfaces.Release, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	releases := m.releases[handle]
	if len(releases) == 0 {
		return interfaces.Release{}, false
	}
	return releases[len(releases)-1], true
}
