package gateway

import (
	"encoding/hex"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
)

// Store keeps uploaded archives in memory keyed by content address.
type Store struct {
	mutex    sync.RWMutex
	archives map[string][]byte
}

// NewStore creates an empty archive store.
func NewStore() *Store {
	return &Store{archives: make(map[string][]byte)}
}

// ContentAddress returns the hex keccak-256 digest of data.
func ContentAddress(data []byte) string {
	return hex.EncodeToString(crypto.Keccak256(data))
}

// Put stores data and returns its content address. Storing the same bytes twice is a no-op.
func (s *Store) Put(data []byte) string {
	address := ContentAddress(data)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.archives[address]; !exists {
		s.archives[address] = data
	}
	return address
}

// Get returns the archive stored under address.
func (s *Store) Get(address string) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, ok := s.archives[address]
	return data, ok
}

// Len returns the number of stored archives.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.archives)
}
