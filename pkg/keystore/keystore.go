// Package keystore is a process-local store for VRF key pairs, handing
// out opaque handles instead of key bytes. It backs the signer-facing
// API; anything durable should live behind the same interface.
package keystore

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/keys"
	"github.com/cipherworks/vrf-lib/core/math/curve"
)

var ErrNotFound = errors.New("keystore: no key with that handle")

// Store maps handles to secret keys. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*keys.SecretKey
}

// New returns an empty store.
func New() *Store {
	return &Store{byID: make(map[string]*keys.SecretKey)}
}

// Import stores a key and returns its handle.
func (s *Store) Import(sk *keys.SecretKey) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.byID[id] = sk
	s.mu.Unlock()
	return id
}

// Generate creates and stores a fresh key for the suite.
func (s *Store) Generate(suite *curve.Curve) (string, curve.Point, error) {
	sk, pk, err := keys.Generate(suite, nil)
	if err != nil {
		return "", curve.Point{}, err
	}
	return s.Import(sk), pk, nil
}

// Get resolves a handle.
func (s *Store) Get(id string) (*keys.SecretKey, error) {
	s.mu.RLock()
	sk, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return sk, nil
}

// Delete zeroizes and forgets a key.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	if sk, ok := s.byID[id]; ok {
		sk.Zeroize()
		delete(s.byID, id)
	}
	s.mu.Unlock()
}
