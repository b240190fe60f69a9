// Package token caches access tokens in memory and persists them through a
// pluggable Keeper.
//
// Keys follow the credential key grammar of the dispatch layer:
// "<provider>::" for a provider-level token, "<provider>::<device>" for a
// device-scoped one. The store itself treats keys as opaque strings.
//
// The persisted form maps each key to its base64-encoded secret. The
// encoding keeps the store transport-safe for arbitrary byte content; it is
// not encryption and provides no confidentiality. Anyone who can read the
// persisted store can recover every secret, so the file keeper restricts
// the file to 0600 and the keychain keeper delegates protection to the
// operating system.
//
// No cross-process locking is performed around the persisted store.
// Concurrent processes persisting at the same time can race and lose
// updates; the last full-store write wins.
package token

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCorrupt reports a persisted token store that exists but cannot be
// decoded. The in-memory state is left untouched when a load fails.
var ErrCorrupt = errors.New("token store corrupt")

// Store is an in-memory token mapping layered over a Keeper. The persisted
// mapping is the baseline merged under in-memory entries: on every load,
// keys already set in memory win over their persisted values.
type Store struct {
	mu     sync.Mutex
	keeper Keeper
	tokens map[string]string
	loaded bool
}

// NewStore returns a store backed by the given keeper. The persisted
// mapping is loaded lazily on first use.
func NewStore(k Keeper) *Store {
	return &Store{keeper: k, tokens: make(map[string]string)}
}

// SetKeeper swaps the backing keeper. In-memory tokens are kept; the new
// keeper's contents merge in as the baseline on the next operation.
func (s *Store) SetKeeper(k Keeper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keeper = k
	s.loaded = false
}

// Set inserts or overwrites the secret for key in memory. When persist is
// true the full current mapping is written back through the keeper,
// replacing its previous contents. Returns a snapshot of the mapping.
func (s *Store) Set(key, secret string, persist bool) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(); err != nil {
		return nil, err
	}
	s.tokens[key] = secret
	if persist {
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	}
	return s.snapshotLocked(), nil
}

// Reload re-reads the persisted mapping and merges it as the baseline under
// the in-memory one; in-memory entries win on key collision. When persist
// is true the merged result is written back through the keeper. Returns a
// snapshot of the mapping.
func (s *Store) Reload(persist bool) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mergeBaseLocked(); err != nil {
		return nil, err
	}
	s.loaded = true
	if persist {
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	}
	return s.snapshotLocked(), nil
}

// Get returns the secret stored under exactly the given key. There is no
// fallback from a device-scoped key to its provider-level key; callers that
// want fallback must probe both keys themselves.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(); err != nil {
		return "", false, err
	}
	secret, ok := s.tokens[key]
	return secret, ok, nil
}

// All returns a snapshot of the full current mapping.
func (s *Store) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(); err != nil {
		return nil, err
	}
	return s.snapshotLocked(), nil
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}
	if err := s.mergeBaseLocked(); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// mergeBaseLocked loads and decodes the persisted mapping, then merges it
// under the in-memory one. A decode failure aborts the whole merge.
func (s *Store) mergeBaseLocked() error {
	encoded, err := s.keeper.Load()
	if err != nil {
		return err
	}
	base := make(map[string]string, len(encoded))
	for key, enc := range encoded {
		secret, err := DecodeSecret(enc)
		if err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
		}
		base[key] = secret
	}
	for key, secret := range base {
		if _, ok := s.tokens[key]; !ok {
			s.tokens[key] = secret
		}
	}
	return nil
}

func (s *Store) persistLocked() error {
	encoded := make(map[string]string, len(s.tokens))
	for key, secret := range s.tokens {
		encoded[key] = EncodeSecret(secret)
	}
	return s.keeper.Store(encoded)
}

func (s *Store) snapshotLocked() map[string]string {
	out := make(map[string]string, len(s.tokens))
	for key, secret := range s.tokens {
		out[key] = secret
	}
	return out
}
