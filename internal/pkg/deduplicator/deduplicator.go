package deduper

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Defines the interface for the known-spam signature store. Signatures of
// flagged comment texts are stored so later batches can recognize the
// same macro text instantly, across videos and process restarts when a
// persistent backend is used.
type Deduper interface {
	IsDuplicate(signature string) bool
	StoreSignature(signature string)
}

// In-memory implementation of Deduper. Used in tests and single-process
// deployments; signatures do not survive a restart.
type memoryDeduper struct {
	mu         sync.RWMutex
	signatures map[string]struct{}
}

// Creates a Deduper backed by an in-memory map.
func NewDeduper() Deduper {
	return &memoryDeduper{
		signatures: make(map[string]struct{}),
	}
}

// Checks if a signature has already been stored.
func (d *memoryDeduper) IsDuplicate(signature string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, found := d.signatures[signature]
	return found
}

// Stores the given signature.
func (d *memoryDeduper) StoreSignature(signature string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signatures[signature] = struct{}{}
}

// Creates a SHA-256 signature of the text. Callers pass normalized text
// so that trivially restyled duplicates share a signature.
func GenerateSignature(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}
