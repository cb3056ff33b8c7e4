// Package store persists each journal as one human-readable JSON document,
// optionally partitioned per user key. The key is a hex prefix of a content
// hash of a user-supplied passphrase: it separates journals sharing a data
// directory, and is NOT an access-control or encryption mechanism.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/petedur/BPD-Tracker/internal/models"
)

// KeyLen is the number of hex characters kept from the passphrase hash.
const KeyLen = 12

const defaultFile = "journal_entries.json"

// Store reads and writes whole journal documents under a single data
// directory. Every write replaces the full document atomically.
type Store struct {
	dataDir string
}

// New creates a store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// DataDir returns the directory journals are stored in.
func (s *Store) DataDir() string {
	return s.dataDir
}

// KeyFor derives the storage key for a passphrase. An empty passphrase maps
// to the default unkeyed journal.
func KeyFor(passphrase string) string {
	if passphrase == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(passphrase))
	return hex.EncodeToString(sum[:])[:KeyLen]
}

// Path returns the document path for a storage key.
func (s *Store) Path(key string) string {
	if key == "" {
		return filepath.Join(s.dataDir, defaultFile)
	}
	return filepath.Join(s.dataDir, "journal_"+key+".json")
}

// Load reads the raw record list for a key. A missing file, unparsable
// document, or non-list document all yield an empty list; load never fails.
func (s *Store) Load(key string) []json.RawMessage {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return raw
}

// Save replaces the full document for a key with the given entries, written
// with indentation and stable field order.
func (s *Store) Save(key string, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}
	data = append(data, '\n')

	if err := WriteFileAtomic(s.Path(key), data); err != nil {
		return fmt.Errorf("writing journal %s: %w", s.Path(key), err)
	}
	return nil
}

// Keys lists the storage keys of every journal document present in the data
// directory. The default journal, if present, is reported as "".
func (s *Store) Keys() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, "journal_*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}

	var keys []string
	for _, m := range matches {
		name := filepath.Base(m)
		if name == defaultFile {
			keys = append(keys, "")
			continue
		}
		key := strings.TrimSuffix(strings.TrimPrefix(name, "journal_"), ".json")
		if len(key) == KeyLen && isHex(key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}
