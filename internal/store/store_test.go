package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petedur/BPD-Tracker/internal/models"
)

func TestKeyFor(t *testing.T) {
	key := KeyFor("my passphrase")
	if len(key) != KeyLen {
		t.Errorf("key length = %d, want %d", len(key), KeyLen)
	}
	if key != KeyFor("my passphrase") {
		t.Error("key derivation must be stable")
	}
	if key == KeyFor("other passphrase") {
		t.Error("different passphrases should not collide")
	}
	if KeyFor("") != "" {
		t.Error("empty passphrase maps to the default journal")
	}
	if !isHex(key) {
		t.Errorf("key %q is not hex", key)
	}
}

func TestPath(t *testing.T) {
	s := New("/data")
	if got := s.Path(""); got != filepath.Join("/data", "journal_entries.json") {
		t.Errorf("default path = %q", got)
	}
	if got := s.Path("abcdef012345"); got != filepath.Join("/data", "journal_abcdef012345.json") {
		t.Errorf("keyed path = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(t.TempDir())
	if got := s.Load(""); got != nil {
		t.Errorf("missing file should load as empty, got %v", got)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unparsable", "{broken"},
		{"non-list object", `{"entries": []}`},
		{"bare string", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s := New(dir)
			if err := os.WriteFile(s.Path(""), []byte(tt.body), 0644); err != nil {
				t.Fatalf("seeding file: %v", err)
			}
			if got := s.Load(""); got != nil {
				t.Errorf("corrupt document should load as empty, got %v", got)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	entries := []models.Entry{
		{EntryDate: "2024-06-01", RecordedAt: "2024-06-01 09:00:00", Text: "hello", Mood: models.MoodNeutral},
		{EntryDate: "2024-06-02", RecordedAt: "2024-06-02 09:00:00", Text: "again", Mood: models.MoodHigh},
	}
	if err := s.Save("", entries); err != nil {
		t.Fatalf("saving: %v", err)
	}

	raw := s.Load("")
	if len(raw) != 2 {
		t.Fatalf("expected 2 records, got %d", len(raw))
	}

	var got models.Entry
	if err := json.Unmarshal(raw[0], &got); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if got.Text != "hello" || got.EntryDate != "2024-06-01" {
		t.Errorf("round trip changed record: %+v", got)
	}
}

func TestSaveWritesIndentedDocument(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save("", []models.Entry{{EntryDate: "2024-06-01", RecordedAt: "2024-06-01 09:00:00"}}); err != nil {
		t.Fatalf("saving: %v", err)
	}

	data, err := os.ReadFile(s.Path(""))
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("document should be human-readable indented JSON:\n%s", data)
	}
}

func TestSaveNilWritesEmptyList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save("", nil); err != nil {
		t.Fatalf("saving: %v", err)
	}

	data, err := os.ReadFile(s.Path(""))
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("nil save should produce an empty list, got %q", data)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Save("", []models.Entry{{EntryDate: "2024-06-01"}}); err != nil {
		t.Fatalf("saving: %v", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("listing dir: %v", err)
	}
	for _, f := range files {
		if strings.HasPrefix(f.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", f.Name())
		}
	}
}

func TestKeys(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Save("", nil); err != nil {
		t.Fatalf("saving default: %v", err)
	}
	keyed := KeyFor("a user")
	if err := s.Save(keyed, nil); err != nil {
		t.Fatalf("saving keyed: %v", err)
	}
	// Unrelated file that matches the glob but is not a journal key
	if err := os.WriteFile(filepath.Join(dir, "journal_backup.json"), []byte("[]"), 0644); err != nil {
		t.Fatalf("seeding stray file: %v", err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("listing keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}

	found := map[string]bool{}
	for _, k := range keys {
		found[k] = true
	}
	if !found[""] || !found[keyed] {
		t.Errorf("keys = %v, want default and %q", keys, keyed)
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestWriteFileAtomicCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "doc.txt")

	if err := WriteFileAtomic(path, []byte("x")); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
