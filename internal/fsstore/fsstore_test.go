package fsstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndReadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "seen.json")
	in := map[string]string{"alice": "2026-01-02 15:04:05"}
	if err := WriteJSONAtomic(path, in, FileOptions{}); err != nil {
		t.Fatalf("WriteJSONAtomic() error = %v", err)
	}

	out := map[string]string{}
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !found {
		t.Fatal("ReadJSON() found = false, want true")
	}
	if out["alice"] != in["alice"] {
		t.Fatalf("ReadJSON() alice = %q, want %q", out["alice"], in["alice"])
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	t.Parallel()

	out := map[string]string{}
	found, err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if found {
		t.Fatal("ReadJSON() found = true for missing file")
	}
}

func TestReadJSONEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(" \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out := map[string]string{}
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if found {
		t.Fatal("ReadJSON() found = true for empty file")
	}
}

func TestWriteJSONAtomicInvalidPath(t *testing.T) {
	t.Parallel()

	if err := WriteJSONAtomic("  ", map[string]string{}, FileOptions{}); err == nil {
		t.Fatal("WriteJSONAtomic() expected error for empty path")
	}
}
