package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	files := map[string][]byte{
		"model.onnx":  []byte("weights weights weights"),
		"labels.txt":  []byte("aspirin\nibuprofen\n"),
		"config.yaml": []byte("input: 300x300"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(srcDir, name), data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	// Subdirectories are not part of the flat inventory.
	if err := os.MkdirAll(filepath.Join(srcDir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	archive := filepath.Join(t.TempDir(), "model.bundle")
	count, err := Pack(srcDir, archive)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if count != len(files) {
		t.Errorf("Packed %d files, expected %d", count, len(files))
	}

	dstDir := filepath.Join(t.TempDir(), "restored")
	count, err = Unpack(archive, dstDir)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if count != len(files) {
		t.Errorf("Restored %d files, expected %d", count, len(files))
	}

	for name, expected := range files {
		data, err := os.ReadFile(filepath.Join(dstDir, name))
		if err != nil {
			t.Errorf("Restored file %s not readable: %v", name, err)
			continue
		}
		if string(data) != string(expected) {
			t.Errorf("%s content changed: %q", name, data)
		}
	}
}

func TestPack_MissingDirectory(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "model.bundle")
	if _, err := Pack(filepath.Join(t.TempDir(), "nope"), archive); err == nil {
		t.Error("Expected error for missing source directory")
	}
}

func TestUnpack_MissingArchive(t *testing.T) {
	if _, err := Unpack(filepath.Join(t.TempDir(), "nope.bundle"), t.TempDir()); err == nil {
		t.Error("Expected error for missing archive")
	}
}

func TestPack_EmptyDirectory(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "empty.bundle")
	count, err := Pack(t.TempDir(), archive)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Packed %d files from empty directory", count)
	}
}
