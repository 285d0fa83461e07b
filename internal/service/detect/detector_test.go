package detect

import (
	"os"
	"path/filepath"
	"testing"

	"labelscan/internal/config"
	"labelscan/internal/logger"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	cfg := &config.Config{
		ModelPath:    filepath.Join(t.TempDir(), "missing_model.onnx"),
		LabelsPath:   filepath.Join(t.TempDir(), "missing_labels.txt"),
		LogDirectory: t.TempDir(),
	}
	return NewDetector(cfg, logger.NewLogger(cfg))
}

func TestFormatLabels(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected string
	}{
		{"no labels", nil, NoLabels},
		{"empty slice", []string{}, NoLabels},
		{"one label", []string{"ibuprofen"}, "ibuprofen"},
		{"detection order preserved", []string{"aspirin", "ibuprofen"}, "aspirin,ibuprofen"},
		{"duplicates preserved", []string{"aspirin", "aspirin"}, "aspirin,aspirin"},
	}

	for _, tt := range tests {
		result := FormatLabels(tt.labels)
		if result != tt.expected {
			t.Errorf("%s: FormatLabels = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}

func TestIsErrorResult(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{LoadError, true},
		{"Error: model exploded", true},
		{NoLabels, false},
		{"aspirin,ibuprofen", false},
		{"", false},
	}

	for _, tt := range tests {
		if result := IsErrorResult(tt.input); result != tt.expected {
			t.Errorf("IsErrorResult(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestSplitLabels(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"aspirin,ibuprofen", []string{"aspirin", "ibuprofen"}},
		{"aspirin", []string{"aspirin"}},
		{NoLabels, nil},
		{LoadError, nil},
		{"Error: boom", nil},
		{"", nil},
	}

	for _, tt := range tests {
		result := SplitLabels(tt.input)
		if len(result) != len(tt.expected) {
			t.Errorf("SplitLabels(%q) = %v, expected %v", tt.input, result, tt.expected)
			continue
		}
		for i := range result {
			if result[i] != tt.expected[i] {
				t.Errorf("SplitLabels(%q)[%d] = %q, expected %q", tt.input, i, result[i], tt.expected[i])
			}
		}
	}
}

func TestDetect_UnloadableImage(t *testing.T) {
	detector := newTestDetector(t)
	defer detector.Close()

	result := detector.Detect(filepath.Join(t.TempDir(), "does_not_exist.png"))
	if result != LoadError {
		t.Errorf("Detect on missing file = %q, expected %q", result, LoadError)
	}
}

func TestDetect_NotAnImage(t *testing.T) {
	detector := newTestDetector(t)
	defer detector.Close()

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("this is not an image"), 0644); err != nil {
		t.Fatalf("Failed to write junk file: %v", err)
	}

	result := detector.Detect(path)
	if result != LoadError {
		t.Errorf("Detect on junk bytes = %q, expected %q", result, LoadError)
	}
}

func TestDetect_NeverEmpty(t *testing.T) {
	detector := newTestDetector(t)
	defer detector.Close()

	// Whatever happens internally, the result is always one of the three
	// string variants, never empty.
	paths := []string{
		filepath.Join(t.TempDir(), "missing.png"),
		"",
	}
	for _, path := range paths {
		result := detector.Detect(path)
		if result == "" {
			t.Errorf("Detect(%q) returned an empty result", path)
		}
	}
}

func TestDetect_StableAcrossCalls(t *testing.T) {
	detector := newTestDetector(t)
	defer detector.Close()

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write junk file: %v", err)
	}

	first := detector.Detect(path)
	second := detector.Detect(path)
	if first != second {
		t.Errorf("Detect not stable on identical input: %q vs %q", first, second)
	}
}

func TestLoadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	if err := os.WriteFile(path, []byte("aspirin\nibuprofen\n\nparacetamol\n"), 0644); err != nil {
		t.Fatalf("Failed to write labels file: %v", err)
	}

	labels, err := loadLabels(path)
	if err != nil {
		t.Fatalf("loadLabels failed: %v", err)
	}

	expected := []string{"aspirin", "ibuprofen", "paracetamol"}
	if len(labels) != len(expected) {
		t.Fatalf("loadLabels returned %d labels, expected %d", len(labels), len(expected))
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("labels[%d] = %q, expected %q", i, labels[i], expected[i])
		}
	}
}

func TestLoadLabels_MissingFile(t *testing.T) {
	if _, err := loadLabels(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Expected error for missing labels file")
	}
}
