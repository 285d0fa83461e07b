package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"labelscan/internal/logger"
)

// ErrNoFile is returned when the request carries no usable file payload.
var ErrNoFile = errors.New("No file uploaded")

// UploadedFile describes one persisted upload. It is created once per
// request and never mutated afterwards.
type UploadedFile struct {
	OriginalName  string
	SanitizedName string
	StoredPath    string
}

// Store persists inbound files into a single configured directory.
type Store struct {
	dir    string
	logger *logger.Logger
}

// NewStore creates a Store writing into dir.
func NewStore(dir string, logger *logger.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the configured upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Store writes the byte stream to the upload directory under the sanitized
// name and returns the resulting UploadedFile. Two uploads whose names
// sanitize to the same value overwrite each other; callers that need
// uniqueness must provide distinct names.
func (s *Store) Store(r io.Reader, originalName string) (UploadedFile, error) {
	if r == nil {
		return UploadedFile{}, ErrNoFile
	}

	name := SanitizeName(originalName)
	if name == "" {
		return UploadedFile{}, ErrNoFile
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return UploadedFile{}, err
	}

	path := filepath.Join(s.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return UploadedFile{}, err
	}
	defer file.Close()

	written, err := io.Copy(file, r)
	if err != nil {
		return UploadedFile{}, err
	}

	s.logger.Info("Stored upload %s (%d bytes)", name, written)

	return UploadedFile{
		OriginalName:  originalName,
		SanitizedName: name,
		StoredPath:    path,
	}, nil
}

// SanitizeName turns an untrusted filename into one safe to use on the
// local filesystem. Path separators and control characters are stripped,
// spaces and other unsafe runes become underscores, and leading dots are
// removed so the result can never escape the upload directory. The result
// is not unique per input.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			// Drop separators entirely so "a/b.png" becomes "ab.png"
			// rather than keeping any path structure.
			continue
		case unicode.IsControl(r):
			continue
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return strings.TrimLeft(b.String(), ".")
}
