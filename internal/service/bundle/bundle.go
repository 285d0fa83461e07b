package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Pack collects every regular file directly inside dir into a single tar
// archive at archivePath, byte for byte. Subdirectories are skipped; the
// archive is a flat inventory of model files.
func Pack(dir, archivePath string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read model directory: %w", err)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	tw := tar.NewWriter(out)
	defer tw.Close()

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return count, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		header := &tar.Header{
			Name: entry.Name(),
			Mode: 0644,
			Size: info.Size(),
		}
		if err := tw.WriteHeader(header); err != nil {
			return count, fmt.Errorf("failed to write header for %s: %w", entry.Name(), err)
		}

		file, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return count, fmt.Errorf("failed to open %s: %w", entry.Name(), err)
		}

		_, err = io.Copy(tw, file)
		file.Close()
		if err != nil {
			return count, fmt.Errorf("failed to archive %s: %w", entry.Name(), err)
		}

		count++
	}

	return count, nil
}

// Unpack restores an archive produced by Pack into dir, creating it if
// absent. Entry names are flattened to their base name so a crafted
// archive cannot write outside dir.
func Unpack(archivePath, dir string) (int, error) {
	in, err := os.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create restore directory: %w", err)
	}

	tr := tar.NewReader(in)

	count := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		target := filepath.Join(dir, filepath.Base(header.Name))
		out, err := os.Create(target)
		if err != nil {
			return count, fmt.Errorf("failed to create %s: %w", target, err)
		}

		_, err = io.Copy(out, tr)
		out.Close()
		if err != nil {
			return count, fmt.Errorf("failed to restore %s: %w", target, err)
		}

		count++
	}

	return count, nil
}
