package io

import (
	"fmt"
	"io"
)

// Load reads the file at path, undoing its compression, and reports the
// format inferred from the extension.
func Load(path string) ([]byte, Format, error) {
	f, comp, err := DetectFormat(path)
	if err != nil {
		return nil, "", err
	}
	rc, err := openFile(path, comp)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, f, nil
}

// Save writes data to path, compressing it according to the extension.
// The format part of the extension is not checked against data.
func Save(path string, data []byte) error {
	wc, err := createFile(path, compressionOf(path))
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
