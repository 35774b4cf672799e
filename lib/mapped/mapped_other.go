// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !darwin && !linux

package mapped

import (
	"fmt"
	"os"
)

// File is a read-only view of a file's contents.
type File struct {
	path string
	data []byte
}

// Open reads the file at path into memory.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		data = nil
	}
	return &File{path: path, data: data}, nil
}

// View calls fn with the file's bytes.
func (f *File) View(fn func(data []byte) error) error {
	return fn(f.data)
}

// Size returns the file size in bytes.
func (f *File) Size() int {
	return len(f.data)
}

// Close releases the file's bytes.
func (f *File) Close() error {
	f.data = nil
	return nil
}
