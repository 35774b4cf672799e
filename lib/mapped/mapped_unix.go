// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package mapped

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/sys/unix"
)

// File is a read-only view of a file's contents.
//
// File is safe for concurrent View calls. Close must not race with
// them.
type File struct {
	path string
	data []byte // mmap'd MAP_SHARED, PROT_READ; nil for an empty file
}

// Open memory-maps the file at path read-only. The descriptor is
// closed before Open returns; the mapping stays valid until Close.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer unix.Close(fd)

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, fmt.Errorf("stating %s: %w", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFREG {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if stat.Size == 0 {
		// mmap rejects zero-length mappings.
		return &File{path: path}, nil
	}

	data, err := unix.Mmap(fd, 0, int(stat.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("memory-mapping %s: %w", path, err)
	}
	return &File{path: path, data: data}, nil
}

// View calls fn with the file's bytes. fn must not retain the slice
// past Close. A page fault while fn runs is returned as an error.
func (f *File) View(fn func(data []byte) error) (err error) {
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			err = fmt.Errorf("page fault reading %s: %v", f.path, r)
		}
	}()
	return fn(f.data)
}

// Size returns the file size in bytes.
func (f *File) Size() int {
	return len(f.data)
}

// Close unmaps the file.
func (f *File) Close() error {
	if f.data == nil {
		return nil
	}
	err := unix.Munmap(f.data)
	f.data = nil
	if err != nil {
		return fmt.Errorf("unmapping %s: %w", f.path, err)
	}
	return nil
}
