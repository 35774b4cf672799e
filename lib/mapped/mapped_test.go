// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapped

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenAndView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.bin")
	content := []byte("Spikey\x00\x00\x00\x00\x00")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	if file.Size() != len(content) {
		t.Errorf("Size() = %d, want %d", file.Size(), len(content))
	}
	err = file.View(func(data []byte) error {
		if !bytes.Equal(data, content) {
			t.Errorf("View data = %q, want %q", data, content)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestViewReturnsCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.bin")
	if err := os.WriteFile(path, []byte{1}, 0o644); err != nil {
		t.Fatal(err)
	}
	file, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	sentinel := errors.New("decode failed")
	if err := file.View(func([]byte) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("View error = %v, want %v", err, sentinel)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	file, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if file.Size() != 0 {
		t.Errorf("Size() = %d, want 0", file.Size())
	}
	file.View(func(data []byte) error {
		if len(data) != 0 {
			t.Errorf("View data has %d bytes, want 0", len(data))
		}
		return nil
	})
	if err := file.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	directory := t.TempDir()
	if _, err := Open(filepath.Join(directory, "missing.bin")); err == nil {
		t.Error("Open of a missing file: expected error")
	}
	if _, err := Open(directory); err == nil {
		t.Error("Open of a directory: expected error")
	}
}

func TestCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	file, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
