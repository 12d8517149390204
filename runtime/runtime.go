// Package runtimeembed embeds the C header generated programs include.
package runtimeembed

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// HeaderName is the file name generated programs include.
const HeaderName = "vecsmith.h"

//go:embed native/vecsmith.h
var header []byte

// Header returns a copy of the embedded header.
func Header() []byte {
	return append([]byte(nil), header...)
}

// WriteHeader writes the header into dir, creating it when needed, and
// returns the written path.
func WriteHeader(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("runtime header: %w", err)
	}
	path := filepath.Join(dir, HeaderName)
	if err := os.WriteFile(path, header, 0o644); err != nil {
		return "", fmt.Errorf("runtime header: %w", err)
	}
	return path, nil
}
