package runtimeembed

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"vecsmith/internal/gen"
	"vecsmith/internal/vector"
)

func TestHeaderDefinesProgramVocabulary(t *testing.T) {
	h := Header()
	for _, sym := range []string{
		"#define VECTOR(T, N)",
		vector.ChecksumFunc + "(uint64_t val",
		"crc32_gentab(void)",
		"crc32_context",
		"platform_main_begin(void)",
		"platform_main_end(uint32_t crc, int flag)",
		"vecsmith_uint64_t_16",
	} {
		if !bytes.Contains(h, []byte(sym)) {
			t.Errorf("header lacks %q", sym)
		}
	}
	if HeaderName != gen.HeaderName {
		t.Fatalf("programs include %q, runtime ships %q", gen.HeaderName, HeaderName)
	}
}

func TestWriteHeader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inc")
	path, err := WriteHeader(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(data, Header()) {
		t.Fatalf("written header differs: %v", err)
	}
}
