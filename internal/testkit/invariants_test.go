package testkit

import (
	"reflect"
	"testing"
)

func TestParseInitializerFlat(t *testing.T) {
	node, err := ParseInitializer("(VECTOR(int32_t, 4))(a, b, (int32_t)0x1L, d)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if node.Elem != "int32_t" || node.Width != 4 {
		t.Fatalf("unexpected header %q/%d", node.Elem, node.Width)
	}
	want := []string{"a", "b", "(int32_t)0x1L", "d"}
	if got := node.Leaves(); !reflect.DeepEqual(got, want) {
		t.Fatalf("leaves %v, want %v", got, want)
	}
	if node.Depth() != 1 {
		t.Fatalf("depth %d, want 1", node.Depth())
	}
}

func TestCheckInitializerNested(t *testing.T) {
	text := "(VECTOR(uint8_t, 8))((VECTOR(uint8_t, 4))(a, (VECTOR(uint8_t, 2))(b, c), d), e, f, g, h)"
	if err := CheckInitializer(text, 8); err != nil {
		t.Fatalf("check: %v", err)
	}
	node, _ := ParseInitializer(text)
	if node.Depth() != 3 {
		t.Fatalf("depth %d, want 3", node.Depth())
	}
}

func TestCheckInitializerRejects(t *testing.T) {
	cases := map[string]struct {
		text  string
		width int
	}{
		"short":     {"(VECTOR(int8_t, 4))(a, b, c)", 4},
		"long":      {"(VECTOR(int8_t, 2))(a, b, c)", 2},
		"width":     {"(VECTOR(int8_t, 2))(a, b)", 4},
		"elem":      {"(VECTOR(int8_t, 4))((VECTOR(int16_t, 2))(a, b), c, d)", 4},
		"unclosed":  {"(VECTOR(int8_t, 2))(a, b", 2},
		"trailing":  {"(VECTOR(int8_t, 2))(a, b))", 2},
		"noheader":  {"(a, b)", 2},
		"emptyitem": {"(VECTOR(int8_t, 2))(a, )", 2},
	}
	for name, tc := range cases {
		if err := CheckInitializer(tc.text, tc.width); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestChecksumRefs(t *testing.T) {
	text := "    transparent_crc(v.x, \"v.x\", print_hash_value);\n" +
		"    transparent_crc(v.y, \"v.y\", print_hash_value);\n"
	refs, err := ChecksumRefs(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(refs, []string{"v.x", "v.y"}) {
		t.Fatalf("refs %v", refs)
	}
	if refs, err := ChecksumRefs(""); err != nil || len(refs) != 0 {
		t.Fatalf("empty text: %v %v", refs, err)
	}
}

func TestChecksumRefsRejectsMismatchedLabel(t *testing.T) {
	if _, err := ChecksumRefs("transparent_crc(v.x, \"v.y\", print_hash_value);\n"); err == nil {
		t.Fatalf("expected label mismatch error")
	}
	if _, err := ChecksumRefs("printf(\"%d\", v.x);\n"); err == nil {
		t.Fatalf("expected non-checksum error")
	}
}
