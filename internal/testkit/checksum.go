package testkit

import (
	"fmt"
	"strings"
)

// ChecksumRefs parses transparent_crc lines and returns the referenced
// expressions in order. Each line must pass the same expression as value and
// label and end with the print flag.
func ChecksumRefs(text string) ([]string, error) {
	var refs []string
	for i, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(body, "transparent_crc(") || !strings.HasSuffix(body, ", print_hash_value);") {
			return nil, fmt.Errorf("line %d is not a checksum call: %q", i+1, line)
		}
		args := strings.TrimSuffix(strings.TrimPrefix(body, "transparent_crc("), ", print_hash_value);")
		value, label, ok := strings.Cut(args, ", ")
		if !ok {
			return nil, fmt.Errorf("line %d: missing label: %q", i+1, line)
		}
		if label != `"`+value+`"` {
			return nil, fmt.Errorf("line %d: label %s does not quote value %s", i+1, label, value)
		}
		refs = append(refs, value)
	}
	return refs, nil
}
