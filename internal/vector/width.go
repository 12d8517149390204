package vector

import "fmt"

// Width is the number of lanes of a collective vector.
type Width uint8

const (
	Width2  Width = 2
	Width4  Width = 4
	Width8  Width = 8
	Width16 Width = 16
)

// Widths lists the legal widths in ascending order.
var Widths = [...]Width{Width2, Width4, Width8, Width16}

const (
	smallAlphabet = "xyzw"
	bigAlphabet   = "0123456789abcdef"
	// swizzlePrefix introduces numeric lane selectors on vectors wider than 4.
	swizzlePrefix = 's'
)

// Valid reports whether w is one of the legal widths.
func (w Width) Valid() bool {
	switch w {
	case Width2, Width4, Width8, Width16:
		return true
	}
	return false
}

// Lanes returns w as an int.
func (w Width) Lanes() int { return int(w) }

// laneChar maps a lane index to its swizzle symbol for a vector of width w.
func (w Width) laneChar(index int) byte {
	if index < 0 || index >= int(w) {
		panic(fmt.Errorf("vector: lane %d out of range for width %d", index, w))
	}
	if w <= 4 {
		return smallAlphabet[index]
	}
	return bigAlphabet[index]
}

// largestBelow returns the largest legal width not exceeding limit.
func largestBelow(limit int) (Width, bool) {
	for i := len(Widths) - 1; i >= 0; i-- {
		if int(Widths[i]) <= limit {
			return Widths[i], true
		}
	}
	return 0, false
}

// ParseWidth converts n into a Width, rejecting anything but 2, 4, 8 and 16.
func ParseWidth(n int) (Width, error) {
	if n < 0 || n > int(Width16) || !Width(n).Valid() {
		return 0, fmt.Errorf("invalid vector width %d (expected 2|4|8|16)", n)
	}
	return Width(n), nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
