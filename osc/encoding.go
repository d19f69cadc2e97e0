package osc

const (
	bit32Size = 4
	bit64Size = 8

	// MaxPacketSize is the largest datagram the package reads, and the upper
	// bound on a decoded blob length.
	MaxPacketSize = 65535

	bundleTagString = "#bundle"
	bundleHeader    = bundleTagString + "\x00"
	// bundleHeaderSize covers the padded "#bundle" string and the time tag.
	bundleHeaderSize = len(bundleHeader) + bit64Size
)

////
// Padding helpers
////

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}

// paddedStringSize returns the wire size of an OSC-string holding n bytes:
// at least one NUL, rounded up to a 4 byte boundary.
func paddedStringSize(n int) int {
	n++
	return n + padBytesNeeded(n)
}

// appendPaddedString appends str, its NUL terminator and the padding bytes to b.
// The caller is responsible for str being valid ASCII without NULs.
func appendPaddedString(b []byte, str string) []byte {
	b = append(b, str...)
	for i := paddedStringSize(len(str)) - len(str); i > 0; i-- {
		b = append(b, 0)
	}
	return b
}

// checkString reports why str can't be written as an OSC-string, if it can't.
func checkString(str string) error {
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case c == 0:
			return encodeErr("string %q contains a NUL byte at %d", str, i)
		case c >= 0x80:
			return encodeErr("string %q contains non-ASCII byte %#x at %d", str, c, i)
		}
	}
	return nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
