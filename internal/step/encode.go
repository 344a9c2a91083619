package step

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ucs2 encodes BMP characters as big-endian UTF-16 code units.
var ucs2 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// EncodeString returns s as a quoted Part 21 string literal.
func EncodeString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	var wide []rune
	flushWide := func() {
		if len(wide) == 0 {
			return
		}
		enc, err := ucs2.NewEncoder().String(string(wide))
		if err == nil {
			b.WriteString(`\X2\`)
			for _, c := range []byte(enc) {
				fmt.Fprintf(&b, "%02X", c)
			}
			b.WriteString(`\X0\`)
		}
		wide = wide[:0]
	}
	for _, r := range s {
		switch {
		case r == '\'':
			flushWide()
			b.WriteString("''")
		case r == '\\':
			flushWide()
			b.WriteString(`\\`)
		case r >= 0x20 && r < 0x7F:
			flushWide()
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			// control characters are not representable; drop them
			flushWide()
		case r <= 0xFF:
			flushWide()
			if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
				fmt.Fprintf(&b, `\X\%02X`, c)
			}
		case r <= 0xFFFF:
			wide = append(wide, r)
		default:
			flushWide()
			fmt.Fprintf(&b, `\X4\%08X\X0\`, r)
		}
	}
	flushWide()
	b.WriteByte('\'')
	return b.String()
}

// FormatReal formats v as a Part 21 real: the mantissa always carries a
// decimal point and the exponent marker is upper case.
func FormatReal(v float64) string {
	if v == 0 {
		return "0."
	}
	s := strings.ToUpper(strconv.FormatFloat(v, 'G', 15, 64))
	if strings.ContainsRune(s, '.') {
		return s
	}
	if i := strings.IndexByte(s, 'E'); i >= 0 {
		return s[:i] + "." + s[i:]
	}
	return s + "."
}
