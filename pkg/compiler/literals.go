package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	noneLiteral   = "::python::None"
	kwargsBuilder = "python::Keyword_Arguments{}"
	listInit      = "list::init"
)

// cppString renders s as a runtime string value: a C++ literal with the
// _str suffix. Control bytes use three-digit octal escapes so a following
// digit can never extend them.
func cppString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '?':
			// keeps "??x" from reading as a trigraph
			sb.WriteString(`\?`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\%03o`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteString(`"_str`)
	return sb.String()
}

// cppInt renders a decimal integer literal that must fit in 64 bits.
func cppInt(digits string) (string, bool) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(v, 10), true
}

func cppBool(value string) string {
	if value == "True" {
		return "true"
	}
	return "false"
}
