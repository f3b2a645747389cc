package pyast

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

const dumpIndent = "  "

// spewConfig dumps hand-built nodes, which carry no host object.
var spewConfig = &spew.ConfigState{
	Indent:                  dumpIndent,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders the structure of n in the layout of the host's ast.dump with
// indent=2: fields in declaration order, None and empty lists omitted, and
// nodes with at most three simple fields kept on one line.
func Dump(n Node) string {
	if n == nil {
		return "None"
	}
	if raw := n.meta().Raw; raw != nil {
		s, _ := formatRaw(raw, 0)
		return s
	}
	return strings.TrimRight(spewConfig.Sdump(n), "\n")
}

// Sdump renders the typed tree rooted at n, including Go-side field names.
func Sdump(n Node) string {
	return spewConfig.Sdump(n)
}

func formatRaw(v any, level int) (string, bool) {
	level++
	prefix := "\n" + strings.Repeat(dumpIndent, level)
	sep := ",\n" + strings.Repeat(dumpIndent, level)

	switch v := v.(type) {
	case *Object:
		args := make([]string, 0, len(v.Fields))
		allSimple := true
		for _, f := range v.Fields {
			if f.Value == nil {
				continue
			}
			if items, ok := f.Value.([]any); ok && len(items) == 0 {
				continue
			}
			s, simple := formatRaw(f.Value, level)
			allSimple = allSimple && simple
			args = append(args, f.Name+"="+s)
		}
		if allSimple && len(args) <= 3 {
			return v.Type + "(" + strings.Join(args, ", ") + ")", len(args) == 0
		}
		return v.Type + "(" + prefix + strings.Join(args, sep) + ")", false
	case []any:
		if len(v) == 0 {
			return "[]", true
		}
		items := make([]string, len(v))
		for i, item := range v {
			items[i], _ = formatRaw(item, level)
		}
		return "[" + prefix + strings.Join(items, sep) + "]", false
	case *Const:
		return v.Repr, true
	case string:
		return pyRepr(v), true
	case json.Number:
		return v.String(), true
	case bool:
		if v {
			return "True", true
		}
		return "False", true
	case nil:
		return "None", true
	}
	return fmt.Sprintf("%v", v), true
}

// pyRepr quotes s the way the host's repr() does for str values.
func pyRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == quote:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(quote)
	return sb.String()
}
