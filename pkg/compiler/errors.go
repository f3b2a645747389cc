package compiler

import (
	"fmt"

	"compy/pkg/pyast"
)

// UnsupportedError reports input outside the translatable subset. It is
// always fatal to the translation it came from.
type UnsupportedError struct {
	File   string
	Pos    pyast.Pos
	Kind   string
	Reason string
	Dump   string
}

func (e *UnsupportedError) Error() string {
	msg := "unsupported construct " + e.Kind
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	switch {
	case e.File != "" && e.Pos.Line > 0:
		return fmt.Sprintf("%s:%s: %s", e.File, e.Pos, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	case e.Pos.Line > 0:
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// Detail is the message followed by the structural dump of the node.
func (e *UnsupportedError) Detail() string {
	return e.Error() + "\n" + e.Dump
}

func unsupported(n pyast.Node, format string, args ...any) *UnsupportedError {
	return &UnsupportedError{
		Pos:    n.Position(),
		Kind:   n.Kind(),
		Reason: fmt.Sprintf(format, args...),
		Dump:   pyast.Dump(n),
	}
}
