package pyast

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// SyntaxError is a parse failure reported by the host parser.
type SyntaxError struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.File, e.Line, e.Col, e.Msg)
}

func toSyntaxError(v map[string]any) error {
	e := &SyntaxError{}
	e.Msg, _ = v["msg"].(string)
	e.File, _ = v["filename"].(string)
	if n, ok := v["lineno"].(json.Number); ok {
		line, err := n.Int64()
		if err != nil {
			return errors.Wrap(err, "decoding syntax error")
		}
		e.Line = int(line)
	}
	if n, ok := v["offset"].(json.Number); ok {
		col, err := n.Int64()
		if err != nil {
			return errors.Wrap(err, "decoding syntax error")
		}
		e.Col = int(col)
	}
	return e
}
