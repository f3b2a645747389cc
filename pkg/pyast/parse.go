package pyast

import (
	"bytes"
	_ "embed"
	"os/exec"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

//go:embed dump_ast.py
var helperScript string

// Parser runs the host interpreter's parser over source text.
type Parser struct {
	// Python is the interpreter executable, e.g. "python3".
	Python string
}

// Parse returns the tree of src. filename is only used in positions and
// diagnostics.
func (p *Parser) Parse(filename string, src []byte) (*Module, error) {
	python := p.Python
	if python == "" {
		python = "python3"
	}

	cmd := exec.Command(python, "-c", helperScript, filename)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	glog.V(3).Infof("parsing %s with %s", filename, python)
	runErr := cmd.Run()

	// A syntax error still produces a decodable document.
	if stdout.Len() > 0 {
		mod, err := Decode(&stdout)
		if err == nil && runErr != nil {
			return nil, errors.Wrapf(runErr, "%s exited after printing a tree", python)
		}
		return mod, err
	}
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, errors.Wrapf(runErr, "running %s", python)
		}
		return nil, errors.Wrapf(runErr, "running %s: %s", python, msg)
	}
	return nil, errors.Errorf("%s produced no syntax tree for %s", python, filename)
}
