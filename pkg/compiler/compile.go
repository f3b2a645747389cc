package compiler

import (
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"compy/pkg/pyast"
)

// TreeSource produces the syntax tree of a source file.
type TreeSource interface {
	Parse(filename string, src []byte) (*pyast.Module, error)
}

// Compile parses src and translates it. Unsupported constructs are returned
// as *UnsupportedError carrying filename.
func Compile(parser TreeSource, filename string, src []byte) (*Unit, error) {
	start := time.Now()
	mod, err := parser.Parse(filename, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filename)
	}
	glog.V(3).Infof("parsed %s: %d top-level statements in %v", filename, len(mod.Body), time.Since(start))

	return Translate(filename, mod)
}

// Translate runs the translator over an already parsed module.
func Translate(filename string, mod *pyast.Module) (*Unit, error) {
	unit, err := Generate(mod)
	if err != nil {
		var uerr *UnsupportedError
		if errors.As(err, &uerr) {
			uerr.File = filename
			return nil, uerr
		}
		return nil, errors.Wrapf(err, "translating %s", filename)
	}
	glog.V(3).Infof("translated %s into %d functions", filename, len(unit.Functions))
	return unit, nil
}
