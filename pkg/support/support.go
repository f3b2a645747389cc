// Package support ships the C++ runtime header that translated programs
// include.
package support

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// HeaderName is the name translated units include as <HeaderName>.
const HeaderName = "std.hh"

//go:embed std.hh
var Header []byte

// Install writes the header into dir, creating dir if needed, and returns
// dir for use as an include path. An identical existing header is left
// untouched.
func Install(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating include directory %s", dir)
	}
	path := filepath.Join(dir, HeaderName)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, Header) {
		return dir, nil
	}
	if err := os.WriteFile(path, Header, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return dir, nil
}
