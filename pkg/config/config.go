// Package config holds the external tool settings of compy.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// FileName is the config file looked up in the working directory.
const FileName = "compy.toml"

// Config selects the native compiler and the interpreter used by compy.
type Config struct {
	// CXX is the C++ compiler executable.
	CXX string `toml:"cxx"`
	// CXXFlags are extra compiler arguments, split like a shell would.
	CXXFlags string `toml:"cxxflags"`
	// Python is the interpreter used to parse sources and to run them in
	// differential tests.
	Python string `toml:"python"`
	// IncludeDir is where the runtime header is installed. Empty means next
	// to the generated source.
	IncludeDir string `toml:"include_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CXX:      "g++",
		CXXFlags: "-std=c++20 -Wall -Wextra",
		Python:   "python3",
	}
}

// Load reads path on top of the defaults and then applies COMPY_*
// environment overrides. An empty path reads FileName if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if _, err := os.Stat(path); err == nil || explicit {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides settings from COMPY_CXX, COMPY_CXXFLAGS, COMPY_PYTHON
// and COMPY_INCLUDE_DIR when they are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	for key, field := range map[string]*string{
		"COMPY_CXX":         &c.CXX,
		"COMPY_CXXFLAGS":    &c.CXXFlags,
		"COMPY_PYTHON":      &c.Python,
		"COMPY_INCLUDE_DIR": &c.IncludeDir,
	} {
		if v := getenv(key); v != "" {
			*field = v
		}
	}
}

// Flags splits CXXFlags into arguments.
func (c Config) Flags() ([]string, error) {
	flags, err := shlex.Split(c.CXXFlags)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing cxxflags %q", c.CXXFlags)
	}
	return flags, nil
}
