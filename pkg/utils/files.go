package utils

import "path/filepath"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// Artifacts names the files produced for one source file.
type Artifacts struct {
	Source  string // generated C++ source, <input>.cc
	Binary  string // native executable, <input>.out
	Include string // directory holding the runtime header
}

// ArtifactsFor derives the output names for input. The runtime header goes
// to includeDir, or next to the generated source when includeDir is empty.
func ArtifactsFor(input, includeDir string) (Artifacts, error) {
	full, parent, err := GetPathInfo(input)
	if err != nil {
		return Artifacts{}, err
	}
	if includeDir == "" {
		includeDir = filepath.Join(parent, ".compy")
	}
	return Artifacts{
		Source:  full + ".cc",
		Binary:  full + ".out",
		Include: includeDir,
	}, nil
}
