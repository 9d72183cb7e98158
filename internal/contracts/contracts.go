package contracts

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

// Contract names as declared in the embedded sources.
const (
	GLDToken = "GLDToken"
	Test     = "Test"
)

//go:embed sol/*.sol
var SourceFS embed.FS

// Sources returns every embedded Solidity file keyed by its base name.
func Sources() (map[string]string, error) {
	entries, err := fs.ReadDir(SourceFS, "sol")
	if err != nil {
		return nil, fmt.Errorf("failed to list contract sources: %w", err)
	}

	sources := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := SourceFS.ReadFile(path.Join("sol", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		sources[entry.Name()] = string(content)
	}
	return sources, nil
}

// ReadSource returns a single embedded source by file name, e.g. "Test.sol".
func ReadSource(fileName string) (string, error) {
	content, err := SourceFS.ReadFile(path.Join("sol", path.Base(fileName)))
	if err != nil {
		return "", fmt.Errorf("contract source %s not found: %w", fileName, err)
	}
	return string(content), nil
}
