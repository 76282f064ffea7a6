package levels

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// LoadFromFS reads one of the bundled sample maps.
func LoadFromFS(name string) (MapDocument, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return MapDocument{}, fmt.Errorf("read level: %w", err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return MapDocument{}, fmt.Errorf("unmarshal level: %w", err)
	}
	return doc, nil
}

// Bundled lists the bundled sample maps.
func Bundled() []string {
	names, _ := fs.Glob(LevelsFS, "*.json")
	return names
}
