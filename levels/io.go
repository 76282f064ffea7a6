package levels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Marshal encodes doc as indented JSON.
func Marshal(doc MapDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal decodes a map document. Syntax and type errors are reported as
// ErrMalformedDocument.
func Unmarshal(data []byte) (MapDocument, error) {
	var doc MapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return MapDocument{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return doc, nil
}

// Save writes doc to path, creating the parent directory if needed.
func Save(path string, doc MapDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	return f.Close()
}

// Load reads a map document from disk.
func Load(path string) (MapDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return MapDocument{}, fmt.Errorf("levels: load %s: %w", path, err)
	}
	doc, err := Unmarshal(b)
	if err != nil {
		return MapDocument{}, fmt.Errorf("levels: load %s: %w", path, err)
	}
	return doc, nil
}
