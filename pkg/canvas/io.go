package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Unmarshal decodes a canvas document from JSON bytes.
// Missing "nodes" or "edges" arrays decode as empty.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode canvas: %w", err)
	}
	return d, nil
}

// Marshal encodes a document as indented JSON.
// Nil node or edge slices are written as empty arrays, never null.
func Marshal(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(normalize(d), "", "\t")
	if err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return data, nil
}

// Read decodes a canvas document from r. Read does not close r.
func Read(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode canvas: %w", err)
	}
	return d, nil
}

// Write encodes d as indented JSON to w.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(normalize(d)); err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}
	return nil
}

// ReadFile reads a .canvas file.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes d to path with 0644 permissions, replacing any existing file.
func WriteFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func normalize(d Document) Document {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	return d
}
