package loader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Documents []Record `yaml:"documents"`
}

// FileSource reads a YAML file with a top-level "documents" list. A missing
// status means ACTUAL.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(_ context.Context) ([]Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading document file %s: %w", s.Path, err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes the document file format.
func ParseYAML(data []byte) ([]Record, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document file: %w", err)
	}
	return doc.Documents, nil
}
