package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"focuslock/internal/modules/attest/domain"
	attestout "focuslock/internal/modules/attest/port/out"

	"gopkg.in/yaml.v3"
)

type FileManifestStore struct {
	basePath string
	path     string
}

// NewFileManifestStore reads attestor manifests from the given YAML file.
// Relative binary paths resolve against the file's directory so a whole
// setup can be moved as one tree.
func NewFileManifestStore(path string) attestout.ManifestStore {
	return &FileManifestStore{basePath: filepath.Dir(path), path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read attestor manifest store: %w", err)
	}
	var doc struct {
		Attestors []domain.Manifest `yaml:"attestors"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode attestor manifests: %w", err)
	}
	manifests := doc.Attestors
	if manifests == nil {
		manifests = []domain.Manifest{}
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, manifests[i].Binary))
		}
	}
	return manifests, nil
}
