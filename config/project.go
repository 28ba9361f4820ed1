package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the optional per-repository configuration file.
const ProjectFile = ".gitscribe.yaml"

// Project holds settings checked into the repository.
type Project struct {
	ExtraPrompts []string `yaml:"extra_prompts"`
}

// LoadProject reads ProjectFile from the repository root. A missing or
// empty file yields a zero Project. Unknown keys are an error.
func LoadProject(root string) (Project, error) {
	path := filepath.Join(root, ProjectFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Project{}, nil
	}
	if err != nil {
		return Project{}, fmt.Errorf("read %s: %w", ProjectFile, err)
	}
	return ParseProject(data)
}

// ParseProject decodes project file content.
func ParseProject(data []byte) (Project, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Project
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Project{}, fmt.Errorf("parse %s: %w", ProjectFile, err)
	}
	return p, nil
}

// Instructions returns the project prompts followed by the run's own,
// dropping blank entries.
func (w Workflow) Instructions(p Project) []string {
	var out []string
	for _, s := range append(append([]string{}, p.ExtraPrompts...), w.ExtraPrompts...) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
