// Package project derives the current application name from the project
// manifest in the working directory.
package project

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project manifest looked up in the working directory.
const ManifestName = "project.yaml"

type manifest struct {
	Name string `yaml:"name"`
}

// LocalName returns the application name declared by the project manifest
// in dir. Any failure mode — missing file, unreadable file, bad YAML, empty
// name — means there is no local project; none of them is an error.
func LocalName(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return "", false
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return "", false
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		return "", false
	}

	return name, true
}
