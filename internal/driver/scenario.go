package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one YAML file of lattice checks.
type Scenario struct {
	Name  string `yaml:"name" msgpack:"name"`
	Cases []Case `yaml:"cases" msgpack:"cases"`
}

// Case is a single operation and its expected rendering.
type Case struct {
	Name   string   `yaml:"name" msgpack:"name"`
	Op     string   `yaml:"op" msgpack:"op"`
	Args   []string `yaml:"args" msgpack:"args"`
	Expect string   `yaml:"expect" msgpack:"expect"`
}

// ParseScenario decodes YAML, rejecting unknown fields.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return &sc, nil
		}
		return nil, err
	}
	return &sc, nil
}

// LoadScenario reads and decodes path, also returning the raw bytes for
// cache keys.
func LoadScenario(path string) (*Scenario, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, data, fmt.Errorf("%s: %w", path, err)
	}
	return sc, data, nil
}

func isScenarioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ListScenarioFiles expands directories into their *.yaml/*.yml files and
// returns a sorted, de-duplicated list.
func ListScenarioFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isScenarioFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
