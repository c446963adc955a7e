// Package storage reads and writes saved requests, collections and
// environments as YAML files under a project folder.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// varPattern matches {{VAR_NAME}} or {{env:VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// SaveRequest saves a request to a YAML file
func SaveRequest(req Request, filePath string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return writeYAML(withYAMLExt(filePath), data)
}

// LoadRequest loads a request from a YAML file
func LoadRequest(filePath string) (*Request, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &req, nil
}

// FindRequest loads a saved request by display name or file name.
func FindRequest(baseDir, name string) (*Request, error) {
	return LoadRequest(RequestPath(baseDir, name))
}

// RequestPath maps a request name to its file under the requests directory.
// "Create User" becomes requests/create-user.yaml; names that already carry a
// YAML extension are used as-is.
func RequestPath(baseDir, name string) string {
	filename := name
	if !hasYAMLExt(filename) {
		filename = Slug(filename) + ".yaml"
	}
	return filepath.Join(GetRequestsDir(baseDir), filename)
}

// Slug turns a display name into a file name: "Create User" becomes "create-user".
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// ListRequests lists all saved requests in the requests directory, relative
// to it and sorted.
func ListRequests(baseDir string) ([]string, error) {
	return listYAML(GetRequestsDir(baseDir), true)
}

// LoadCollection loads a collection file holding several requests.
func LoadCollection(filePath string) (*Collection, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse collection YAML: %w", err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(filePath), ".yaml"), ".yml")
	}
	return &c, nil
}

// SaveCollection saves a collection to a YAML file
func SaveCollection(c Collection, filePath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}
	return writeYAML(withYAMLExt(filePath), data)
}

// ListCollections lists the collection names under baseDir.
func ListCollections(baseDir string) ([]string, error) {
	return listYAML(GetCollectionsDir(baseDir), false)
}

// CollectionPath returns the file path of the named collection.
func CollectionPath(baseDir, name string) string {
	return namedYAML(GetCollectionsDir(baseDir), name)
}

// GetRequestsDir returns the requests directory path
func GetRequestsDir(baseDir string) string {
	return filepath.Join(baseDir, "requests")
}

// GetEnvironmentsDir returns the environments directory path
func GetEnvironmentsDir(baseDir string) string {
	return filepath.Join(baseDir, "environments")
}

// GetCollectionsDir returns the collections directory path
func GetCollectionsDir(baseDir string) string {
	return filepath.Join(baseDir, "collections")
}

func writeYAML(filePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// namedYAML maps name to dir/name.yaml, or to an existing dir/name.yml.
func namedYAML(dir, name string) string {
	if hasYAMLExt(name) {
		return filepath.Join(dir, name)
	}
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := os.Stat(filepath.Join(dir, name+".yml")); err == nil {
			return filepath.Join(dir, name+".yml")
		}
	}
	return path
}

func hasYAMLExt(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func withYAMLExt(filePath string) string {
	if hasYAMLExt(filePath) {
		return filePath
	}
	return filePath + ".yaml"
}

// listYAML returns the YAML files under dir. Recursive listings keep the
// relative path and extension; flat listings return bare names.
func listYAML(dir string, recursive bool) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	var names []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasYAMLExt(path) {
			return nil
		}
		if recursive {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			names = append(names, filepath.ToSlash(rel))
		} else {
			names = append(names, strings.TrimSuffix(strings.TrimSuffix(d.Name(), ".yaml"), ".yml"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	sort.Strings(names)
	return names, nil
}
