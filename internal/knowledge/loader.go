package knowledge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when an interaction id is not in the corpus
var ErrNotFound = errors.New("interaction not found")

// Loader reads and writes corpus files under a base path. The base path is
// either a single YAML file or a directory of them.
type Loader struct {
	basePath string
}

// NewLoader creates a new corpus loader with the given base path
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadAll loads every interaction under the base path. Files are read in
// lexical order so corpus positions are stable between runs. Interactions
// without an id get one derived from their input.
func (l *Loader) LoadAll() ([]Interaction, error) {
	info, err := os.Stat(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat corpus: %w", err)
	}

	if !info.IsDir() {
		corpus, err := l.LoadFile(l.basePath)
		if err != nil {
			return nil, err
		}
		return assignIDs(corpus), nil
	}

	var corpus []Interaction
	err = filepath.Walk(l.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-YAML files
		if info.IsDir() || !isYAML(path) {
			return nil
		}

		loaded, err := l.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		corpus = append(corpus, loaded...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus directory: %w", err)
	}

	return assignIDs(corpus), nil
}

// LoadFile loads the interactions of a single YAML file
func (l *Loader) LoadFile(path string) ([]Interaction, error) {
	if err := l.validatePath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file CorpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return file.Interactions, nil
}

// LoadByID loads a specific interaction by its id
func (l *Loader) LoadByID(id string) (Interaction, error) {
	corpus, err := l.LoadAll()
	if err != nil {
		return Interaction{}, err
	}

	for _, in := range corpus {
		if in.ID == id {
			return in, nil
		}
	}

	return Interaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save writes corpus to path, replacing its contents
func (l *Loader) Save(path string, corpus []Interaction) error {
	if err := l.validatePath(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(CorpusFile{Interactions: corpus})
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}

	// #nosec G306 -- corpus files hold no secrets
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	return nil
}

// Append adds interactions to the file at path, creating it if needed
func (l *Loader) Append(path string, added ...Interaction) error {
	var corpus []Interaction
	if _, err := os.Stat(path); err == nil {
		corpus, err = l.LoadFile(path)
		if err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat corpus: %w", err)
	}

	return l.Save(path, append(corpus, added...))
}

// WritePath is the file new interactions are written to. For a directory
// base path this is learned.yaml inside it.
func (l *Loader) WritePath() string {
	if info, err := os.Stat(l.basePath); err == nil && info.IsDir() {
		return filepath.Join(l.basePath, "learned.yaml")
	}
	if isYAML(l.basePath) {
		return l.basePath
	}
	return filepath.Join(l.basePath, "learned.yaml")
}

// InteractionID derives a stable id from an interaction's input
func InteractionID(input string) string {
	return fmt.Sprintf("ix-%016x", xxhash.Sum64String(input))
}

// assignIDs fills in missing ids. Generated ids that collide with an
// earlier one get a numeric suffix.
func assignIDs(corpus []Interaction) []Interaction {
	seen := make(map[string]bool, len(corpus))
	for i := range corpus {
		if corpus[i].ID != "" {
			seen[corpus[i].ID] = true
		}
	}

	for i := range corpus {
		if corpus[i].ID != "" {
			continue
		}
		id := InteractionID(corpus[i].Input)
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s-%d", InteractionID(corpus[i].Input), n)
		}
		seen[id] = true
		corpus[i].ID = id
	}
	return corpus
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// validatePath ensures the given path is within the loader's base path
// and prevents directory traversal attacks, including through symlinks.
// A file base path admits only itself.
func (l *Loader) validatePath(path string) error {
	cleanPath, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cleanBase, err := resolvePath(l.basePath)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if cleanPath == cleanBase {
		return nil
	}

	relPath, err := filepath.Rel(cleanBase, cleanPath)
	if err != nil {
		return fmt.Errorf("failed to compute relative path: %w", err)
	}

	// If the relative path starts with "..", it's outside the base path
	if strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
		return fmt.Errorf("path traversal detected: %s is outside base path %s", path, l.basePath)
	}

	return nil
}

// resolvePath returns the absolute, symlink-free form of p. Paths that do
// not exist yet are resolved through their parent directory.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs)), nil
	}
	return abs, nil
}
