// Package runtime handles the infrastructure-level tasks like loading the
// participant catalog, storing the transcript and wiring the feed workers.
package runtime

import (
	"chat-feed/domain"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed directory/*.yaml
var directoryFolder embed.FS

// directoryFile is the YAML layout of a catalog file.
// A catalog may be split across several files, each holding any of the sections.
type directoryFile struct {
	Current *domain.Participant  `yaml:"current" validate:"-"`
	Peers   []domain.Participant `yaml:"peers" validate:"dive"`
	Content []string             `yaml:"content"`
}

// DirectoryLoader reads the participant catalog and the content pool from YAML files.
type DirectoryLoader struct {
	fs       fs.FS
	validate *validator.Validate
}

// NewDirectoryLoader reads from f. A nil f uses the catalog embedded in the binary.
func NewDirectoryLoader(f fs.FS) *DirectoryLoader {
	if f == nil {
		f = directoryFolder
	}
	return &DirectoryLoader{fs: f, validate: validator.New()}
}

// LoadAll merges every .yaml file of dir, in lexical order, into one directory.
func (l *DirectoryLoader) LoadAll(dir string) (*domain.Directory, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var merged directoryFile
	for _, entry := range entries {
		// We only process yaml files, skipping subdirectories
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		file, err := l.read(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		merged.merge(file)
	}
	return l.build(merged)
}

// Load reads a single catalog file holding every section.
func (l *DirectoryLoader) Load(name string) (*domain.Directory, error) {
	file, err := l.read(name)
	if err != nil {
		return nil, err
	}
	return l.build(file)
}

func (l *DirectoryLoader) read(name string) (directoryFile, error) {
	var file directoryFile
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return file, err
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parsing %s: %w", name, err)
	}
	if err := l.validate.Struct(file); err != nil {
		return file, fmt.Errorf("validating %s: %w", name, err)
	}
	return file, nil
}

func (l *DirectoryLoader) build(file directoryFile) (*domain.Directory, error) {
	current := domain.Participant{Name: "Me"}
	if file.Current != nil {
		current = *file.Current
	}
	return domain.NewDirectory(current, file.Peers, file.Content)
}

// merge keeps the first current user it sees and appends peers and content.
func (d *directoryFile) merge(other directoryFile) {
	if d.Current == nil {
		d.Current = other.Current
	}
	d.Peers = append(d.Peers, other.Peers...)
	d.Content = append(d.Content, other.Content...)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
