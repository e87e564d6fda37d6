package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/checklist"
)

// ErrDocumentExists is returned by Create when a document with the derived
// name is already present. Callers treat it as a skip, not a failure.
var ErrDocumentExists = errors.New("document already exists")

// Sink is the output store for generated documents. Documents are created
// once and never deleted by this system; after creation only their embedded
// holiday copy changes, through WriteHolidays.
type Sink interface {
	Exists(name string) (bool, error)
	Create(doc *checklist.Document) error
	List() ([]string, error)
	Read(name string) (*checklist.Document, error)
	// WriteHolidays overwrites the document's embedded holiday copy and
	// stored fingerprint in full.
	WriteHolidays(name string, set calendar.Set) error
}

// DirSink stores one YAML file per document in a directory. Derived names
// are already sanitized for file systems, so the file name is simply the
// document name plus an extension.
type DirSink struct {
	dir string
}

const docExt = ".yaml"

// NewDirSink creates the sink, making the directory if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

func (s *DirSink) path(name string) string {
	return filepath.Join(s.dir, name+docExt)
}

// Exists reports whether a document with the name is already present.
func (s *DirSink) Exists(name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat document %q: %w", name, err)
	}
	return true, nil
}

// Create writes a new document. An existing document with the same name is
// never overwritten; ErrDocumentExists comes back instead.
func (s *DirSink) Create(doc *checklist.Document) error {
	exists, err := s.Exists(doc.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDocumentExists, doc.Name)
	}
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", doc.Name, err)
	}
	if err := os.WriteFile(s.path(doc.Name), data, 0o644); err != nil {
		return fmt.Errorf("write document %q: %w", doc.Name, err)
	}
	return nil
}

// List returns the names of all stored documents, sorted.
func (s *DirSink) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), docExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), docExt))
	}
	sort.Strings(names)
	return names, nil
}

// Read loads a stored document by name.
func (s *DirSink) Read(name string) (*checklist.Document, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", name, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", name, err)
	}
	return doc, nil
}

// WriteHolidays replaces the document's embedded holiday copy and stored
// fingerprint, leaving everything else untouched.
func (s *DirSink) WriteHolidays(name string, set calendar.Set) error {
	doc, err := s.Read(name)
	if err != nil {
		return err
	}
	doc.Holidays = set
	doc.Fingerprint = set.Fingerprint()
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write document %q: %w", name, err)
	}
	return nil
}
