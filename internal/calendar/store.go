package calendar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store reads and writes the holiday set as a two-column (date, label) CSV
// file with a header row. It is both the seeding target and the canonical
// source for generation and reconciliation. The file may be hand-edited
// between runs; Load tolerates blank lines and re-applies the set invariants.
type Store struct {
	path string
}

// NewStore creates a store backed by the CSV file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the holiday set from the file. A missing file is an empty set,
// not an error: business-day arithmetic then degenerates to weekday skipping.
func (s *Store) Load() (Set, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Set{}, nil
	}
	if err != nil {
		return Set{}, fmt.Errorf("open holiday store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var holidays []Holiday
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Set{}, fmt.Errorf("read holiday store: %w", err)
		}
		if first {
			first = false
			continue // header row
		}
		if len(rec) < 2 || rec[0] == "" {
			continue
		}
		d, err := ParseDate(rec[0])
		if err != nil {
			return Set{}, fmt.Errorf("holiday store: bad date %q: %w", rec[0], err)
		}
		holidays = append(holidays, Holiday{Date: d, Label: rec[1]})
	}
	return NewSet(holidays), nil
}

// Save writes the set to the file, replacing prior contents. The write goes
// through a temp file and rename so a crash cannot leave a torn store.
func (s *Store) Save(set Set) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".holidays-*.csv")
	if err != nil {
		return fmt.Errorf("save holiday store: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"Date", "Holiday"}); err != nil {
		tmp.Close()
		return fmt.Errorf("save holiday store: %w", err)
	}
	for _, h := range set.Entries() {
		if err := w.Write([]string{h.Date.Format(DateFormat), h.Label}); err != nil {
			tmp.Close()
			return fmt.Errorf("save holiday store: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("save holiday store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save holiday store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save holiday store: %w", err)
	}
	return nil
}
