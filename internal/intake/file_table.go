package intake

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRecordNotFound is returned by MarkGenerated for a key with no matching
// row.
var ErrRecordNotFound = errors.New("intake record not found")

// FileTable is a Table backed by a CSV file with a header row. It stands in
// for the real intake spreadsheet at the same contract.
type FileTable struct {
	path string
}

// NewFileTable creates a table backed by the CSV file at path.
func NewFileTable(path string) *FileTable {
	return &FileTable{path: path}
}

// Snapshot reads all records in source order. A row with an unparseable
// date fails the snapshot; the intake table is the system's source of truth
// and silently dropping rows from it would be worse than stopping.
func (t *FileTable) Snapshot() ([]Record, error) {
	header, rows, err := t.load()
	if err != nil {
		return nil, err
	}
	idx := columnIndex(header)

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		r, err := recordFromRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("intake row %d: %w", i+2, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Append adds a record as a new row. A missing file is created with the
// default header.
func (t *FileTable) Append(r Record) error {
	header, rows, err := t.load()
	if err != nil {
		return err
	}
	if header == nil {
		header = defaultHeader()
	}
	idx := columnIndex(header)

	row := make([]string, len(header))
	set := func(col, val string) {
		if i, ok := idx[col]; ok {
			row[i] = val
		}
	}
	set(ColPI, r.PI)
	set(ColEmail, r.Email)
	set(ColSponsor, r.Sponsor)
	set(ColCoInvestigators, r.CoInvestigators)
	set(ColOfficialDeadline, formatOptionalDate(r.OfficialDeadline))
	set(ColLeadOrgDeadline, formatOptionalDate(r.LeadOrgDeadline))
	set(ColExpectedSubmission, formatOptionalDate(r.ExpectedSubmission))
	set(ColGenerated, formatBool(r.Generated))

	return t.save(header, append(rows, row))
}

// MarkGenerated sets the generated flag on the row whose content key matches.
// The Generated column is added to the file if the header lacks it.
func (t *FileTable) MarkGenerated(key string) error {
	header, rows, err := t.load()
	if err != nil {
		return err
	}
	idx := columnIndex(header)

	genCol, ok := idx[ColGenerated]
	if !ok {
		header = append(header, ColGenerated)
		genCol = len(header) - 1
		idx = columnIndex(header)
	}

	found := false
	for i, row := range rows {
		r, err := recordFromRow(row, idx)
		if err != nil {
			return fmt.Errorf("intake row %d: %w", i+2, err)
		}
		if r.Key() != key {
			continue
		}
		for len(row) <= genCol {
			row = append(row, "")
		}
		row[genCol] = formatBool(true)
		rows[i] = row
		found = true
	}
	if !found {
		return fmt.Errorf("%w: key %s", ErrRecordNotFound, key)
	}
	return t.save(header, rows)
}

func (t *FileTable) load() (header []string, rows [][]string, err error) {
	f, err := os.Open(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open intake table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read intake table: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

func (t *FileTable) save(header []string, rows [][]string) error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, ".intake-*.csv")
	if err != nil {
		return fmt.Errorf("save intake table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("save intake table: %w", err)
	}
	for _, row := range rows {
		// Pad short rows so every line has the full column set.
		for len(row) < len(header) {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("save intake table: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("save intake table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save intake table: %w", err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("save intake table: %w", err)
	}
	return nil
}
