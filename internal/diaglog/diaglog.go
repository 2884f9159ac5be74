// Package diaglog keeps a CSV history of the warnings found by each check.
package diaglog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/chartseed/internal/model"
)

// Entry is one row in the diagnostics log.
type Entry struct {
	Timestamp  time.Time
	Kind       model.WarningKind
	Collection string
	Code       string
	Ref        string
	Message    string
}

// Header is the CSV header for diagnostics.csv.
const Header = "timestamp,kind,collection,code,ref,message"

const (
	numFields     = 6
	logDir        = "logs"
	logFile       = "logs/diagnostics.csv"
	colTimestamp  = 0
	colKind       = 1
	colCollection = 2
	colCode       = 3
	colRef        = 4
	colMessage    = 5
)

// FromWarnings stamps warnings with ts.
func FromWarnings(ts time.Time, warnings []model.Warning) []Entry {
	entries := make([]Entry, len(warnings))
	for i, w := range warnings {
		entries[i] = Entry{
			Timestamp:  ts,
			Kind:       w.Kind,
			Collection: w.Collection,
			Code:       w.Code,
			Ref:        w.Ref,
			Message:    w.Message,
		}
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colKind] = string(e.Kind)
	row[colCollection] = e.Collection
	row[colCode] = e.Code
	row[colRef] = e.Ref
	row[colMessage] = e.Message
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:  ts,
		Kind:       model.WarningKind(record[colKind]),
		Collection: record[colCollection],
		Code:       record[colCode],
		Ref:        record[colRef],
		Message:    record[colMessage],
	}, nil
}

// Append writes entries to <projectDir>/logs/diagnostics.csv, creating the
// file and header if needed.
func Append(projectDir string, entries []Entry) error {
	dir := filepath.Join(projectDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(projectDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening diagnostics log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <projectDir>/logs/diagnostics.csv.
// Returns an empty slice if the file does not exist.
func Read(projectDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(projectDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening diagnostics log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading diagnostics CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
