package tables

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dreamware/graphpart/internal/graphdata"
)

// Sentinel errors for the I/O and schema error taxonomy. Callers compare
// with errors.Is; a missing file or an empty header is reported by wrapping
// one of these with %w so the path is still visible in the message. Other
// open, read, create, and write failures wrap the underlying error instead.
var (
	// ErrMissingFile is returned when an expected input file does not exist.
	ErrMissingFile = errors.New("tables: input file not found")
	// ErrEmptyHeader is returned when a table or role file has no header
	// line at all (an empty file).
	ErrEmptyHeader = errors.New("tables: file has no header line")
)

// fieldSplit matches one or more consecutive tab characters, the field
// separator.
var fieldSplit = regexp.MustCompile("\t+")

// splitFields strips a trailing \r or \n and splits line on runs of tabs.
func splitFields(line string) []string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return fieldSplit.Split(line, -1)
}

// ReadTable reads a tab-separated file with a header line followed by zero
// or more data rows. Ragged rows (fewer columns than the header) are
// tolerated and preserved as-is; this implementation does not pad them,
// matching the reference's no-validation stance on schema errors.
func ReadTable(path string) (graphdata.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return graphdata.Table{}, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return graphdata.Table{}, fmt.Errorf("tables: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return graphdata.Table{}, fmt.Errorf("tables: read header of %s: %w", path, err)
		}
		return graphdata.Table{}, fmt.Errorf("%w: %s", ErrEmptyHeader, path)
	}
	header := splitFields(scanner.Text())

	var rows []graphdata.Row
	for scanner.Scan() {
		rows = append(rows, graphdata.Row(splitFields(scanner.Text())))
	}
	if err := scanner.Err(); err != nil {
		return graphdata.Table{}, fmt.Errorf("tables: read %s: %w", path, err)
	}

	return graphdata.Table{Header: header, Rows: rows}, nil
}

// ReadRoleSet reads a tab-separated file with a header line followed by one
// key per line in column 0, tolerating additional opaque columns.
func ReadRoleSet(path string) (graphdata.RoleSet, error) {
	table, err := ReadTable(path)
	if err != nil {
		return graphdata.RoleSet{}, err
	}
	keys := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		keys = append(keys, row.Key())
	}
	return graphdata.RoleSet{Header: table.Header, Keys: keys}, nil
}

// WriteTable writes a header line followed by one tab-separated line per
// row.
func WriteTable(path string, table graphdata.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tables: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeLine(w, table.Header); err != nil {
		return fmt.Errorf("tables: write header of %s: %w", path, err)
	}
	for _, row := range table.Rows {
		if err := writeLine(w, []string(row)); err != nil {
			return fmt.Errorf("tables: write row of %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("tables: flush %s: %w", path, err)
	}
	return nil
}

// WriteRoleSet writes a header line followed by one key per line.
func WriteRoleSet(path string, roleSet graphdata.RoleSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tables: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeLine(w, roleSet.Header); err != nil {
		return fmt.Errorf("tables: write header of %s: %w", path, err)
	}
	for _, key := range roleSet.Keys {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return fmt.Errorf("tables: write row of %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("tables: flush %s: %w", path, err)
	}
	return nil
}

func writeLine(w *bufio.Writer, fields []string) error {
	_, err := fmt.Fprintln(w, strings.Join(fields, "\t"))
	return err
}
