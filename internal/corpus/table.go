package corpus

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Column names of the subtitle table.
const (
	ColumnEpisode = "episode"
	ColumnText    = "text"
	ColumnStart   = "start"
)

// ErrUnknownColumn reports a column name missing from a table header.
var ErrUnknownColumn = errors.New("unknown column")

// Layout selects the delimiter and columns of a subtitle table.
type Layout struct {
	Delimiter  rune
	Timestamps bool
}

// Columns returns the header row for the layout.
func (l Layout) Columns() []string {
	if l.Timestamps {
		return []string{ColumnEpisode, ColumnText, ColumnStart}
	}
	return []string{ColumnEpisode, ColumnText}
}

func (l Layout) delimiter() rune {
	if l.Delimiter == 0 {
		return ','
	}
	return l.Delimiter
}

// Row is one line of the subtitle table.
type Row struct {
	Episode string
	Text    string
	Start   time.Duration
}

// Writer emits subtitle table rows.
type Writer struct {
	layout Layout
	csv    *csv.Writer
	header bool
}

// NewWriter returns a writer that emits the header before the first row.
func NewWriter(w io.Writer, layout Layout) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = layout.delimiter()
	return &Writer{layout: layout, csv: cw}
}

// WriteHeader writes the header row. Write calls it implicitly.
func (w *Writer) WriteHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	if err := w.csv.Write(w.layout.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// Write appends one row. Start is written in whole milliseconds.
func (w *Writer) Write(row Row) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	record := []string{row.Episode, row.Text}
	if w.layout.Timestamps {
		record = append(record, strconv.FormatInt(row.Start.Milliseconds(), 10))
	}
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

// Table is an in-memory delimited table with a header row.
type Table struct {
	Header    []string
	Records   [][]string
	Delimiter rune
}

// ReadTable parses a delimited table whose first record is the header.
func ReadTable(r io.Reader, delimiter rune) (*Table, error) {
	if delimiter == 0 {
		delimiter = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("read table: missing header row")
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return &Table{Header: header, Records: records[1:], Delimiter: delimiter}, nil
}

func (t *Table) index(name string) (int, error) {
	for i, column := range t.Header {
		if column == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %s)", ErrUnknownColumn, name, strings.Join(t.Header, ", "))
}

// Column returns the values of the named column. Short records yield "".
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.index(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.Records))
	for i, record := range t.Records {
		if idx < len(record) {
			values[i] = record[idx]
		}
	}
	return values, nil
}

// Set replaces the named column. values must have one entry per record.
func (t *Table) Set(name string, values []string) error {
	idx, err := t.index(name)
	if err != nil {
		return err
	}
	if len(values) != len(t.Records) {
		return fmt.Errorf("set column %q: %d values for %d records", name, len(values), len(t.Records))
	}
	for i := range t.Records {
		for len(t.Records[i]) <= idx {
			t.Records[i] = append(t.Records[i], "")
		}
		t.Records[i][idx] = values[i]
	}
	return nil
}

// Write emits the table, including the header when header is true.
func (t *Table) Write(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = t.Delimiter
	if cw.Comma == 0 {
		cw.Comma = ','
	}
	if header {
		if err := cw.Write(t.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// DetectDelimiter reads the header line of path and picks the delimiter it
// uses. When the file cannot be read the extension decides: tab for .tsv,
// comma otherwise.
func DetectDelimiter(path string) rune {
	if file, err := os.Open(path); err == nil {
		defer file.Close()
		line, err := bufio.NewReader(file).ReadString('\n')
		if err == nil || (errors.Is(err, io.EOF) && line != "") {
			return SniffDelimiter(line)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// SniffDelimiter returns tab when a header line has more tabs than commas.
func SniffDelimiter(header string) rune {
	if strings.Count(header, "\t") > strings.Count(header, ",") {
		return '\t'
	}
	return ','
}
