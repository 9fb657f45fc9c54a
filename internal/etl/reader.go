package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"douyinsight/internal/errors"

	"github.com/xuri/excelize/v2"
)

// TableReader reads one tabular input file. CSV is the scraper's native
// export; XLSX is accepted for hand-curated drops. Input must be UTF-8
// (the source alphabet is not limited to ASCII); a leading BOM is stripped.
type TableReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewTableReader creates a reader, picking the parser from the extension.
func NewTableReader(filePath string) *TableReader {
	fileType := "csv"
	if ext := strings.ToLower(filepath.Ext(filePath)); ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &TableReader{filePath: filePath, fileType: fileType}
}

// Read loads the whole file into a Table. A missing file returns a
// SOURCE_MISSING error so callers can degrade to empty results.
func (r *TableReader) Read() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.SourceMissing(r.filePath)
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcel()
	default:
		return r.readCSV()
	}
}

func (r *TableReader) readCSV() (*Table, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.filePath)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // scraped rows are occasionally ragged
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV data from %s", r.filePath)
	}

	return tableFromRecords(records), nil
}

func (r *TableReader) readExcel() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("no sheets in %s", r.filePath))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheets[0])
	}

	return tableFromRecords(rows), nil
}

// tableFromRecords converts header + data rows to the map-per-row shape.
// Cells past the header width are dropped; short rows leave the remaining
// fields empty, which downstream coercion turns into typed defaults.
func tableFromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = h
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(rec) {
				row[header] = strings.TrimSpace(rec[j])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}
}
