// Package spreadsheet turns uploaded CSV and Excel files into candidate records.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"exoplanet-explorer/models"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns must be present for the single-row upload.
var RequiredColumns = []string{"koi_prad", "koi_period", "koi_steff", "koi_depth", "koi_model_snr"}

var (
	ErrEmpty             = errors.New("spreadsheet is empty or malformed")
	ErrUnsupportedFormat = errors.New("unsupported file type")
)

// MissingColumnError names the first required column the upload lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return "missing required column: " + e.Column
}

// TooManyRowsError is returned when an upload exceeds the row limit.
type TooManyRowsError struct {
	Rows, Limit int
}

func (e *TooManyRowsError) Error() string {
	return fmt.Sprintf("too many rows (%d > %d)", e.Rows, e.Limit)
}

// Sheet is the first sheet of an upload with normalized headers.
type Sheet struct {
	FileName string
	Headers  []string
	Rows     [][]string
}

// Parse reads a .csv, .xlsx or .xlsm file. Only the first sheet is used.
// Legacy binary .xls workbooks are rejected as unsupported.
func Parse(fileName string, r io.Reader) (*Sheet, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	sheet := &Sheet{
		FileName: fileName,
		Headers:  normalizeHeaders(rows[0]),
	}
	for _, row := range rows[1:] {
		if !blank(row) {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrEmpty
	}
	return sheet, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV error: %w", err)
	}
	return rows, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excel error: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("Excel error: %w", err)
	}
	return rows, nil
}

// normalizeHeaders trims headers, names blank ones Column_N and suffixes
// repeats (koi_period, koi_period_2) so no column shadows another.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s_%d", h, n)
		}
		headers[i] = h
	}
	return headers
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Record converts row i into a candidate. Blank cells are omitted, finite
// numeric cells become float64 and everything else (NaN and Inf included)
// stays a string.
func (s *Sheet) Record(i int) models.Candidate {
	row := s.Rows[i]
	c := make(models.Candidate, len(s.Headers))
	for col, h := range s.Headers {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			c[h] = f
		} else {
			c[h] = cell
		}
	}
	return c
}

// Records converts every row.
func (s *Sheet) Records() []models.Candidate {
	out := make([]models.Candidate, len(s.Rows))
	for i := range s.Rows {
		out[i] = s.Record(i)
	}
	return out
}

// LoadSingle returns the first row of an upload and rejects it when any
// required column is absent or blank.
func LoadSingle(fileName string, r io.Reader) (models.Candidate, error) {
	sheet, err := Parse(fileName, r)
	if err != nil {
		return nil, err
	}
	first := sheet.Record(0)
	for _, col := range RequiredColumns {
		if !first.Has(col) {
			return nil, &MissingColumnError{Column: col}
		}
	}
	return first, nil
}

// LoadAll returns every row of an upload. Missing fields are left to the
// payload transform. maxRows <= 0 disables the limit.
func LoadAll(fileName string, r io.Reader, maxRows int) ([]models.Candidate, error) {
	sheet, err := Parse(fileName, r)
	if err != nil {
		return nil, err
	}
	if maxRows > 0 && len(sheet.Rows) > maxRows {
		return nil, &TooManyRowsError{Rows: len(sheet.Rows), Limit: maxRows}
	}
	return sheet.Records(), nil
}
