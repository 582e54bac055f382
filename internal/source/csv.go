package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/budgetbook/internal/model"
)

// CSV file names inside an input directory.
const (
	DatesFile = "dates.csv"
	ItemsFile = "items.csv"
)

func readCSVDir(dir string) (dates, items *Table, err error) {
	items, err = readCSVFile(filepath.Join(dir, ItemsFile), ItemsTable, ItemColumns)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &model.InputShapeError{Table: ItemsTable, Reason: fmt.Sprintf("%s not found in %s", ItemsFile, dir)}
		}
		return nil, nil, err
	}

	dates, err = readCSVFile(filepath.Join(dir, DatesFile), DatesTable, DateColumns)
	if errors.Is(err, os.ErrNotExist) {
		return nil, items, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return dates, items, nil
}

func readCSVFile(path, name string, columns []string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the configured input directory
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f, name, columns)
}

// ReadCSV reads a CSV table whose header names the columns. Cells are
// reordered into the canonical column order; unknown columns are ignored.
func ReadCSV(r io.Reader, name string, columns []string) (*Table, error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.InputShapeError{Table: name, Reason: "empty file"}
		}
		return nil, fmt.Errorf("reading %s header: %w", name, err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	srcIdx := make([]int, len(columns))
	for c, col := range columns {
		i, ok := pos[col]
		if !ok {
			if !optionalColumns[col] {
				return nil, &model.InputShapeError{Table: name, Column: col, Reason: "missing column"}
			}
			i = -1
		}
		srcIdx[c] = i
	}

	t := &Table{Name: name, Columns: columns}
	row := 1
	for {
		fields, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("reading %s row %d: %w", name, row, err)
		}
		cells := make([]string, len(columns))
		for c, i := range srcIdx {
			if i >= 0 && i < len(fields) {
				cells[c] = fields[i]
			}
		}
		rec := Record{Row: row, Cells: cells}
		if rec.blank() {
			continue
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}
