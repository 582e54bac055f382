package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the kind of input the path points at.
type Format int

const (
	FormatWorkbook Format = iota + 1
	FormatCSVDir
)

func (f Format) String() string {
	switch f {
	case FormatWorkbook:
		return "workbook"
	case FormatCSVDir:
		return "csv"
	default:
		return "unknown"
	}
}

// Detect reports whether path is an Excel workbook or a CSV directory.
func Detect(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return FormatCSVDir, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatWorkbook, nil
	}
	return 0, fmt.Errorf("unsupported input %s: expected an .xlsx workbook or a directory of CSV files", path)
}

// Read loads and parses both input tables.
func Read(path string, opts Options) (*Tables, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}

	var dates, items *Table
	switch format {
	case FormatWorkbook:
		dates, items, err = readWorkbook(path, opts)
	case FormatCSVDir:
		dates, items, err = readCSVDir(path)
	}
	if err != nil {
		return nil, err
	}

	result := &Tables{}
	if dates != nil {
		result.HasDates = true
		if result.Dates, err = ParseDates(dates); err != nil {
			return nil, err
		}
	}
	if result.Items, err = ParseItems(items); err != nil {
		return nil, err
	}
	return result, nil
}
