// Package report renders a planned budget report as an Excel workbook.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
)

// Placeholders replaced in a template's title cell.
const (
	minDatePlaceholder = "MinDate"
	maxDatePlaceholder = "MaxDate"
	defaultTitle       = "Budget " + minDatePlaceholder + " - " + maxDatePlaceholder
)

// Options controls workbook rendering.
type Options struct {
	SummarySheet string
	DataSheet    string

	// Template is an optional workbook to start from. Its summary sheet may
	// carry a title in B2 using the MinDate and MaxDate placeholders.
	Template string

	FontName string
	FontSize float64
	Zoom     float64

	// RunID is stored in the workbook's document properties.
	RunID string
	Now   time.Time
}

// DefaultOptions returns the standard sheet names and formatting.
func DefaultOptions() Options {
	return Options{
		SummarySheet: "Budget",
		DataSheet:    "Data",
		FontName:     "Arial",
		FontSize:     10,
		Zoom:         80,
	}
}

// FileName returns the workbook name for a run on the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("Budget Tool %s.xlsx", now.Format("20060102"))
}

// Write renders the workbook and saves it in dir, returning the file path.
func Write(dir string, rep pipeline.Report, ledger []model.LedgerEntry, opts Options) (string, error) {
	f, err := Render(rep, ledger, opts)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	path := filepath.Join(dir, FileName(opts.now()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

// Render builds the workbook in memory: the ledger on the data sheet and the
// planned layout on the summary sheet.
func Render(rep pipeline.Report, ledger []model.LedgerEntry, opts Options) (*excelize.File, error) {
	f, err := openBase(opts)
	if err != nil {
		return nil, err
	}

	if err := f.SetDefaultFont(opts.FontName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("setting font: %w", err)
	}
	if err := writeData(f, opts, ledger); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing %s sheet: %w", opts.DataSheet, err)
	}
	if err := writeSummary(f, opts, rep); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing %s sheet: %w", opts.SummarySheet, err)
	}
	if err := setProperties(f, opts, rep); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// openBase returns the template workbook, or a new one with an empty summary
// sheet.
func openBase(opts Options) (*excelize.File, error) {
	if opts.Template != "" {
		f, err := excelize.OpenFile(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("opening template %s: %w", opts.Template, err)
		}
		idx, err := f.GetSheetIndex(opts.SummarySheet)
		if err == nil && idx < 0 {
			_, err = f.NewSheet(opts.SummarySheet)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("template sheet %q: %w", opts.SummarySheet, err)
		}
		return f, nil
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), opts.SummarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func setProperties(f *excelize.File, opts Options, rep pipeline.Report) error {
	idx, err := f.GetSheetIndex(opts.SummarySheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	return f.SetDocProps(&excelize.DocProperties{
		Title:      title(defaultTitle, rep),
		Creator:    "budgetbook",
		Identifier: opts.RunID,
		Created:    opts.now().UTC().Format(time.RFC3339),
	})
}

// title fills the MinDate/MaxDate placeholders with MM/YYYY.
func title(tmpl string, rep pipeline.Report) string {
	return strings.NewReplacer(
		minDatePlaceholder, rep.From.Format("01/2006"),
		maxDatePlaceholder, rep.To.Format("01/2006"),
	).Replace(tmpl)
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// sheetRef quotes a sheet name for use in a formula.
func sheetRef(name string) string {
	if strings.ContainsAny(name, " -'&()") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'!"
	}
	return name + "!"
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
