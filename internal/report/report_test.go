package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/budgetbook/internal/model"
	"github.com/theirongolddev/budgetbook/internal/pipeline"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixture(t *testing.T) (pipeline.Report, []model.LedgerEntry) {
	t.Helper()
	rentDay := 1
	items := []model.BudgetItem{
		{
			BudgetItemID: 1, IsActive: true, ItemName: "Salary", DisplayGroup: "Income",
			ItemType: model.IncomeType, ItemAmount: decimal.NewFromInt(2000),
			Frequency: model.BiWeekly, StartDate: day(2024, 12, 6),
		},
		{
			BudgetItemID: 2, IsActive: true, ItemName: "Rent", DisplayGroup: "Home & Utilities",
			ItemType: "Expense", ItemAmount: decimal.NewFromInt(1000),
			Frequency: model.Monthly, FrequencyDay: &rentDay,
		},
	}
	from, to := day(2024, 12, 1), day(2025, 1, 31)
	exp, err := pipeline.Expand(pipeline.GenerateCalendar(from, to, nil), items)
	require.NoError(t, err)
	return pipeline.Plan(exp.Ledger, pipeline.PlanOptions{From: from, To: to, IncomeGroup: "Income"}), exp.Ledger
}

func TestRender_SummarySheet(t *testing.T) {
	rep, ledger := fixture(t)
	opts := DefaultOptions()

	f, err := Render(rep, ledger, opts)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Budget", "Data"}, f.GetSheetList())

	get := func(ref string) string {
		v, err := f.GetCellValue("Budget", ref)
		require.NoError(t, err)
		return v
	}
	formula := func(ref string) string {
		v, err := f.GetCellFormula("Budget", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Budget 12/2024 - 01/2025", get("B2"))
	assert.Equal(t, "DATE(D7,D6,1)", formula("D5"))
	assert.Equal(t, "12", get("D6"))
	assert.Equal(t, "2024", get("D7"))
	assert.Equal(t, "1", get("E6"))
	assert.Equal(t, "D5", formula("D9"))

	visible, err := f.GetRowVisible("Budget", 6)
	require.NoError(t, err)
	assert.False(t, visible)

	// Income block: title row 11, Salary on 12, total on 13.
	assert.Equal(t, "Income", get("B11"))
	assert.Equal(t, "Salary", get("B12"))
	assert.Equal(t,
		`IFERROR(SUMIFS(Data!$U:$U,Data!$H:$H,$B12,Data!$K:$K,$B$11,Data!$E:$E,D$7,Data!$D:$D,D$6),0)`,
		formula("D12"))
	assert.Equal(t, "Total Income", get("B13"))
	assert.Equal(t, "SUM(E12:E12)", formula("E13"))

	// Expense block follows after a blank row.
	assert.Equal(t, "Home & Utilities", get("B15"))
	assert.Equal(t, "Rent", get("B16"))
	assert.Equal(t, "Total Home & Utilities", get("B17"))
	assert.Equal(t, "% of Income", get("B18"))
	assert.Equal(t, "IFERROR(-D17/D13,0)", formula("D18"))

	assert.Equal(t, "Totals", get("B20"))
	assert.Equal(t, "D13", formula("D21"))
	assert.Equal(t, "SUM(D17)", formula("D22"))
	assert.Equal(t, "D22+D21", formula("D23"))
	assert.Equal(t, "IFERROR(D23/D21,0)", formula("D24"))
	assert.Equal(t, "Remaining %", get("B24"))
}

func TestRender_DataSheet(t *testing.T) {
	rep, ledger := fixture(t)

	f, err := Render(rep, ledger, DefaultOptions())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, len(ledger)+1)
	assert.Equal(t, model.ExportColumns, rows[0])

	// Ledger is item-major: Salary's 62 days come first, starting 2024-12-01.
	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "2024-12-01", first[1])
	assert.Equal(t, "Salary", first[7])
}

func TestRender_NewYearColumnBorder(t *testing.T) {
	rep, ledger := fixture(t)
	require.True(t, rep.Layout.Columns[1].NewYear)

	f, err := Render(rep, ledger, DefaultOptions())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	id, err := f.GetCellStyle("Budget", "E12")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)

	var left bool
	for _, b := range style.Border {
		if b.Type == "left" {
			left = true
		}
	}
	assert.True(t, left, "January column carries a left border")
	assert.Equal(t, numberFmt, *style.CustomNumFmt)
}

func TestWrite(t *testing.T) {
	rep, ledger := fixture(t)
	opts := DefaultOptions()
	opts.RunID = "3f2b7c1e-0000-4000-8000-000000000001"
	opts.Now = day(2025, 2, 3)

	dir := t.TempDir()
	path, err := Write(dir, rep, ledger, opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Budget Tool 20250203.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, opts.RunID, props.Identifier)
	assert.Equal(t, "Budget 12/2024 - 01/2025", props.Title)
}

func TestRender_Template(t *testing.T) {
	rep, ledger := fixture(t)

	tmpl := filepath.Join(t.TempDir(), "Template.xlsx")
	tf := excelize.NewFile()
	require.NoError(t, tf.SetSheetName("Sheet1", "Budget"))
	require.NoError(t, tf.SetCellValue("Budget", "B2", "Household plan MinDate to MaxDate"))
	_, err := tf.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, tf.SetCellValue("Data", "A5", "stale"))
	require.NoError(t, tf.SaveAs(tmpl))
	require.NoError(t, tf.Close())

	opts := DefaultOptions()
	opts.Template = tmpl
	f, err := Render(rep, ledger, opts)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Budget", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Household plan 12/2024 to 01/2025", v)

	stale, err := f.GetCellValue("Data", "A5")
	require.NoError(t, err)
	assert.Equal(t, "4", stale, "data sheet is rewritten from the ledger")
}

func TestSheetRef(t *testing.T) {
	assert.Equal(t, "Data!", sheetRef("Data"))
	assert.Equal(t, "'Budget Data'!", sheetRef("Budget Data"))
	assert.Equal(t, "'Bob''s'!", sheetRef("Bob's"))
}
