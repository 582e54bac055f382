package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetbook/internal/source"
)

const (
	itemsHeader = "is_active,is_seasonality,company_name,item_name,category_name,category_group,display_group,item_type,item_amount,frequency_type,frequency_day,frequency_date,start_date,end_date,notes\n"
	datesHeader = "date,day_of_week,day_number,week_number,week_year,month_number,month_year,year,seasonality_multiplier\n"
)

func writeItems(t *testing.T, dir, rows string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, source.ItemsFile), []byte(itemsHeader+rows), 0o600))
}

func writeDates(t *testing.T, dir, rows string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, source.DatesFile), []byte(datesHeader+rows), 0o600))
}
