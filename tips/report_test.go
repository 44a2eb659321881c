package tips_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemes/tip-engine/tips"
)

func TestDailyReportTable(t *testing.T) {
	totals := []tips.DailyTotal{
		{
			Date:       tips.NewDate(2025, time.March, 10),
			GrossTips:  dec("100"),
			StaffShare: dec("75"),
			KitchenCut: dec("20"),
			DamageCut:  dec("5"),
		},
		{
			Date:       tips.NewDate(2025, time.March, 11),
			GrossTips:  dec("40"),
			StaffShare: dec("30"),
			KitchenCut: dec("8"),
			DamageCut:  dec("2"),
		},
	}

	table := tips.DailyReportTable(totals)

	assert.Equal(t, "Tips Summary Report", table.Title)
	assert.Equal(t, []string{"Date", "Total Tips", "Staff Share", "Kitchen", "Damage"}, table.Header)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, []string{"2025-03-10", "100.00", "75.00", "20.00", "5.00"}, table.Rows[0])
	assert.Equal(t, []string{"2025-03-11", "40.00", "30.00", "8.00", "2.00"}, table.Rows[1])
	assert.Equal(t, []string{"TOTAL", "140.00", "105.00", "28.00", "7.00"}, table.Rows[2])
}

func TestDailyReportTable_Empty(t *testing.T) {
	table := tips.DailyReportTable(nil)

	// An empty range still produces a table with a zero TOTAL row.
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"TOTAL", "0.00", "0.00", "0.00", "0.00"}, table.Rows[0])
}

func TestStaffReportTable(t *testing.T) {
	totals := []tips.StaffTotal{
		{Name: "Alice", Share: dec("52.5")},
		{Name: "Bob", Share: dec("33.75")},
		{Name: "Carol", Share: dec("18.75")},
	}

	table := tips.StaffReportTable(totals, dec("105"))

	assert.Equal(t, "Staff Breakdown", table.Title)
	assert.Equal(t, []string{"Staff", "Total Tips"}, table.Header)
	require.Len(t, table.Rows, 4)

	assert.Equal(t, []string{"Alice", "52.50"}, table.Rows[0])
	assert.Equal(t, []string{"Bob", "33.75"}, table.Rows[1])
	assert.Equal(t, []string{"Carol", "18.75"}, table.Rows[2])
	assert.Equal(t, []string{"TOTAL", "105.00"}, table.Rows[3])
}
