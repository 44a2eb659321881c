/*
report.go - Report-ready tables for the external renderer

PURPOSE:
  Builds plain tabular data for the printable reports. The renderer
  (PDF or otherwise) owns styling and pagination; this package only
  guarantees the column layout, 2-decimal formatting, and the final
  TOTAL row summing the numeric columns.

TABLES:
  Daily: [Date, Total Tips, Staff Share, Kitchen, Damage] + TOTAL
  Staff: [Staff, Total Tips] + TOTAL
*/
package tips

import "github.com/shopspring/decimal"

// ReportTable is the data contract consumed by the external renderer.
type ReportTable struct {
	Title  string
	Header []string
	Rows   [][]string // last row is the grand TOTAL
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// DailyReportTable builds the per-day report from daily totals.
func DailyReportTable(totals []DailyTotal) ReportTable {
	table := ReportTable{
		Title:  "Tips Summary Report",
		Header: []string{"Date", "Total Tips", "Staff Share", "Kitchen", "Damage"},
	}

	gross := decimal.Zero
	staff := decimal.Zero
	kitchen := decimal.Zero
	damage := decimal.Zero

	for _, t := range totals {
		table.Rows = append(table.Rows, []string{
			t.Date.String(),
			money(t.GrossTips),
			money(t.StaffShare),
			money(t.KitchenCut),
			money(t.DamageCut),
		})
		gross = gross.Add(t.GrossTips)
		staff = staff.Add(t.StaffShare)
		kitchen = kitchen.Add(t.KitchenCut)
		damage = damage.Add(t.DamageCut)
	}

	table.Rows = append(table.Rows, []string{
		"TOTAL", money(gross), money(staff), money(kitchen), money(damage),
	})
	return table
}

// StaffReportTable builds the staff-breakdown report.
func StaffReportTable(totals []StaffTotal, grand decimal.Decimal) ReportTable {
	table := ReportTable{
		Title:  "Staff Breakdown",
		Header: []string{"Staff", "Total Tips"},
	}

	for _, t := range totals {
		table.Rows = append(table.Rows, []string{t.Name, money(t.Share)})
	}

	table.Rows = append(table.Rows, []string{"TOTAL", money(grand)})
	return table
}
