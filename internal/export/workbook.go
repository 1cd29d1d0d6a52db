// Package export renders inventory items and their summary as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/sitestock/internal/alerting"
	"github.com/mamadbah2/sitestock/internal/domain/models"
)

const (
	itemsSheet   = "Items"
	summarySheet = "Summary"
	dateLayout   = "2006-01-02"
)

var itemsHeader = []interface{}{
	"id", "name", "category", "stock", "threshold", "status", "next_restock", "days_until", "order_sent", "value",
}

// WriteWorkbook writes one row per item plus a summary sheet to w.
func WriteWorkbook(w io.Writer, items []models.TrackableItem, valuation alerting.ValuationFunc, summary models.InventorySummary, now time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), itemsSheet); err != nil {
		return fmt.Errorf("rename items sheet: %w", err)
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &itemsHeader); err != nil {
		return fmt.Errorf("write items header: %w", err)
	}

	for i, item := range items {
		row := itemRow(item, valuation, now)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("item cell: %w", err)
		}
		if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
			return fmt.Errorf("write item %s: %w", item.ID, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	for i, row := range summaryRows(summary, now) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func itemRow(item models.TrackableItem, valuation alerting.ValuationFunc, now time.Time) []interface{} {
	restock, days := "", ""
	if d, ok := alerting.DaysUntil(item.NextRestockDate, now); ok {
		restock = item.NextRestockDate.In(now.Location()).Format(dateLayout)
		days = fmt.Sprint(d)
	}

	value := 0.0
	if valuation != nil {
		value = valuation(item)
	}

	return []interface{}{
		item.ID,
		item.Name,
		item.Category,
		item.StockLevel,
		item.StockThreshold,
		alerting.ClassifyStock(item).String(),
		restock,
		days,
		item.OrderSent,
		value,
	}
}

func summaryRows(s models.InventorySummary, now time.Time) [][]interface{} {
	rows := [][]interface{}{
		{"generated_at", now.Format(time.RFC3339)},
		{"total", s.Total},
		{"out_of_stock", s.OutOfStock},
		{"below_threshold", s.BelowThreshold},
		{"restock_imminent", s.RestockImminent},
		{"orders_sent", s.OrdersSent},
		{"total_value", s.TotalValue},
		{},
		{"category", "count"},
	}
	for _, c := range s.ByCategory {
		rows = append(rows, []interface{}{c.Category, c.Count})
	}
	return rows
}
