// Package alerting decides which inventory items need attention and aggregates
// counters and value for dashboards. Every function is pure: no I/O, no shared state.
package alerting

import (
	"fmt"
	"iter"
	"math"
	"sort"
	"time"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

// ValuationFunc returns the monetary value of one item. The caller picks the formula
// that matches the item kind.
type ValuationFunc func(item models.TrackableItem) float64

// StockValue values a material as stock on hand times unit cost.
func StockValue(item models.TrackableItem) float64 {
	return float64(nonNegative(item.StockLevel)) * money(item.UnitCost)
}

// UsageCost values equipment as daily cost times days used.
func UsageCost(item models.TrackableItem) float64 {
	return money(item.DailyCost) * float64(nonNegative(item.DaysUsed))
}

// ClassifyStock returns the stock status of an item. Out of stock wins over the
// threshold comparison.
func ClassifyStock(item models.TrackableItem) models.StockStatus {
	stock := nonNegative(item.StockLevel)
	switch {
	case stock <= 0:
		return models.StatusOutOfStock
	case stock < nonNegative(item.StockThreshold):
		return models.StatusBelowThreshold
	default:
		return models.StatusOK
	}
}

// DaysUntil returns the signed number of calendar days from now to target, or false
// when target is absent. Both instants are reduced to their date in now's location.
func DaysUntil(target *time.Time, now time.Time) (int, bool) {
	if target == nil {
		return 0, false
	}
	from := civilDate(now)
	to := civilDate(target.In(now.Location()))
	return int((to.Unix() - from.Unix()) / secondsPerDay), true
}

// IsRestockImminent reports whether the next restock falls within the window.
// Overdue dates count as imminent.
func IsRestockImminent(item models.TrackableItem, window models.AlertWindow, now time.Time) bool {
	days, ok := DaysUntil(item.NextRestockDate, now)
	return ok && days <= window.DaysAhead
}

// Summarize aggregates items into counters and total value.
func Summarize(items []models.TrackableItem, valuation ValuationFunc, window models.AlertWindow, now time.Time) models.InventorySummary {
	summary := models.InventorySummary{
		Total:      len(items),
		ByCategory: []models.CategoryCount{},
	}

	categories := make(map[string]int)
	for _, item := range items {
		switch ClassifyStock(item) {
		case models.StatusOutOfStock:
			summary.OutOfStock++
		case models.StatusBelowThreshold:
			summary.BelowThreshold++
		}
		if IsRestockImminent(item, window, now) {
			summary.RestockImminent++
		}
		if item.OrderSent {
			summary.OrdersSent++
		}
		if valuation != nil {
			summary.TotalValue += money(valuation(item))
		}
		categories[item.Category]++
	}

	for name, count := range categories {
		summary.ByCategory = append(summary.ByCategory, models.CategoryCount{Category: name, Count: count})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary
}

// BuildNotifications yields stock alerts in input order followed by restock alerts in
// input order. The sequence can be ranged over any number of times.
func BuildNotifications(items []models.TrackableItem, window models.AlertWindow, now time.Time) iter.Seq[models.Notification] {
	return func(yield func(models.Notification) bool) {
		for _, item := range items {
			status := ClassifyStock(item)
			if status == models.StatusOK {
				continue
			}
			if !yield(stockNotification(item, status)) {
				return
			}
		}

		for _, item := range items {
			if !IsRestockImminent(item, window, now) {
				continue
			}
			days, _ := DaysUntil(item.NextRestockDate, now)
			if !yield(restockNotification(item, days)) {
				return
			}
		}
	}
}

func stockNotification(item models.TrackableItem, status models.StockStatus) models.Notification {
	stock, threshold := nonNegative(item.StockLevel), nonNegative(item.StockThreshold)

	message := fmt.Sprintf("stock %d/%d", stock, threshold)
	if status == models.StatusOutOfStock {
		message = fmt.Sprintf("out of stock %d/%d", stock, threshold)
	}

	return models.Notification{
		ItemID:   item.ID,
		ItemName: item.Name,
		Kind:     models.NotificationStock,
		Message:  message,
		Status:   status,
	}
}

func restockNotification(item models.TrackableItem, days int) models.Notification {
	var message string
	switch {
	case days == 0:
		message = "restock today"
	case days < 0:
		message = fmt.Sprintf("restock overdue by %d day(s)", -days)
	default:
		message = fmt.Sprintf("restock in %d day(s)", days)
	}

	return models.Notification{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Kind:      models.NotificationRestock,
		Message:   message,
		Status:    ClassifyStock(item),
		DaysUntil: &days,
	}
}

const secondsPerDay = 24 * 60 * 60

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// money drops NaN, infinities and negative amounts.
func money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
