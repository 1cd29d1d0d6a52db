package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

const dateLayout = "2006-01-02"

// FormatAmount renders a monetary total rounded half away from zero to two decimals.
func FormatAmount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// SummaryLine renders a one line summary for digests and logs.
func SummaryLine(kind models.ItemKind, s models.InventorySummary) string {
	return fmt.Sprintf("%s: %d items, %d out of stock, %d below threshold, %d restock soon, %d orders sent, value %s",
		kindLabel(kind), s.Total, s.OutOfStock, s.BelowThreshold, s.RestockImminent, s.OrdersSent, FormatAmount(s.TotalValue))
}

// Digest renders the text sent to the site manager for a batch of notifications.
func Digest(now time.Time, notifications []models.Notification) string {
	if len(notifications) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Inventory alerts (%s)", now.Format(dateLayout))

	var stock, restock []models.Notification
	for _, n := range notifications {
		if n.Kind == models.NotificationStock {
			stock = append(stock, n)
		} else {
			restock = append(restock, n)
		}
	}

	writeSection(&b, "Stock", stock)
	writeSection(&b, "Restock", restock)
	return b.String()
}

func writeSection(b *strings.Builder, title string, notifications []models.Notification) {
	if len(notifications) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n%s (%d)", title, len(notifications))
	for _, n := range notifications {
		fmt.Fprintf(b, "\n- %s: %s", n.ItemName, n.Message)
	}
}

func kindLabel(kind models.ItemKind) string {
	switch kind {
	case models.KindEquipment:
		return "Equipment"
	case models.KindMaterial:
		return "Materials"
	default:
		return string(kind)
	}
}
