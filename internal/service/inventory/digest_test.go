package inventory

import (
	"testing"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

func TestFormatAmount(t *testing.T) {
	testCases := map[float64]string{
		0:         "0.00",
		7:         "7.00",
		0.1 + 0.2: "0.30",
		1234.567:  "1234.57",
		2.005:     "2.01",
	}
	for value, want := range testCases {
		if got := FormatAmount(value); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	got := SummaryLine(models.KindMaterial, models.InventorySummary{
		Total: 4, OutOfStock: 1, BelowThreshold: 2, RestockImminent: 1, OrdersSent: 3, TotalValue: 12.5,
	})
	want := "Materials: 4 items, 1 out of stock, 2 below threshold, 1 restock soon, 3 orders sent, value 12.50"
	if got != want {
		t.Errorf("SummaryLine = %q, want %q", got, want)
	}
}

func TestDigest(t *testing.T) {
	if got := Digest(fixedNow, nil); got != "" {
		t.Errorf("expected empty digest, got %q", got)
	}

	got := Digest(fixedNow, []models.Notification{
		{ItemName: "Ciment", Kind: models.NotificationStock, Message: "stock 2/10"},
		{ItemName: "Sable", Kind: models.NotificationRestock, Message: "restock in 3 day(s)"},
		{ItemName: "Gravier", Kind: models.NotificationStock, Message: "out of stock 0/5"},
	})

	want := "Inventory alerts (2024-03-14)\n\n" +
		"Stock (2)\n- Ciment: stock 2/10\n- Gravier: out of stock 0/5\n\n" +
		"Restock (1)\n- Sable: restock in 3 day(s)"
	if got != want {
		t.Errorf("Digest =\n%s\nwant\n%s", got, want)
	}
}
