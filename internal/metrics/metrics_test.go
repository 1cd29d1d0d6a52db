package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

func TestObserveSummary(t *testing.T) {
	r := NewRecorder()
	r.ObserveSummary(models.KindMaterial, models.InventorySummary{Total: 5, OutOfStock: 2, BelowThreshold: 1, TotalValue: 42.5})

	if got := testutil.ToFloat64(r.items.WithLabelValues("material", "out_of_stock")); got != 2 {
		t.Errorf("out_of_stock gauge = %v", got)
	}
	if got := testutil.ToFloat64(r.value.WithLabelValues("material")); got != 42.5 {
		t.Errorf("value gauge = %v", got)
	}
}

func TestObserveNotifications_ResetsMissingKinds(t *testing.T) {
	r := NewRecorder()
	r.ObserveNotifications([]models.Notification{{Kind: models.NotificationRestock}, {Kind: models.NotificationRestock}})
	r.ObserveNotifications([]models.Notification{{Kind: models.NotificationStock}})

	if got := testutil.ToFloat64(r.notifications.WithLabelValues("RESTOCK")); got != 0 {
		t.Errorf("restock gauge = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.notifications.WithLabelValues("STOCK")); got != 1 {
		t.Errorf("stock gauge = %v, want 1", got)
	}
}

func TestObserveDispatch(t *testing.T) {
	r := NewRecorder()
	r.ObserveDispatch(3, nil)
	r.ObserveDispatch(0, errors.New("boom"))

	if got := testutil.ToFloat64(r.digestsSent); got != 3 {
		t.Errorf("sent counter = %v", got)
	}
	if got := testutil.ToFloat64(r.dispatchErrors); got != 1 {
		t.Errorf("error counter = %v", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.ObserveSummary(models.KindEquipment, models.InventorySummary{Total: 1})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `sitestock_inventory_items{kind="equipment",state="total"} 1`) {
		t.Errorf("metrics output missing gauge:\n%s", body)
	}
}
