package alerting

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

var refNow = time.Date(2024, time.March, 14, 16, 45, 0, 0, time.UTC)

func daysFrom(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func TestClassifyStock(t *testing.T) {
	testCases := []struct {
		name      string
		stock     int
		threshold int
		want      models.StockStatus
	}{
		{"empty with threshold", 0, 5, models.StatusOutOfStock},
		{"empty with zero threshold", 0, 0, models.StatusOutOfStock},
		{"negative stock", -4, 5, models.StatusOutOfStock},
		{"below threshold", 3, 5, models.StatusBelowThreshold},
		{"at threshold", 5, 5, models.StatusOK},
		{"above threshold", 10, 5, models.StatusOK},
		{"negative threshold", 1, -3, models.StatusOK},
		{"one below threshold", 1, 2, models.StatusBelowThreshold},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyStock(models.TrackableItem{StockLevel: tc.stock, StockThreshold: tc.threshold})
			if got != tc.want {
				t.Errorf("ClassifyStock(%d/%d) = %s, want %s", tc.stock, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestClassifyStock_PositiveStockMatchesThresholdComparison(t *testing.T) {
	for stock := 1; stock <= 12; stock++ {
		for threshold := 0; threshold <= 12; threshold++ {
			got := ClassifyStock(models.TrackableItem{StockLevel: stock, StockThreshold: threshold})
			want := models.StatusOK
			if stock < threshold {
				want = models.StatusBelowThreshold
			}
			if got != want {
				t.Fatalf("ClassifyStock(%d/%d) = %s, want %s", stock, threshold, got, want)
			}
		}
	}
}

func TestDaysUntil(t *testing.T) {
	if _, ok := DaysUntil(nil, refNow); ok {
		t.Fatal("expected absent date to report false")
	}

	testCases := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"same instant", refNow, 0},
		{"earlier today", time.Date(2024, time.March, 14, 0, 1, 0, 0, time.UTC), 0},
		{"later today", time.Date(2024, time.March, 14, 23, 59, 0, 0, time.UTC), 0},
		{"tomorrow early", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), 1},
		{"yesterday late", time.Date(2024, time.March, 13, 23, 0, 0, 0, time.UTC), -1},
		{"across month", time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC), 19},
		{"across leap day", time.Date(2024, time.February, 28, 8, 0, 0, 0, time.UTC), -15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target
			got, ok := DaysUntil(&target, refNow)
			if !ok {
				t.Fatal("expected present date to report true")
			}
			if got != tc.want {
				t.Errorf("DaysUntil = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDaysUntil_UsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2024, time.March, 14, 22, 0, 0, 0, time.UTC) // already the 15th at UTC+3
	target := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	got, _ := DaysUntil(&target, now.In(loc))
	if got != 0 {
		t.Errorf("DaysUntil in UTC+3 = %d, want 0", got)
	}

	got, _ = DaysUntil(&target, now)
	if got != 1 {
		t.Errorf("DaysUntil in UTC = %d, want 1", got)
	}
}

func TestDaysUntil_Antisymmetric(t *testing.T) {
	dates := []time.Time{
		refNow,
		time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC),
		time.Date(1999, time.July, 4, 6, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		for _, n := range dates {
			d, n := d, n
			forward, _ := DaysUntil(&d, n)
			backward, _ := DaysUntil(&n, d)
			if forward != -backward {
				t.Errorf("DaysUntil(%s, %s) = %d but reverse is %d", d, n, forward, backward)
			}
		}
	}
}

func TestIsRestockImminent(t *testing.T) {
	item := models.TrackableItem{NextRestockDate: daysFrom(refNow, 3)}

	if !IsRestockImminent(item, models.AlertWindow{DaysAhead: 7}, refNow) {
		t.Error("expected restock in 3 days to be imminent within 7 days")
	}
	if IsRestockImminent(item, models.AlertWindow{DaysAhead: 2}, refNow) {
		t.Error("expected restock in 3 days not to be imminent within 2 days")
	}
	if !IsRestockImminent(item, models.AlertWindow{DaysAhead: 3}, refNow) {
		t.Error("expected window boundary to be inclusive")
	}

	overdue := models.TrackableItem{NextRestockDate: daysFrom(refNow, -10)}
	if !IsRestockImminent(overdue, models.AlertWindow{DaysAhead: 0}, refNow) {
		t.Error("expected overdue restock to be imminent")
	}
}

func TestIsRestockImminent_AbsentDateNeverImminent(t *testing.T) {
	item := models.TrackableItem{StockLevel: 0}
	for _, days := range []int{-100, -1, 0, 1, 7, 365, math.MaxInt32} {
		if IsRestockImminent(item, models.AlertWindow{DaysAhead: days}, refNow) {
			t.Errorf("absent date reported imminent for window %d", days)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, StockValue, models.DefaultWindow(), refNow)
	want := models.InventorySummary{ByCategory: []models.CategoryCount{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize(nil) = %+v, want %+v", got, want)
	}
}

func TestSummarize_MaterialScenario(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "m1", Category: "ciment", StockLevel: 2, StockThreshold: 10, UnitCost: 3.5},
		{ID: "m2", Category: "ciment", StockLevel: 0, StockThreshold: 1, UnitCost: 10},
	}

	got := Summarize(items, StockValue, models.DefaultWindow(), refNow)

	if got.Total != 2 || got.OutOfStock != 1 || got.BelowThreshold != 1 {
		t.Errorf("unexpected counters: %+v", got)
	}
	if got.TotalValue != 7.0 {
		t.Errorf("TotalValue = %v, want 7.0", got.TotalValue)
	}
	if len(got.ByCategory) != 1 || got.ByCategory[0] != (models.CategoryCount{Category: "ciment", Count: 2}) {
		t.Errorf("ByCategory = %+v", got.ByCategory)
	}
}

func TestSummarize_CountsRestockAndOrders(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "a", Category: "bois", StockLevel: 20, StockThreshold: 5, NextRestockDate: daysFrom(refNow, 2), OrderSent: true},
		{ID: "b", Category: "acier", StockLevel: 1, StockThreshold: 5, NextRestockDate: daysFrom(refNow, 30)},
		{ID: "c", Category: "bois", StockLevel: -2, StockThreshold: 5, NextRestockDate: daysFrom(refNow, -1), OrderSent: true},
		{ID: "d", Category: "", StockLevel: 8, StockThreshold: 0},
	}

	got := Summarize(items, nil, models.DefaultWindow(), refNow)

	want := models.InventorySummary{
		Total:           4,
		OutOfStock:      1,
		BelowThreshold:  1,
		RestockImminent: 2,
		OrdersSent:      2,
		ByCategory: []models.CategoryCount{
			{Category: "", Count: 1},
			{Category: "acier", Count: 1},
			{Category: "bois", Count: 2},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarize_EquipmentUsageCost(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "e1", StockLevel: 1, DailyCost: 150, DaysUsed: 4},
		{ID: "e2", StockLevel: 2, DailyCost: 80.5, DaysUsed: 2},
		{ID: "e3", StockLevel: 1, DailyCost: math.NaN(), DaysUsed: 9},
		{ID: "e4", StockLevel: 1, DailyCost: 40, DaysUsed: -3},
	}

	got := Summarize(items, UsageCost, models.DefaultWindow(), refNow)
	if got.TotalValue != 761 {
		t.Errorf("TotalValue = %v, want 761", got.TotalValue)
	}
	if got.OrdersSent != 0 {
		t.Errorf("OrdersSent = %d, want 0 for equipment", got.OrdersSent)
	}
}

func TestSummarize_IgnoresNonFiniteValuation(t *testing.T) {
	items := []models.TrackableItem{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	values := map[string]float64{"x": math.Inf(1), "y": -12, "z": 4.25}

	got := Summarize(items, func(item models.TrackableItem) float64 { return values[item.ID] }, models.DefaultWindow(), refNow)
	if got.TotalValue != 4.25 {
		t.Errorf("TotalValue = %v, want 4.25", got.TotalValue)
	}
}

func TestSummarize_CountInvariants(t *testing.T) {
	var items []models.TrackableItem
	for stock := -2; stock <= 6; stock++ {
		for threshold := -1; threshold <= 6; threshold++ {
			items = append(items, models.TrackableItem{StockLevel: stock, StockThreshold: threshold})
		}
	}

	s := Summarize(items, StockValue, models.DefaultWindow(), refNow)
	if s.OutOfStock+s.BelowThreshold > s.Total {
		t.Errorf("outOfStock+belowThreshold = %d exceeds total %d", s.OutOfStock+s.BelowThreshold, s.Total)
	}
	for name, count := range map[string]int{
		"outOfStock": s.OutOfStock, "belowThreshold": s.BelowThreshold,
		"restockImminent": s.RestockImminent, "ordersSent": s.OrdersSent,
	} {
		if count < 0 || count > s.Total {
			t.Errorf("%s = %d out of [0, %d]", name, count, s.Total)
		}
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "1", Category: "b", StockLevel: 3, StockThreshold: 4, UnitCost: 0.1, NextRestockDate: daysFrom(refNow, 1)},
		{ID: "2", Category: "a", StockLevel: 7, StockThreshold: 4, UnitCost: 0.2},
		{ID: "3", Category: "c", StockLevel: 0, StockThreshold: 4, UnitCost: 0.3, OrderSent: true},
	}

	first := Summarize(items, StockValue, models.DefaultWindow(), refNow)
	second := Summarize(items, StockValue, models.DefaultWindow(), refNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Summarize not idempotent: %+v vs %+v", first, second)
	}
	if math.Float64bits(first.TotalValue) != math.Float64bits(second.TotalValue) {
		t.Error("TotalValue differs bitwise between calls")
	}
}

func TestBuildNotifications_Order(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "1", Name: "Ciment", StockLevel: 2, StockThreshold: 10, NextRestockDate: daysFrom(refNow, 3)},
		{ID: "2", Name: "Sable", StockLevel: 50, StockThreshold: 10, NextRestockDate: daysFrom(refNow, 0)},
		{ID: "3", Name: "Gravier", StockLevel: 0, StockThreshold: 5},
		{ID: "4", Name: "Fer", StockLevel: 9, StockThreshold: 3, NextRestockDate: daysFrom(refNow, -2)},
		{ID: "5", Name: "Bois", StockLevel: 9, StockThreshold: 3, NextRestockDate: daysFrom(refNow, 20)},
	}

	var got []string
	for n := range BuildNotifications(items, models.DefaultWindow(), refNow) {
		got = append(got, n.ItemID+" "+string(n.Kind)+" "+n.Message)
	}

	want := []string{
		"1 STOCK stock 2/10",
		"3 STOCK out of stock 0/5",
		"1 RESTOCK restock in 3 day(s)",
		"2 RESTOCK restock today",
		"4 RESTOCK restock overdue by 2 day(s)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("notifications = %q, want %q", got, want)
	}
}

func TestBuildNotifications_Restartable(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "1", Name: "Ciment", StockLevel: 1, StockThreshold: 10},
		{ID: "2", Name: "Sable", StockLevel: 0, StockThreshold: 10, NextRestockDate: daysFrom(refNow, 1)},
	}
	seq := BuildNotifications(items, models.DefaultWindow(), refNow)

	collect := func() []models.Notification {
		var out []models.Notification
		for n := range seq {
			out = append(out, n)
		}
		return out
	}

	first, second := collect(), collect()
	if len(first) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second iteration differs: %+v vs %+v", first, second)
	}
	if first[2].DaysUntil == nil || *first[2].DaysUntil != 1 {
		t.Errorf("expected restock notification to carry days until 1, got %v", first[2].DaysUntil)
	}
	if first[2].Status != models.StatusOutOfStock {
		t.Errorf("restock notification status = %s, want OUT_OF_STOCK", first[2].Status)
	}
}

func TestBuildNotifications_EarlyStop(t *testing.T) {
	items := []models.TrackableItem{
		{ID: "1", StockLevel: 0},
		{ID: "2", StockLevel: 0},
		{ID: "3", StockLevel: 0},
	}

	count := 0
	for range BuildNotifications(items, models.DefaultWindow(), refNow) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected to stop after 2 notifications, got %d", count)
	}
}
