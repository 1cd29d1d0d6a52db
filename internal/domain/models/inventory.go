package models

import "time"

// ItemKind distinguishes reusable equipment from consumable materials.
type ItemKind string

const (
	KindEquipment ItemKind = "equipment"
	KindMaterial  ItemKind = "material"
)

// StockStatus is the classification of an item's stock level against its threshold.
type StockStatus int

const (
	StatusOK StockStatus = iota
	StatusBelowThreshold
	StatusOutOfStock
)

// String returns the wire name of the status.
func (s StockStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBelowThreshold:
		return "BELOW_THRESHOLD"
	case StatusOutOfStock:
		return "OUT_OF_STOCK"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status by name in JSON payloads.
func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TrackableItem is the common shape equipment and materials are mapped into before
// alerting and aggregation.
type TrackableItem struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Kind            ItemKind   `json:"kind"`
	StockLevel      int        `json:"stock_level"`
	StockThreshold  int        `json:"stock_threshold"`
	UnitCost        float64    `json:"unit_cost"`
	DailyCost       float64    `json:"daily_cost"`
	DaysUsed        int        `json:"days_used"`
	NextRestockDate *time.Time `json:"next_restock_date,omitempty"`
	OrderSent       bool       `json:"order_sent"`
	ProjectRef      string     `json:"project_ref,omitempty"`
	SupplierRef     string     `json:"supplier_ref,omitempty"`
}

// DefaultDaysAhead is the restock look-ahead used when nothing else is configured.
const DefaultDaysAhead = 7

// AlertWindow bounds how far ahead a scheduled restock counts as imminent.
type AlertWindow struct {
	DaysAhead int `json:"days_ahead"`
}

// DefaultWindow returns the seven day window.
func DefaultWindow() AlertWindow {
	return AlertWindow{DaysAhead: DefaultDaysAhead}
}

// CategoryCount is the number of items sharing a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// InventorySummary aggregates counters and value over a collection of items.
type InventorySummary struct {
	Total           int             `json:"total"`
	OutOfStock      int             `json:"out_of_stock"`
	BelowThreshold  int             `json:"below_threshold"`
	RestockImminent int             `json:"restock_imminent"`
	OrdersSent      int             `json:"orders_sent"`
	TotalValue      float64         `json:"total_value"`
	ByCategory      []CategoryCount `json:"by_category"`
}

// NotificationKind tells stock alerts from restock alerts.
type NotificationKind string

const (
	NotificationStock   NotificationKind = "STOCK"
	NotificationRestock NotificationKind = "RESTOCK"
)

// Notification is a single alert line shown in dropdowns and digests.
type Notification struct {
	ItemID    string           `json:"item_id"`
	ItemName  string           `json:"item_name"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Status    StockStatus      `json:"status"`
	DaysUntil *int             `json:"days_until,omitempty"`
}
