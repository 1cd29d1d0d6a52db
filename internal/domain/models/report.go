package models

import "time"

// SummarySnapshot represents a daily inventory summary persisted to MongoDB.
type SummarySnapshot struct {
	ID              string    `bson:"_id" json:"id"`
	Kind            ItemKind  `bson:"kind" json:"kind"`
	Date            time.Time `bson:"date" json:"date"`
	WindowDays      int       `bson:"window_days" json:"window_days"`
	Total           int       `bson:"total" json:"total"`
	OutOfStock      int       `bson:"out_of_stock" json:"out_of_stock"`
	BelowThreshold  int       `bson:"below_threshold" json:"below_threshold"`
	RestockImminent int       `bson:"restock_imminent" json:"restock_imminent"`
	OrdersSent      int       `bson:"orders_sent" json:"orders_sent"`
	TotalValue      float64   `bson:"total_value" json:"total_value"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
