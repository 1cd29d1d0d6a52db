package models

import "time"

// Equipment is a reusable site asset as stored in the "equipements" collection.
type Equipment struct {
	ID              string
	Name            string
	Type            string
	Stock           int
	Threshold       int
	DailyCost       float64
	DaysUsed        int
	NextRestockDate *time.Time
	ProjectRef      string
	SupplierRef     string
}

// Trackable maps the equipment into the alerting shape.
func (e Equipment) Trackable() TrackableItem {
	return TrackableItem{
		ID:              e.ID,
		Name:            e.Name,
		Category:        e.Type,
		Kind:            KindEquipment,
		StockLevel:      e.Stock,
		StockThreshold:  e.Threshold,
		DailyCost:       e.DailyCost,
		DaysUsed:        e.DaysUsed,
		NextRestockDate: e.NextRestockDate,
		ProjectRef:      e.ProjectRef,
		SupplierRef:     e.SupplierRef,
	}
}

// Material is a consumable as stored in the "materiaux" collection.
type Material struct {
	ID              string
	Name            string
	Type            string
	Stock           int
	Threshold       int
	UnitCost        float64
	NextRestockDate *time.Time
	OrderSent       bool
	ProjectRef      string
	SupplierRef     string
}

// Trackable maps the material into the alerting shape.
func (m Material) Trackable() TrackableItem {
	return TrackableItem{
		ID:              m.ID,
		Name:            m.Name,
		Category:        m.Type,
		Kind:            KindMaterial,
		StockLevel:      m.Stock,
		StockThreshold:  m.Threshold,
		UnitCost:        m.UnitCost,
		NextRestockDate: m.NextRestockDate,
		OrderSent:       m.OrderSent,
		ProjectRef:      m.ProjectRef,
		SupplierRef:     m.SupplierRef,
	}
}
