package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sitestock/internal/alerting"
	"github.com/mamadbah2/sitestock/internal/domain/models"
	"github.com/mamadbah2/sitestock/internal/repository/mongodb"
)

// ErrNotFound indicates the requested inventory record does not exist.
var ErrNotFound = errors.New("inventory item not found")

// ErrUnknownKind indicates an item kind other than equipment or material.
var ErrUnknownKind = errors.New("unknown item kind")

// Store is the subset of the repository the service reads and writes.
type Store interface {
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	MarkOrderSent(ctx context.Context, materialID string) error
}

// Service maps persisted equipment and materials into trackable items and runs the
// alerting engine over them.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new inventory service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source, mainly for tests and timezone pinning.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// ParseKind accepts the singular and plural spellings used in URLs.
func ParseKind(value string) (models.ItemKind, error) {
	switch value {
	case "equipment", "equipments", "equipement", "equipements":
		return models.KindEquipment, nil
	case "material", "materials", "materiau", "materiaux":
		return models.KindMaterial, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, value)
	}
}

// Items loads the items of a kind mapped into the trackable shape. Restock dates
// stored as bare days are pinned to the clock's location.
func (s *Service) Items(ctx context.Context, kind models.ItemKind) ([]models.TrackableItem, error) {
	items, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	loc := s.now().Location()
	for i := range items {
		items[i].NextRestockDate = calendarDay(items[i].NextRestockDate, loc)
	}
	return items, nil
}

func (s *Service) load(ctx context.Context, kind models.ItemKind) ([]models.TrackableItem, error) {
	switch kind {
	case models.KindEquipment:
		equipment, err := s.store.ListEquipment(ctx)
		if err != nil {
			return nil, fmt.Errorf("load equipment: %w", err)
		}
		items := make([]models.TrackableItem, 0, len(equipment))
		for _, e := range equipment {
			items = append(items, e.Trackable())
		}
		return items, nil
	case models.KindMaterial:
		materials, err := s.store.ListMaterials(ctx)
		if err != nil {
			return nil, fmt.Errorf("load materials: %w", err)
		}
		items := make([]models.TrackableItem, 0, len(materials))
		for _, m := range materials {
			items = append(items, m.Trackable())
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// Summary loads the items of a kind and aggregates them with the kind's valuation.
func (s *Service) Summary(ctx context.Context, kind models.ItemKind, window models.AlertWindow) (models.InventorySummary, error) {
	items, err := s.Items(ctx, kind)
	if err != nil {
		return models.InventorySummary{}, err
	}

	summary := alerting.Summarize(items, Valuation(kind), window, s.now())
	s.logger.Debug("inventory summarized",
		zap.String("kind", string(kind)),
		zap.Int("total", summary.Total),
		zap.Int("out_of_stock", summary.OutOfStock),
		zap.Int("below_threshold", summary.BelowThreshold),
		zap.Int("restock_imminent", summary.RestockImminent))
	return summary, nil
}

// EquipmentSummary aggregates equipment valued by usage cost.
func (s *Service) EquipmentSummary(ctx context.Context, window models.AlertWindow) (models.InventorySummary, error) {
	return s.Summary(ctx, models.KindEquipment, window)
}

// MaterialSummary aggregates materials valued by stock on hand.
func (s *Service) MaterialSummary(ctx context.Context, window models.AlertWindow) (models.InventorySummary, error) {
	return s.Summary(ctx, models.KindMaterial, window)
}

// Notifications returns equipment notifications followed by material notifications.
func (s *Service) Notifications(ctx context.Context, window models.AlertWindow) ([]models.Notification, error) {
	now := s.now()

	var out []models.Notification
	for _, kind := range []models.ItemKind{models.KindEquipment, models.KindMaterial} {
		items, err := s.Items(ctx, kind)
		if err != nil {
			return nil, err
		}
		out = slices.AppendSeq(out, alerting.BuildNotifications(items, window, now))
	}
	if out == nil {
		out = []models.Notification{}
	}
	return out, nil
}

// MarkOrderSent records that a replenishment order was placed for a material.
func (s *Service) MarkOrderSent(ctx context.Context, materialID string) error {
	if err := s.store.MarkOrderSent(ctx, materialID); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("mark order sent: %w", err)
	}
	s.logger.Info("material order marked as sent", zap.String("material_id", materialID))
	return nil
}

// calendarDay reads a UTC-midnight instant as a calendar day in loc. Date-only strings
// and dates written from a browser both land on UTC midnight. Instants carrying a time
// of day are kept as they are.
func calendarDay(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	if u.Hour() != 0 || u.Minute() != 0 || u.Second() != 0 || u.Nanosecond() != 0 {
		return t
	}
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc)
	return &day
}

// Valuation returns the valuation formula for an item kind.
func Valuation(kind models.ItemKind) alerting.ValuationFunc {
	if kind == models.KindEquipment {
		return alerting.UsageCost
	}
	return alerting.StockValue
}
