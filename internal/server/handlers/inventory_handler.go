package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sitestock/internal/alerting"
	"github.com/mamadbah2/sitestock/internal/domain/models"
	"github.com/mamadbah2/sitestock/internal/export"
	"github.com/mamadbah2/sitestock/internal/service/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryService is what the inventory endpoints need from the service layer.
type InventoryService interface {
	Items(ctx context.Context, kind models.ItemKind) ([]models.TrackableItem, error)
	Summary(ctx context.Context, kind models.ItemKind, window models.AlertWindow) (models.InventorySummary, error)
	Notifications(ctx context.Context, window models.AlertWindow) ([]models.Notification, error)
	MarkOrderSent(ctx context.Context, materialID string) error
	Now() time.Time
}

// InventoryHandler serves summaries, notifications and exports.
type InventoryHandler struct {
	svc    InventoryService
	window models.AlertWindow
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter. window is used when a
// request does not pass days_ahead.
func NewInventoryHandler(svc InventoryService, window models.AlertWindow, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, window: window, logger: logger}
}

// EquipmentSummary returns the equipment summary.
func (h *InventoryHandler) EquipmentSummary(c *gin.Context) {
	h.summary(c, models.KindEquipment)
}

// MaterialSummary returns the material summary.
func (h *InventoryHandler) MaterialSummary(c *gin.Context) {
	h.summary(c, models.KindMaterial)
}

func (h *InventoryHandler) summary(c *gin.Context, kind models.ItemKind) {
	window, ok := h.windowFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), kind, window)
	if err != nil {
		h.logger.Error("failed computing summary", zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Notifications lists the currently active notifications.
func (h *InventoryHandler) Notifications(c *gin.Context) {
	window, ok := h.windowFromQuery(c)
	if !ok {
		return
	}

	notifications, err := h.svc.Notifications(c.Request.Context(), window)
	if err != nil {
		h.logger.Error("failed building notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(notifications), "notifications": notifications})
}

// MarkOrderSent flags a material as ordered.
func (h *InventoryHandler) MarkOrderSent(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.MarkOrderSent(c.Request.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		h.logger.Error("failed marking order", zap.String("material_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to update material"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "orderSent": true})
}

// Export streams an xlsx workbook for equipment or materials.
func (h *InventoryHandler) Export(c *gin.Context) {
	name, found := strings.CutSuffix(c.Param("file"), ".xlsx")
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unsupported export format"})
		return
	}
	kind, err := inventory.ParseKind(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	window, ok := h.windowFromQuery(c)
	if !ok {
		return
	}

	items, err := h.svc.Items(c.Request.Context(), kind)
	if err != nil {
		h.logger.Error("failed loading items for export", zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load items"})
		return
	}

	now := h.svc.Now()
	valuation := inventory.Valuation(kind)
	summary := alerting.Summarize(items, valuation, window, now)

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, items, valuation, summary, now); err != nil {
		h.logger.Error("failed writing workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build workbook"})
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", kind, now.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *InventoryHandler) windowFromQuery(c *gin.Context) (models.AlertWindow, bool) {
	raw := c.Query("days_ahead")
	if raw == "" {
		return h.window, true
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days_ahead must be a non-negative integer"})
		return models.AlertWindow{}, false
	}
	return models.AlertWindow{DaysAhead: days}, true
}
