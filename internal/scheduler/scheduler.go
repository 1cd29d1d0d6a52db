package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/sitestock/internal/domain/models"
	"github.com/mamadbah2/sitestock/internal/service/inventory"
)

const (
	jobTimeout = 2 * time.Minute
	dateLayout = "2006-01-02"
)

// InventoryReader is the part of the inventory service the jobs need.
type InventoryReader interface {
	Summary(ctx context.Context, kind models.ItemKind, window models.AlertWindow) (models.InventorySummary, error)
	Notifications(ctx context.Context, window models.AlertWindow) ([]models.Notification, error)
	Now() time.Time
}

// Dispatcher delivers notifications and reports how many were sent.
type Dispatcher interface {
	Dispatch(ctx context.Context, notifications []models.Notification) (int, error)
}

// Observer receives computed figures, typically the metrics recorder.
type Observer interface {
	ObserveSummary(kind models.ItemKind, s models.InventorySummary)
	ObserveNotifications(notifications []models.Notification)
	ObserveDispatch(sent int, err error)
}

// SnapshotStore persists daily summaries.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.SummarySnapshot) error
}

// RowAppender writes summary rows to a spreadsheet.
type RowAppender interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// Options carries the schedules and optional collaborators.
type Options struct {
	AlertSchedule  string
	ReportSchedule string
	Location       *time.Location
	Window         models.AlertWindow
	Sheet          RowAppender
	SheetRange     string
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	inventory  InventoryReader
	dispatcher Dispatcher
	observer   Observer
	snapshots  SnapshotStore
	opts       Options
	logger     *zap.Logger
	newID      func() string
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(opts Options, inv InventoryReader, dispatcher Dispatcher, observer Observer, snapshots SnapshotStore, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(opts.Location)),
		inventory:  inv,
		dispatcher: dispatcher,
		observer:   observer,
		snapshots:  snapshots,
		opts:       opts,
		logger:     logger,
		newID:      func() string { return uuid.NewString() },
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("alert_schedule", s.opts.AlertSchedule),
		zap.String("report_schedule", s.opts.ReportSchedule),
		zap.String("timezone", s.opts.Location.String()))

	if _, err := s.cron.AddFunc(s.opts.AlertSchedule, s.runAlerts); err != nil {
		return fmt.Errorf("schedule alert job: %w", err)
	}
	if _, err := s.cron.AddFunc(s.opts.ReportSchedule, s.runSnapshot); err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.checkAlerts(ctx); err != nil {
		s.logger.Error("alert check failed", zap.Error(err))
	}
}

func (s *Scheduler) checkAlerts(ctx context.Context) error {
	if s.observer != nil {
		for _, kind := range []models.ItemKind{models.KindEquipment, models.KindMaterial} {
			summary, err := s.inventory.Summary(ctx, kind, s.opts.Window)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", kind, err)
			}
			s.observer.ObserveSummary(kind, summary)
		}
	}

	notifications, err := s.inventory.Notifications(ctx, s.opts.Window)
	if err != nil {
		return fmt.Errorf("compute notifications: %w", err)
	}
	if s.observer != nil {
		s.observer.ObserveNotifications(notifications)
	}

	sent, err := s.dispatcher.Dispatch(ctx, notifications)
	if s.observer != nil {
		s.observer.ObserveDispatch(sent, err)
	}
	if err != nil {
		return fmt.Errorf("dispatch notifications: %w", err)
	}

	s.logger.Debug("alert check completed", zap.Int("active", len(notifications)), zap.Int("sent", sent))
	return nil
}

func (s *Scheduler) runSnapshot() {
	s.logger.Info("generating inventory snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.takeSnapshot(ctx); err != nil {
		s.logger.Error("inventory snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("inventory snapshot stored")
}

func (s *Scheduler) takeSnapshot(ctx context.Context) error {
	now := s.inventory.Now().In(s.opts.Location)

	var rows [][]interface{}
	for _, kind := range []models.ItemKind{models.KindEquipment, models.KindMaterial} {
		summary, err := s.inventory.Summary(ctx, kind, s.opts.Window)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", kind, err)
		}
		if s.observer != nil {
			s.observer.ObserveSummary(kind, summary)
		}

		snapshot := models.SummarySnapshot{
			ID:              s.newID(),
			Kind:            kind,
			Date:            time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			WindowDays:      s.opts.Window.DaysAhead,
			Total:           summary.Total,
			OutOfStock:      summary.OutOfStock,
			BelowThreshold:  summary.BelowThreshold,
			RestockImminent: summary.RestockImminent,
			OrdersSent:      summary.OrdersSent,
			TotalValue:      summary.TotalValue,
			CreatedAt:       now.UTC(),
		}
		if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("save %s snapshot: %w", kind, err)
		}

		rows = append(rows, []interface{}{
			now.Format(dateLayout),
			string(kind),
			summary.Total,
			summary.OutOfStock,
			summary.BelowThreshold,
			summary.RestockImminent,
			summary.OrdersSent,
			inventory.FormatAmount(summary.TotalValue),
		})
	}

	if s.opts.Sheet != nil {
		if err := s.opts.Sheet.AppendRows(ctx, s.opts.SheetRange, rows); err != nil {
			return fmt.Errorf("append snapshot rows: %w", err)
		}
	}
	return nil
}
