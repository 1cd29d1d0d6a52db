package notifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sitestock/internal/domain/models"
	"github.com/mamadbah2/sitestock/internal/service/inventory"
	client "github.com/mamadbah2/sitestock/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// MessagingService describes the outbound operations available to the HTTP layer
// and the scheduler.
type MessagingService interface {
	Dispatch(ctx context.Context, notifications []models.Notification) (int, error)
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// WhatsAppNotifier delivers alert digests through the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	client    client.Client
	recipient string
	tracker   *Tracker
	logger    *zap.Logger
	now       func() time.Time
}

// NewWhatsAppNotifier wires a new notifier. A nil client or empty recipient turns
// Dispatch into a no-op.
func NewWhatsAppNotifier(c client.Client, recipient string, logger *zap.Logger) *WhatsAppNotifier {
	n := &WhatsAppNotifier{
		client:    c,
		recipient: recipient,
		tracker:   NewTracker(),
		logger:    logger,
		now:       time.Now,
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	return n
}

// Dispatch sends a digest of the notifications not delivered before and returns how
// many were included.
func (n *WhatsAppNotifier) Dispatch(ctx context.Context, notifications []models.Notification) (int, error) {
	if n.client == nil || n.recipient == "" {
		n.logger.Debug("alert delivery disabled, skipping dispatch", zap.Int("notifications", len(notifications)))
		return 0, nil
	}

	fresh := n.tracker.Fresh(notifications)
	if len(fresh) == 0 {
		return 0, nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := n.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   n.recipient,
		Body: inventory.Digest(n.now(), fresh),
	})
	if err != nil {
		return 0, fmt.Errorf("send alert digest: %w", err)
	}

	n.tracker.MarkDelivered(fresh)
	n.logger.Info("alert digest sent",
		zap.Int("notifications", len(fresh)),
		zap.String("message_id", resp.MessageID()))
	return len(fresh), nil
}

// SendOutbound lets internal operators push quick notifications via HTTP.
func (n *WhatsAppNotifier) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if n.client == nil {
		return fmt.Errorf("send outbound: whatsapp client not configured")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := n.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("send outbound: %w", err)
	}
	return nil
}
