package notifier

import (
	"sync"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

// Tracker remembers which notifications were already delivered.
type Tracker struct {
	delivered map[string]struct{}
	mu        sync.Mutex
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{delivered: make(map[string]struct{})}
}

// Fresh returns the notifications not delivered yet, in input order. Keys absent from
// current are forgotten so an alert that clears and comes back is sent again.
func (t *Tracker) Fresh(current []models.Notification) []models.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	live := make(map[string]struct{}, len(current))
	var fresh []models.Notification
	for _, n := range current {
		k := key(n)
		live[k] = struct{}{}
		if _, seen := t.delivered[k]; !seen {
			fresh = append(fresh, n)
		}
	}

	for k := range t.delivered {
		if _, ok := live[k]; !ok {
			delete(t.delivered, k)
		}
	}
	return fresh
}

// MarkDelivered records notifications as sent.
func (t *Tracker) MarkDelivered(notifications []models.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range notifications {
		t.delivered[key(n)] = struct{}{}
	}
}

// Len returns the number of remembered notifications.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.delivered)
}

// key identifies an alert independently of its wording, which changes as counts and
// days move. A stock alert that worsens to out of stock gets a new key.
func key(n models.Notification) string {
	k := n.ItemID + "|" + string(n.Kind)
	if n.Kind == models.NotificationStock {
		k += "|" + n.Status.String()
	}
	return k
}
