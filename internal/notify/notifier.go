// Package notify pushes scan digests to operators.
package notify

import (
	"context"
	"time"

	"github.com/yourusername/race-edge/internal/models"
)

// Notifier delivers a digest of one scan's opportunities. Implementations
// may skip delivery, for example when nothing changed since the last scan.
type Notifier interface {
	NotifyScan(ctx context.Context, opportunities []models.Opportunity, fetchedAt time.Time) error
}
