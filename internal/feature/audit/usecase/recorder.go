package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	accountentity "account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/audit/domain/entity"
)

// Recorder appends lifecycle events. The event time is always taken from the
// server clock.
type Recorder struct {
	events EventRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewRecorder creates a Recorder writing to events.
func NewRecorder(events EventRepository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{events: events, now: time.Now, logger: logger.Named("audit")}
}

// Record stores an event of eventType for user. Storage failures are returned
// so that the enclosing transition rolls back.
func (r *Recorder) Record(ctx context.Context, eventType entity.EventType, user *accountentity.User) (*entity.UserEvent, error) {
	if user == nil || user.ID == 0 {
		return nil, fmt.Errorf("record %s: event requires a persisted user", eventType)
	}
	event := &entity.UserEvent{
		UserID:    user.ID,
		EventType: eventType,
		EventTime: r.now().UTC(),
	}
	if err := r.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record %s: %w", eventType, err)
	}
	event.User = user
	r.logger.Debug("event recorded",
		zap.Uint("event_id", event.ID),
		zap.Uint("user_id", user.ID),
		zap.String("event_type", string(eventType)))
	return event, nil
}
