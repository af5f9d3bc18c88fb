// Package adapters provides the GORM event store for the audit feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"account_backend/internal/feature/audit/domain"
	"account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/feature/audit/usecase"
	"account_backend/internal/platform/db"
	"account_backend/internal/shared/pagination"
)

// eventSortColumns whitelists the sortable event fields.
var eventSortColumns = map[string]string{
	"id":        "id",
	"eventTime": "event_time",
	"eventType": "event_type",
	"userId":    "user_id",
}

// eventGorm is the GORM implementation of the EventRepository interface.
type eventGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure eventGorm implements EventRepository.
var _ usecase.EventRepository = (*eventGorm)(nil)

// NewEventGorm creates a new instance of eventGorm.
func NewEventGorm(db *gorm.DB) *eventGorm {
	return &eventGorm{db: db}
}

// Create inserts an event without touching the associated user row.
func (r *eventGorm) Create(ctx context.Context, event *entity.UserEvent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

// FindByID retrieves an event and its user.
func (r *eventGorm) FindByID(ctx context.Context, id uint) (*entity.UserEvent, error) {
	var event entity.UserEvent
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// List returns one page of events matching filter, each with its user.
func (r *eventGorm) List(ctx context.Context, filter usecase.EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error) {
	q := applyEventFilter(filter)(r.db.WithContext(ctx).Model(&entity.UserEvent{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entity.UserEvent
	if err := q.Preload("User").
		Scopes(db.Paginate(p, eventSortColumns, pagination.Sort{Field: "eventTime", Desc: true})).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Count returns the number of events matching filter.
func (r *eventGorm) Count(ctx context.Context, filter usecase.EventFilter) (int64, error) {
	var n int64
	err := applyEventFilter(filter)(r.db.WithContext(ctx).Model(&entity.UserEvent{})).
		Count(&n).Error
	return n, err
}

// applyEventFilter adds one predicate per set field of filter.
func applyEventFilter(filter usecase.EventFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			tx = tx.Where("user_id = ?", *filter.UserID)
		}
		if filter.Type != nil {
			tx = tx.Where("event_type = ?", *filter.Type)
		}
		if filter.Start != nil {
			tx = tx.Where("event_time >= ?", filter.Start.UTC())
		}
		if filter.End != nil {
			tx = tx.Where("event_time <= ?", filter.End.UTC())
		}
		return tx
	}
}
