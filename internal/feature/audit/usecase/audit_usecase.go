// Package usecase implements the append-only audit log of account lifecycle events.
package usecase

import (
	"context"
	"time"

	"account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/shared/pagination"
)

// latestLimit is the number of events returned by LatestForUser.
const latestLimit = 10

// EventFilter narrows an event listing. Nil fields impose no constraint and
// set fields combine with AND. Start and End are inclusive.
type EventFilter struct {
	UserID *uint
	Type   *entity.EventType
	Start  *time.Time
	End    *time.Time
}

// EventRepository abstracts the persistence layer for audit events.
type EventRepository interface {
	// Create inserts an event. Events are never updated or deleted.
	Create(ctx context.Context, event *entity.UserEvent) error

	// FindByID returns domain.ErrEventNotFound when no event matches.
	FindByID(ctx context.Context, id uint) (*entity.UserEvent, error)

	// List returns one page of events matching filter and the total match count.
	List(ctx context.Context, filter EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error)

	// Count returns the number of events matching filter.
	Count(ctx context.Context, filter EventFilter) (int64, error)
}

// eventTimeDesc is the default order of every listing.
var eventTimeDesc = pagination.Sort{Field: "eventTime", Desc: true}

// auditUsecase serves the read side of the audit log.
type auditUsecase struct {
	events EventRepository
}

// NewAuditUsecase creates the audit read usecase.
func NewAuditUsecase(events EventRepository) *auditUsecase {
	return &auditUsecase{events: events}
}

// ListEvents returns one page of all events.
func (u *auditUsecase) ListEvents(ctx context.Context, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
	return u.EventsByFilters(ctx, EventFilter{}, p)
}

// EventsByUser returns one page of the events of a user.
func (u *auditUsecase) EventsByUser(ctx context.Context, userID uint, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
	return u.EventsByFilters(ctx, EventFilter{UserID: &userID}, p)
}

// EventsByType returns one page of the events of a type.
func (u *auditUsecase) EventsByType(ctx context.Context, eventType entity.EventType, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
	return u.EventsByFilters(ctx, EventFilter{Type: &eventType}, p)
}

// EventsByDateRange returns one page of events with start <= eventTime <= end.
func (u *auditUsecase) EventsByDateRange(ctx context.Context, start, end time.Time, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
	return u.EventsByFilters(ctx, EventFilter{Start: &start, End: &end}, p)
}

// EventsByFilters returns one page of events matching every set field of filter.
func (u *auditUsecase) EventsByFilters(ctx context.Context, filter EventFilter, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
	if p.Sort.Field == "" {
		p.Sort = eventTimeDesc
	}
	events, total, err := u.events.List(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(events, p, total)
	return &page, nil
}

// LatestForUser returns the ten most recent events of a user, newest first.
func (u *auditUsecase) LatestForUser(ctx context.Context, userID uint) ([]entity.UserEvent, error) {
	events, _, err := u.events.List(ctx, EventFilter{UserID: &userID}, pagination.Of(0, latestLimit, eventTimeDesc))
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []entity.UserEvent{}
	}
	return events, nil
}

// GetEvent returns an event by ID.
func (u *auditUsecase) GetEvent(ctx context.Context, id uint) (*entity.UserEvent, error) {
	return u.events.FindByID(ctx, id)
}

// CountByUser returns the number of events of a user.
func (u *auditUsecase) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return u.events.Count(ctx, EventFilter{UserID: &userID})
}

// CountByType returns the number of events of a type.
func (u *auditUsecase) CountByType(ctx context.Context, eventType entity.EventType) (int64, error) {
	return u.events.Count(ctx, EventFilter{Type: &eventType})
}
