// Package entity defines the domain entities for the audit feature.
package entity

import (
	"time"

	accountentity "account_backend/internal/feature/account/domain/entity"
)

// EventType names a lifecycle transition recorded in the audit log.
type EventType string

const (
	EventUserRegistered  EventType = "USER_REGISTERED"
	EventUserVerified    EventType = "USER_VERIFIED"
	EventPasswordChanged EventType = "PASSWORD_CHANGED"
	EventUserDeleted     EventType = "USER_DELETED"
)

// ParseEventType returns the EventType named by s.
func ParseEventType(s string) (EventType, bool) {
	switch t := EventType(s); t {
	case EventUserRegistered, EventUserVerified, EventPasswordChanged, EventUserDeleted:
		return t, true
	}
	return "", false
}

// UserEvent is an immutable audit record. Rows are only ever inserted.
type UserEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint                `gorm:"not null;index" json:"userId"`
	User   *accountentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`

	EventType EventType `gorm:"size:32;not null;index" json:"eventType"`

	// EventTime is assigned by the recorder and never changed.
	EventTime time.Time `gorm:"not null;index" json:"eventTime"`
}

// TableName returns the table name for GORM.
func (UserEvent) TableName() string {
	return "user_events"
}
