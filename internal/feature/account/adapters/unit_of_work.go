package adapters

import (
	"context"

	"gorm.io/gorm"

	"account_backend/internal/feature/account/usecase"
)

// RecorderFactory binds an audit recorder to a transaction.
type RecorderFactory func(tx *gorm.DB) usecase.EventRecorder

// gormUnitOfWork runs account transitions inside a GORM transaction.
type gormUnitOfWork struct {
	db       *gorm.DB
	recorder RecorderFactory
}

// Compile-time check to ensure gormUnitOfWork implements UnitOfWork.
var _ usecase.UnitOfWork = (*gormUnitOfWork)(nil)

// NewGormUnitOfWork creates a UnitOfWork whose repositories share one transaction.
func NewGormUnitOfWork(db *gorm.DB, recorder RecorderFactory) *gormUnitOfWork {
	return &gormUnitOfWork{db: db, recorder: recorder}
}

// Do runs fn in a transaction that commits only when fn returns nil.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r usecase.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(usecase.Repositories{
			Users:  NewUserGorm(tx),
			Events: u.recorder(tx),
		})
	})
}
