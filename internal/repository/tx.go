package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs work spanning multiple repositories inside one database
// transaction, so writes to different tables commit or roll back together.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, leaves LeaveRepository) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared DB handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

// WithTransaction executes fn with both repositories bound to the same
// transaction.
func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, leaves LeaveRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, &leaveRepository{db: tx})
	})
}
