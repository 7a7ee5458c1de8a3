// Package model holds the GORM table mappings of the PostgreSQL store.
package model

import (
	"time"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Repositories assign UUIDv7 keys; gen_random_uuid() covers manual inserts.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string           `gorm:"type:varchar(255);unique;not null"`
	Name         string           `gorm:"type:varchar(100);not null"`
	PasswordHash string           `gorm:"type:varchar(255);not null"`
	Role         string           `gorm:"type:varchar(20);not null;default:'business'"`
	Company      string           `gorm:"type:varchar(255)"`
	Phone        string           `gorm:"type:varchar(30)"`
	IsActive     bool             `gorm:"not null"`
	Settings     *entity.Settings `gorm:"type:jsonb;serializer:json"`
	PushToken    string           `gorm:"type:text"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// All lists every model, in dependency order, for migrations and code generation.
func All() []any {
	return []any{
		&UserModel{},
		&CourierModel{},
		&ShipmentModel{},
		&TrackingLogModel{},
		&NotificationModel{},
		&SystemLogModel{},
	}
}
