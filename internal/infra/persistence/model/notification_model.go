package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel mirrors the 'notifications' table.
type NotificationModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read,priority:1"`
	Type        string     `gorm:"type:varchar(30);not null"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Message     string     `gorm:"type:text;not null"`
	ShipmentID  *uuid.UUID `gorm:"type:uuid"`
	TrackingID  string     `gorm:"type:varchar(32)"`
	IsRead      bool       `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2"`
	IsEmailSent bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// SystemLogModel mirrors the 'system_logs' audit table.
type SystemLogModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Action       string         `gorm:"type:varchar(30);not null;index"`
	Module       string         `gorm:"type:varchar(30);not null;index"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index"`
	UserEmail    string         `gorm:"type:varchar(255)"`
	Description  string         `gorm:"type:text;not null"`
	Details      map[string]any `gorm:"type:jsonb;serializer:json"`
	IPAddress    string         `gorm:"type:varchar(64)"`
	UserAgent    string         `gorm:"type:text"`
	Status       string         `gorm:"type:varchar(20);not null;default:'success'"`
	ErrorMessage string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SystemLogModel) TableName() string {
	return "system_logs"
}
