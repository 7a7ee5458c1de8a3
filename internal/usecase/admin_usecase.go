package usecase

import (
	"context"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateUserInput carries the admin-editable fields of an account. Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *entity.Role
	IsActive *bool
	Company  *string
	Phone    *string
}

// UserList is a page of accounts.
type UserList struct {
	PageInfo
	Users []*entity.User
}

// UserDetail is an account with its booking volume.
type UserDetail struct {
	User          *entity.User
	ShipmentCount int
}

// ListLogsInput narrows the audit trail.
type ListLogsInput struct {
	PageRequest
	Action *entity.LogAction
	Module *entity.LogModule
}

// LogList is a page of audit records.
type LogList struct {
	PageInfo
	Logs []*entity.SystemLog
}

// AdminStats is the platform-wide summary.
type AdminStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalShipments int   `json:"total_shipments"`
	TotalCouriers  int   `json:"total_couriers"` // Active couriers only.
	TotalRevenue   int64 `json:"total_revenue"`
}

// AdminUsecase defines platform administration. Every operation requires an admin actor.
type AdminUsecase interface {
	Stats(ctx context.Context, actor entity.Actor) (*AdminStats, error)
	ListUsers(ctx context.Context, actor entity.Actor, page PageRequest) (*UserList, error)
	GetUser(ctx context.Context, actor entity.Actor, id uuid.UUID) (*UserDetail, error)
	UpdateUser(ctx context.Context, actor entity.Actor, id uuid.UUID, input UpdateUserInput) (*entity.User, error)
	ListLogs(ctx context.Context, actor entity.Actor, input ListLogsInput) (*LogList, error)
}

// AuditRecorder writes audit records. Failures are logged and never reach the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry *entity.SystemLog)
}
