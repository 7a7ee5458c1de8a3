package entity

import (
	"time"

	"github.com/google/uuid"
)

// LogAction is what a system log entry records.
type LogAction string

const (
	ActionLogin      LogAction = "login"
	ActionLogout     LogAction = "logout"
	ActionCreate     LogAction = "create"
	ActionUpdate     LogAction = "update"
	ActionDelete     LogAction = "delete"
	ActionBulkUpload LogAction = "bulk_upload"
	ActionExport     LogAction = "export"
	ActionAPICall    LogAction = "api_call"
	ActionError      LogAction = "error"
	ActionSystem     LogAction = "system"
)

// IsValid reports whether a is a known action.
func (a LogAction) IsValid() bool {
	switch a {
	case ActionLogin, ActionLogout, ActionCreate, ActionUpdate, ActionDelete,
		ActionBulkUpload, ActionExport, ActionAPICall, ActionError, ActionSystem:
		return true
	default:
		return false
	}
}

// LogModule is the area of the system a log entry belongs to.
type LogModule string

const (
	ModuleAuth      LogModule = "auth"
	ModuleShipment  LogModule = "shipment"
	ModuleCourier   LogModule = "courier"
	ModuleTracking  LogModule = "tracking"
	ModuleUser      LogModule = "user"
	ModuleAnalytics LogModule = "analytics"
	ModuleAdmin     LogModule = "admin"
	ModuleSettings  LogModule = "settings"
	ModuleSystem    LogModule = "system"
)

// IsValid reports whether m is a known module.
func (m LogModule) IsValid() bool {
	switch m {
	case ModuleAuth, ModuleShipment, ModuleCourier, ModuleTracking, ModuleUser,
		ModuleAnalytics, ModuleAdmin, ModuleSettings, ModuleSystem:
		return true
	default:
		return false
	}
}

// LogStatus is the outcome of the logged action.
type LogStatus string

const (
	LogSuccess LogStatus = "success"
	LogFailed  LogStatus = "failed"
	LogPartial LogStatus = "partial"
	LogPending LogStatus = "pending"
)

// SystemLog is an audit record reviewed by admins.
type SystemLog struct {
	ID           uuid.UUID      `json:"id"`
	Action       LogAction      `json:"action"`
	Module       LogModule      `json:"module"`
	UserID       *uuid.UUID     `json:"user_id,omitempty"`
	UserEmail    string         `json:"user_email,omitempty"`
	Description  string         `json:"description"`
	Details      map[string]any `json:"details,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	Status       LogStatus      `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// SystemLogFilter narrows the admin log listing.
type SystemLogFilter struct {
	Action *LogAction
	Module *LogModule
	UserID *uuid.UUID
	Limit  int
	Offset int
}
