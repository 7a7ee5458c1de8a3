// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/repository"
	"courierhub/internal/usecase"

	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

// auditRecorder implements the AuditRecorder interface on top of the system log store.
type auditRecorder struct {
	logRepo repository.SystemLogRepository
	clock   clockz.Clock
	logger  *slog.Logger
}

// AuditRecorderParams holds dependencies for AuditRecorder, injected by Fx.
type AuditRecorderParams struct {
	fx.In

	LogRepo repository.SystemLogRepository
	Clock   clockz.Clock
	Logger  *slog.Logger
}

// NewAuditRecorder is the constructor for auditRecorder.
func NewAuditRecorder(params AuditRecorderParams) usecase.AuditRecorder {
	return &auditRecorder{
		logRepo: params.LogRepo,
		clock:   params.Clock,
		logger:  params.Logger,
	}
}

// Record fills the request details from ctx and stores the entry. Errors are only logged.
func (r *auditRecorder) Record(ctx context.Context, entry *entity.SystemLog) {
	client := deliverycontext.GetClientInfo(ctx)
	if entry.IPAddress == "" {
		entry.IPAddress = client.IPAddress
	}
	if entry.UserAgent == "" {
		entry.UserAgent = client.UserAgent
	}
	if entry.Status == "" {
		entry.Status = entity.LogSuccess
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}

	if err := r.logRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, r.logger).Warn("Failed to record system log",
			slog.String("action", string(entry.Action)),
			slog.String("module", string(entry.Module)),
			slog.Any("error", err),
		)
	}
}

// actorLog starts an audit entry attributed to actor.
func actorLog(actor entity.Actor, action entity.LogAction, module entity.LogModule, description string) *entity.SystemLog {
	userID := actor.UserID

	return &entity.SystemLog{
		Action:      action,
		Module:      module,
		UserID:      &userID,
		UserEmail:   actor.Email,
		Description: description,
		Status:      entity.LogSuccess,
	}
}
