package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

const (
	defaultUserPageSize = 10
	defaultLogPageSize  = 50
	maxAdminPageSize    = 200
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo     repository.UserRepository
	shipmentRepo repository.ShipmentRepository
	courierRepo  repository.CourierRepository
	logRepo      repository.SystemLogRepository
	audit        usecase.AuditRecorder
	clock        clockz.Clock
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	ShipmentRepo repository.ShipmentRepository
	CourierRepo  repository.CourierRepository
	LogRepo      repository.SystemLogRepository
	Audit        usecase.AuditRecorder
	Clock        clockz.Clock
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:     params.UserRepo,
		shipmentRepo: params.ShipmentRepo,
		courierRepo:  params.CourierRepo,
		logRepo:      params.LogRepo,
		audit:        params.Audit,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func requireAdmin(actor entity.Actor) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden.WithDetails("admin role required")
	}

	return nil
}

func (srv *adminService) Stats(ctx context.Context, actor entity.Actor) (*usecase.AdminStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	_, totalUsers, err := srv.userRepo.List(ctx, 1, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	shipments, err := srv.shipmentRepo.ListForAnalytics(ctx, entity.ShipmentFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}
	couriers, err := srv.courierRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list couriers")
	}

	revenue := decimal.Zero
	for _, s := range shipments {
		revenue = revenue.Add(decimal.NewFromFloat(s.TotalCost))
	}

	return &usecase.AdminStats{
		TotalUsers:     totalUsers,
		TotalShipments: len(shipments),
		TotalCouriers:  len(couriers),
		TotalRevenue:   revenue.Round(0).IntPart(),
	}, nil
}

func (srv *adminService) ListUsers(ctx context.Context, actor entity.Actor, page usecase.PageRequest) (*usecase.UserList, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	page = page.Normalize(defaultUserPageSize, maxAdminPageSize)

	users, total, err := srv.userRepo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserList{PageInfo: usecase.NewPageInfo(len(users), total, page), Users: users}, nil
}

func (srv *adminService) GetUser(ctx context.Context, actor entity.Actor, id uuid.UUID) (*usecase.UserDetail, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	_, count, err := srv.shipmentRepo.List(ctx, entity.ShipmentFilter{UserID: &id, Limit: 1})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count shipments")
	}

	return &usecase.UserDetail{User: user, ShipmentCount: int(count)}, nil
}

func (srv *adminService) UpdateUser(ctx context.Context, actor entity.Actor, id uuid.UUID, input usecase.UpdateUserInput) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrInvalidInput.WithDetails("name cannot be empty")
		}
		user.Name = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domainerrors.ErrInvalidInput.WithDetails("a valid email is required")
		}
		user.Email = email
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, domainerrors.ErrInvalidInput.WithDetails("unknown role " + string(*input.Role))
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		if !*input.IsActive && user.ID == actor.UserID {
			return nil, domainerrors.ErrInvalidInput.WithDetails("admins cannot deactivate themselves")
		}
		user.IsActive = *input.IsActive
	}
	if input.Company != nil {
		user.Company = strings.TrimSpace(*input.Company)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	user.UpdatedAt = srv.clock.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated by admin", slog.String("userID", user.ID.String()), slog.String("role", user.Role.String()))
	srv.audit.Record(ctx, actorLog(actor, entity.ActionUpdate, entity.ModuleUser, "Updated user: "+user.Email))

	return user, nil
}

func (srv *adminService) ListLogs(ctx context.Context, actor entity.Actor, input usecase.ListLogsInput) (*usecase.LogList, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	page := input.PageRequest.Normalize(defaultLogPageSize, maxAdminPageSize)

	logs, total, err := srv.logRepo.List(ctx, entity.SystemLogFilter{
		Action: input.Action,
		Module: input.Module,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list system logs")
	}

	return &usecase.LogList{PageInfo: usecase.NewPageInfo(len(logs), total, page), Logs: logs}, nil
}
