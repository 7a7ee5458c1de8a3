package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"courierhub/config"
	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/rate"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
	"courierhub/internal/domain/tracking"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

const (
	defaultShipmentPageSize = 10
	maxShipmentPageSize     = 100
	statusFilterAll         = "all"
)

// shipmentService implements the ShipmentUsecase interface.
type shipmentService struct {
	lifecycleEffects

	txManager          repository.TransactionManager
	shipmentRepo       repository.ShipmentRepository
	trackingLogRepo    repository.TrackingLogRepository
	courierRepo        repository.CourierRepository
	labels             service.LabelService
	audit              usecase.AuditRecorder
	clock              clockz.Clock
	intN               tracking.IntN
	trackingIDAttempts int
	bulkLimit          int
}

// ShipmentServiceParams holds dependencies for ShipmentService, injected by Fx.
type ShipmentServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	ShipmentRepo    repository.ShipmentRepository
	TrackingLogRepo repository.TrackingLogRepository
	CourierRepo     repository.CourierRepository
	Notifier        usecase.NotificationUsecase
	Publisher       service.EventPublisher
	Labels          service.LabelService
	Audit           usecase.AuditRecorder
	Clock           clockz.Clock
	Config          *config.Config
	Logger          *slog.Logger
}

// NewShipmentService is the constructor for shipmentService.
func NewShipmentService(params ShipmentServiceParams) usecase.ShipmentUsecase {
	attempts, bulkLimit := 0, 0
	if params.Config != nil && params.Config.Shipment != nil {
		attempts = params.Config.Shipment.TrackingIDAttempts
		bulkLimit = params.Config.Shipment.BulkLimit
	}
	if attempts <= 0 {
		attempts = 5
	}
	if bulkLimit <= 0 {
		bulkLimit = 500
	}

	return &shipmentService{
		lifecycleEffects: lifecycleEffects{
			notifier:  params.Notifier,
			publisher: params.Publisher,
			logger:    params.Logger,
		},
		txManager:          params.TxManager,
		shipmentRepo:       params.ShipmentRepo,
		trackingLogRepo:    params.TrackingLogRepo,
		courierRepo:        params.CourierRepo,
		labels:             params.Labels,
		audit:              params.Audit,
		clock:              params.Clock,
		intN:               tracking.DefaultIntN,
		trackingIDAttempts: attempts,
		bulkLimit:          bulkLimit,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *shipmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateShipment books a shipment, writes its genesis log entry and notifies the owner.
func (srv *shipmentService) CreateShipment(ctx context.Context, actor entity.Actor, input usecase.CreateShipmentInput) (*entity.Shipment, error) {
	courier, err := srv.courierRepo.FindByID(ctx, input.CourierID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find courier")
	}

	shipment, effects, err := srv.book(ctx, actor, courier, input, tracking.GenesisDescription)
	if err != nil {
		return nil, err
	}

	srv.dispatch(ctx, shipment, genesisLog(effects), noticesOf(effects))

	entry := actorLog(actor, entity.ActionCreate, entity.ModuleShipment, "Shipment created: "+shipment.TrackingID)
	entry.Details = map[string]any{
		"shipmentId": shipment.ID.String(),
		"trackingId": shipment.TrackingID,
	}
	srv.audit.Record(ctx, entry)

	return shipment, nil
}

// BulkCreate books every row on its own. A rejected row never blocks the others.
// Bulk rows log a genesis entry but send no per-row notification.
func (srv *shipmentService) BulkCreate(ctx context.Context, actor entity.Actor, inputs []usecase.CreateShipmentInput) (*usecase.BulkCreateOutput, error) {
	if len(inputs) == 0 {
		return nil, domainerrors.ErrInvalidInput.WithDetails("no shipments provided")
	}
	if len(inputs) > srv.bulkLimit {
		return nil, domainerrors.ErrInvalidInput.WithDetails(fmt.Sprintf("at most %d shipments per upload", srv.bulkLimit))
	}

	out := &usecase.BulkCreateOutput{
		Created: make([]*entity.Shipment, 0, len(inputs)),
		Errors:  []usecase.BulkRowError{},
	}
	couriers := make(map[uuid.UUID]*entity.Courier)

	for i, input := range inputs {
		courier, ok := couriers[input.CourierID]
		if !ok {
			found, err := srv.courierRepo.FindByID(ctx, input.CourierID)
			if err != nil {
				out.Errors = append(out.Errors, usecase.BulkRowError{Row: i + 1, Error: rowError(err)})

				continue
			}
			courier = found
			couriers[input.CourierID] = courier
		}

		shipment, effects, err := srv.book(ctx, actor, courier, input, tracking.BulkGenesisDescription)
		if err != nil {
			srv.log(ctx).Debug("Bulk row rejected", slog.Int("row", i+1), slog.Any("error", err))
			out.Errors = append(out.Errors, usecase.BulkRowError{Row: i + 1, Error: rowError(err)})

			continue
		}
		out.Created = append(out.Created, shipment)
		srv.dispatch(ctx, shipment, genesisLog(effects), nil)
	}

	status := entity.LogSuccess
	if len(out.Errors) > 0 {
		status = entity.LogPartial
	}
	entry := actorLog(actor, entity.ActionBulkUpload, entity.ModuleShipment, fmt.Sprintf("Bulk created %d shipments", len(out.Created)))
	entry.Status = status
	entry.Details = map[string]any{"created": len(out.Created), "errors": len(out.Errors)}
	srv.audit.Record(ctx, entry)

	srv.log(ctx).Info("Bulk upload processed", slog.Int("created", len(out.Created)), slog.Int("errors", len(out.Errors)))

	return out, nil
}

// book validates and prices the input, then persists the shipment and its genesis entry
// in one transaction. A tracking ID collision retries the whole transaction with a fresh ID.
func (srv *shipmentService) book(ctx context.Context, actor entity.Actor, courier *entity.Courier, input usecase.CreateShipmentInput, genesis string) (*entity.Shipment, []tracking.Effect, error) {
	if !courier.IsActive {
		return nil, nil, domainerrors.ErrInvalidInput.WithDetails("courier " + courier.Name + " is not accepting shipments")
	}

	shipment, err := srv.newShipment(actor, courier, input)
	if err != nil {
		return nil, nil, err
	}

	var effects []tracking.Effect
	for attempt := 1; attempt <= srv.trackingIDAttempts; attempt++ {
		shipment.TrackingID = tracking.GenerateTrackingID(courier.Name, srv.clock.Now(), srv.intN)

		err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			if err := repoFactory.NewShipmentRepository().Create(ctx, shipment); err != nil {
				return errors.Wrap(err, "failed to create shipment")
			}

			effects = tracking.Genesis(shipment, genesis, shipment.CreatedAt)
			if err := repoFactory.NewTrackingLogRepository().Append(ctx, genesisLog(effects)); err != nil {
				return errors.Wrap(err, "failed to append genesis log")
			}

			return nil
		})
		if err == nil {
			srv.log(ctx).Debug("Shipment booked", slog.String("trackingID", shipment.TrackingID), slog.Int("attempt", attempt))

			return shipment, effects, nil
		}
		if !errors.Is(err, domainerrors.ErrTrackingIDConflict) {
			srv.log(ctx).Error("Failed to book shipment", slog.Any("error", err))

			return nil, nil, errors.Wrap(err, "failed to execute shipment booking transaction")
		}

		srv.log(ctx).Warn("Tracking ID collision, regenerating",
			slog.String("trackingID", shipment.TrackingID),
			slog.Int("attempt", attempt),
		)
	}

	return nil, nil, domainerrors.ErrTrackingIDConflict.WithDetails(
		fmt.Sprintf("no free tracking ID after %d attempts", srv.trackingIDAttempts))
}

func (srv *shipmentService) newShipment(actor entity.Actor, courier *entity.Courier, input usecase.CreateShipmentInput) (*entity.Shipment, error) {
	serviceType := input.ServiceType.OrDefault()
	if !serviceType.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithDetails("unknown service type " + string(serviceType))
	}
	paymentMode := input.PaymentMode
	if paymentMode == "" {
		paymentMode = entity.PaymentPrepaid
	}
	if !paymentMode.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithDetails("unknown payment mode " + string(paymentMode))
	}
	if err := validateParty("sender", input.Sender); err != nil {
		return nil, err
	}
	if err := validateParty("receiver", input.Receiver); err != nil {
		return nil, err
	}

	quoted, err := rate.CalculateRate(courier, input.Package.WeightKg, serviceType, paymentMode.IsCOD())
	if err != nil {
		return nil, err
	}
	shippingCost := float64(quoted)
	if input.ShippingCost != nil {
		if *input.ShippingCost < 0 {
			return nil, domainerrors.ErrInvalidInput.WithDetails("shipping cost cannot be negative")
		}
		shippingCost = *input.ShippingCost
	}
	if input.InsuranceCost < 0 || input.CODAmount < 0 {
		return nil, domainerrors.ErrInvalidInput.WithDetails("amounts cannot be negative")
	}

	pkg := input.Package
	if pkg.Category == "" {
		pkg.Category = entity.CategoryOther
	}

	now := srv.clock.Now()
	expected := now.AddDate(0, 0, rate.EstimateDelivery(courier, serviceType))

	shipment := &entity.Shipment{
		UserID:               actor.UserID,
		CourierID:            courier.ID,
		CourierName:          courier.Name,
		Sender:               input.Sender,
		Receiver:             input.Receiver,
		Package:              pkg,
		ServiceType:          serviceType,
		PaymentMode:          paymentMode,
		CODAmount:            input.CODAmount,
		ShippingCost:         shippingCost,
		InsuranceCost:        input.InsuranceCost,
		Status:               entity.StatusPending,
		PickupDate:           input.PickupDate,
		ExpectedDeliveryDate: &expected,
		SpecialInstructions:  input.SpecialInstructions,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	shipment.RecomputeTotal()

	return shipment, nil
}

func (srv *shipmentService) GetShipment(ctx context.Context, actor entity.Actor, id uuid.UUID) (*usecase.ShipmentDetail, error) {
	shipment, err := srv.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	logs, err := srv.trackingLogRepo.ListByTrackingID(ctx, shipment.TrackingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracking logs")
	}
	slices.Reverse(logs)

	return &usecase.ShipmentDetail{Shipment: shipment, TrackingLogs: logs}, nil
}

func (srv *shipmentService) ListShipments(ctx context.Context, actor entity.Actor, input usecase.ListShipmentsInput) (*usecase.ShipmentList, error) {
	page := input.PageRequest.Normalize(defaultShipmentPageSize, maxShipmentPageSize)

	filter := entity.ShipmentFilter{
		CourierID: input.CourierID,
		From:      input.From,
		To:        input.To,
		Search:    input.Search,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	}
	if !actor.IsAdmin() {
		userID := actor.UserID
		filter.UserID = &userID
	}
	if input.Status != "" && input.Status != statusFilterAll {
		status := entity.ShipmentStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrInvalidStatus.WithDetails(input.Status)
		}
		filter.Status = &status
	}

	shipments, total, err := srv.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}

	return &usecase.ShipmentList{
		PageInfo:  usecase.NewPageInfo(len(shipments), total, page),
		Shipments: shipments,
	}, nil
}

// UpdateShipment edits booking details. The status and tracking ID only change through the lifecycle.
func (srv *shipmentService) UpdateShipment(ctx context.Context, actor entity.Actor, id uuid.UUID, input usecase.UpdateShipmentInput) (*entity.Shipment, error) {
	shipment, err := srv.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Sender != nil {
		if err := validateParty("sender", *input.Sender); err != nil {
			return nil, err
		}
		shipment.Sender = *input.Sender
	}
	if input.Receiver != nil {
		if err := validateParty("receiver", *input.Receiver); err != nil {
			return nil, err
		}
		shipment.Receiver = *input.Receiver
	}
	if input.Package != nil {
		if !(input.Package.WeightKg > 0) {
			return nil, domainerrors.ErrInvalidWeight
		}
		shipment.Package = *input.Package
	}
	if input.ServiceType != nil {
		if !input.ServiceType.IsValid() {
			return nil, domainerrors.ErrInvalidInput.WithDetails("unknown service type " + string(*input.ServiceType))
		}
		shipment.ServiceType = *input.ServiceType
	}
	if input.PaymentMode != nil {
		if !input.PaymentMode.IsValid() {
			return nil, domainerrors.ErrInvalidInput.WithDetails("unknown payment mode " + string(*input.PaymentMode))
		}
		shipment.PaymentMode = *input.PaymentMode
	}
	for _, amount := range []*float64{input.CODAmount, input.ShippingCost, input.InsuranceCost} {
		if amount != nil && *amount < 0 {
			return nil, domainerrors.ErrInvalidInput.WithDetails("amounts cannot be negative")
		}
	}
	if input.CODAmount != nil {
		shipment.CODAmount = *input.CODAmount
	}
	if input.ShippingCost != nil {
		shipment.ShippingCost = *input.ShippingCost
	}
	if input.InsuranceCost != nil {
		shipment.InsuranceCost = *input.InsuranceCost
	}
	if input.PickupDate != nil {
		shipment.PickupDate = input.PickupDate
	}
	if input.ExpectedDeliveryDate != nil {
		shipment.ExpectedDeliveryDate = input.ExpectedDeliveryDate
	}
	if input.SpecialInstructions != nil {
		shipment.SpecialInstructions = *input.SpecialInstructions
	}
	shipment.UpdatedAt = srv.clock.Now()

	if err := srv.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, errors.Wrap(err, "failed to update shipment")
	}

	return shipment, nil
}

// DeleteShipment removes a pending or cancelled shipment together with its tracking history.
func (srv *shipmentService) DeleteShipment(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	shipment, err := srv.findOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := tracking.CanDelete(shipment); err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewTrackingLogRepository().DeleteByShipmentID(ctx, shipment.ID); err != nil {
			return errors.Wrap(err, "failed to delete tracking logs")
		}
		if err := repoFactory.NewShipmentRepository().Delete(ctx, shipment.ID); err != nil {
			return errors.Wrap(err, "failed to delete shipment")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute shipment deletion transaction")
	}

	srv.log(ctx).Info("Shipment deleted", slog.String("trackingID", shipment.TrackingID))
	srv.audit.Record(ctx, actorLog(actor, entity.ActionDelete, entity.ModuleShipment, "Shipment deleted: "+shipment.TrackingID))

	return nil
}

// UpdateStatus applies an operator's transition, then notifies the owner and publishes the event.
func (srv *shipmentService) UpdateStatus(ctx context.Context, op tracking.Operator, id uuid.UUID, input usecase.UpdateStatusInput) (*entity.Shipment, error) {
	if !op.Valid() {
		return nil, domainerrors.ErrOperatorRequired
	}
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidStatus.WithDetails(string(input.Status))
	}

	shipment, err := srv.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shipment")
	}

	actor := op.Actor()
	meta := tracking.Meta{Location: input.Location, Remarks: input.Remarks, UpdatedBy: actor.Email}

	var outcome *tracking.Outcome
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewTrackingLogRepository()

		now, err := lifecycleTime(ctx, logRepo, shipment.TrackingID, srv.clock.Now())
		if err != nil {
			return err
		}
		outcome, err = tracking.Transition(op, *shipment, input.Status, meta, now)
		if err != nil {
			return err
		}
		if err := repoFactory.NewShipmentRepository().UpdateStatus(ctx, outcome.Shipment); err != nil {
			return errors.Wrap(err, "failed to update shipment status")
		}
		if err := logRepo.Append(ctx, outcome.Log()); err != nil {
			return errors.Wrap(err, "failed to append tracking log")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update shipment status",
			slog.String("trackingID", shipment.TrackingID),
			slog.String("status", string(input.Status)),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to execute status transition")
	}

	updated := outcome.Shipment
	srv.dispatch(ctx, updated, outcome.Log(), outcome.Notices())

	entry := actorLog(actor, entity.ActionUpdate, entity.ModuleShipment,
		fmt.Sprintf("Shipment %s status updated to %s", updated.TrackingID, updated.Status))
	entry.Details = map[string]any{"from": string(shipment.Status), "to": string(updated.Status)}
	srv.audit.Record(ctx, entry)

	return updated, nil
}

// SchedulePickup books the pickup and confirms the shipment.
func (srv *shipmentService) SchedulePickup(ctx context.Context, actor entity.Actor, id uuid.UUID, input usecase.SchedulePickupInput) (*entity.Shipment, error) {
	shipment, err := srv.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var outcome *tracking.Outcome
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewTrackingLogRepository()

		now, err := lifecycleTime(ctx, logRepo, shipment.TrackingID, srv.clock.Now())
		if err != nil {
			return err
		}
		outcome, err = tracking.SchedulePickup(*shipment, tracking.PickupRequest{
			Date:         input.Date,
			TimeSlot:     input.TimeSlot,
			Instructions: input.Instructions,
			UpdatedBy:    actor.Email,
		}, now)
		if err != nil {
			return err
		}
		if err := repoFactory.NewShipmentRepository().Update(ctx, outcome.Shipment); err != nil {
			return errors.Wrap(err, "failed to update shipment")
		}
		if err := logRepo.Append(ctx, outcome.Log()); err != nil {
			return errors.Wrap(err, "failed to append tracking log")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute pickup scheduling")
	}

	srv.dispatch(ctx, outcome.Shipment, outcome.Log(), nil)

	return outcome.Shipment, nil
}

// GenerateLabel renders and stores the label, then records its URL on the shipment.
func (srv *shipmentService) GenerateLabel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*usecase.LabelOutput, error) {
	shipment, err := srv.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	label, err := srv.labels.Generate(ctx, shipment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate label")
	}

	shipment.LabelGenerated = true
	shipment.LabelURL = label.URL
	shipment.UpdatedAt = srv.clock.Now()
	if err := srv.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, errors.Wrap(err, "failed to record label")
	}

	srv.log(ctx).Debug("Label generated", slog.String("trackingID", shipment.TrackingID), slog.String("key", label.Key))

	return &usecase.LabelOutput{Shipment: shipment, Label: label}, nil
}

func (srv *shipmentService) GetLabel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*service.Label, error) {
	shipment, err := srv.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !shipment.LabelGenerated {
		return nil, domainerrors.ErrLabelNotGenerated
	}

	label, err := srv.labels.Open(ctx, shipment.TrackingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open label")
	}

	return label, nil
}

// findOwned loads a shipment the actor may act on.
func (srv *shipmentService) findOwned(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Shipment, error) {
	shipment, err := srv.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shipment")
	}
	if !actor.Owns(shipment.UserID) {
		return nil, domainerrors.ErrForbidden.WithDetails("shipment belongs to another account")
	}

	return shipment, nil
}

func validateParty(role string, party entity.Party) error {
	if party.Name == "" || party.Phone == "" || party.Address == "" || party.City == "" || party.State == "" || party.Pincode == "" {
		return domainerrors.ErrInvalidInput.WithDetails(role + " name, phone, address, city, state and pincode are required")
	}

	return nil
}

func genesisLog(effects []tracking.Effect) *entity.TrackingLogEntry {
	for _, e := range effects {
		if e.Kind == tracking.EffectAppendLog {
			return e.Log
		}
	}

	return nil
}

func noticesOf(effects []tracking.Effect) []*tracking.Notice {
	var notices []*tracking.Notice
	for _, e := range effects {
		if e.Kind == tracking.EffectNotify {
			notices = append(notices, e.Notice)
		}
	}

	return notices
}

// rowError is the message reported for a rejected bulk row.
func rowError(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Kind() != domainerrors.KindInternal {
		if appErr.Details() != "" {
			return appErr.Message() + ": " + appErr.Details()
		}

		return appErr.Message()
	}

	return "failed to create shipment"
}
