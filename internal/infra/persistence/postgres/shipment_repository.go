package postgres

import (
	"context"
	"strings"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shipmentRepository implements the repository.ShipmentRepository interface.
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository is the constructor for shipmentRepository.
func NewShipmentRepository(db *gorm.DB) repository.ShipmentRepository {
	return &shipmentRepository{
		db: db,
	}
}

// Create persists a new shipment. A duplicate tracking ID yields ErrTrackingIDConflict.
func (repo *shipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	shipment.RecomputeTotal()
	shipmentM := fromShipmentDomain(shipment)
	if shipmentM.ID == uuid.Nil {
		shipmentM.ID = newID()
	}

	if err := repo.db.WithContext(ctx).Create(shipmentM).Error; err != nil {
		return mapWriteError(err, domainerrors.ErrTrackingIDConflict.WithDetails(shipment.TrackingID), "failed to create shipment")
	}

	shipment.ID = shipmentM.ID
	shipment.CreatedAt = shipmentM.CreatedAt
	shipment.UpdatedAt = shipmentM.UpdatedAt

	return nil
}

// FindByID retrieves a shipment by its unique ID.
func (repo *shipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByTrackingID retrieves a shipment by its public tracking ID.
func (repo *shipmentRepository) FindByTrackingID(ctx context.Context, trackingID string) (*entity.Shipment, error) {
	return repo.findOne(ctx, "tracking_id = ?", trackingID)
}

func (repo *shipmentRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Shipment, error) {
	var shipmentM model.ShipmentModel

	if err := repo.db.WithContext(ctx).Where(cond, arg).First(&shipmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrShipmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	return toShipmentDomain(&shipmentM), nil
}

// List returns a page of shipments matching the filter, newest first, with the total match count.
func (repo *shipmentRepository) List(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	var total int64
	if err := applyShipmentFilter(repo.db.WithContext(ctx).Model(&model.ShipmentModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count shipments")
	}

	query := applyShipmentFilter(repo.db.WithContext(ctx), filter).Order("created_at DESC")
	shipments, err := repo.find(paginate(query, filter.Limit, filter.Offset))
	if err != nil {
		return nil, 0, err
	}

	return shipments, total, nil
}

// ListRecent returns the most recently created shipments.
func (repo *shipmentRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Shipment, error) {
	return repo.find(paginate(repo.db.WithContext(ctx).Order("created_at DESC"), limit, 0))
}

// ListForAnalytics returns every shipment matching the filter, oldest first.
func (repo *shipmentRepository) ListForAnalytics(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, error) {
	return repo.find(applyShipmentFilter(repo.db.WithContext(ctx), filter).Order("created_at ASC"))
}

func (repo *shipmentRepository) find(query *gorm.DB) ([]*entity.Shipment, error) {
	var shipmentModels []*model.ShipmentModel
	if err := query.Find(&shipmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}

	shipments := make([]*entity.Shipment, 0, len(shipmentModels))
	for _, shipmentM := range shipmentModels {
		shipments = append(shipments, toShipmentDomain(shipmentM))
	}

	return shipments, nil
}

// Update overwrites every mutable column of the shipment.
func (repo *shipmentRepository) Update(ctx context.Context, shipment *entity.Shipment) error {
	shipment.RecomputeTotal()
	shipmentM := fromShipmentDomain(shipment)

	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ?", shipment.ID).
		Select("*").Omit("id", "tracking_id", "user_id", "created_at").
		Updates(shipmentM)
	if result.Error != nil {
		return mapWriteError(result.Error, nil, "failed to update shipment")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrShipmentNotFound
	}

	shipment.UpdatedAt = shipmentM.UpdatedAt

	return nil
}

// UpdateStatus writes only the lifecycle columns touched by a transition.
func (repo *shipmentRepository) UpdateStatus(ctx context.Context, shipment *entity.Shipment) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ?", shipment.ID).
		Updates(map[string]any{
			"status":               string(shipment.Status),
			"pickup_date":          shipment.PickupDate,
			"actual_delivery_date": shipment.ActualDeliveryDate,
			"failure_reason":       shipment.FailureReason,
			"attempt_count":        shipment.AttemptCount,
			"updated_at":           shipment.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update shipment status")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrShipmentNotFound
	}

	return nil
}

// Delete removes a shipment.
func (repo *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ShipmentModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete shipment")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrShipmentNotFound
	}

	return nil
}

func applyShipmentFilter(query *gorm.DB, filter entity.ShipmentFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CourierID != nil {
		query = query.Where("courier_id = ?", *filter.CourierID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(`tracking_id ILIKE ? ESCAPE '\' OR receiver_name ILIKE ? ESCAPE '\' OR receiver_city ILIKE ? ESCAPE '\'`,
			pattern, pattern, pattern)
	}

	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches search literally anywhere in the column.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// --- Mapper Functions ---

func toPartyDomain(data model.PartyModel) entity.Party {
	return entity.Party{
		Name:    data.Name,
		Phone:   data.Phone,
		Email:   data.Email,
		Address: data.Address,
		City:    data.City,
		State:   data.State,
		Pincode: data.Pincode,
	}
}

func fromPartyDomain(data entity.Party) model.PartyModel {
	return model.PartyModel{
		Name:    data.Name,
		Phone:   data.Phone,
		Email:   data.Email,
		Address: data.Address,
		City:    data.City,
		State:   data.State,
		Pincode: data.Pincode,
	}
}

func toShipmentDomain(data *model.ShipmentModel) *entity.Shipment {
	if data == nil {
		return nil
	}

	return &entity.Shipment{
		ID:          data.ID,
		TrackingID:  data.TrackingID,
		UserID:      data.UserID,
		CourierID:   data.CourierID,
		CourierName: data.CourierName,
		Sender:      toPartyDomain(data.Sender),
		Receiver:    toPartyDomain(data.Receiver),
		Package: entity.Package{
			WeightKg:      data.Package.Weight,
			LengthCm:      data.Package.Length,
			WidthCm:       data.Package.Width,
			HeightCm:      data.Package.Height,
			Description:   data.Package.Description,
			DeclaredValue: data.Package.DeclaredValue,
			Category:      entity.PackageCategory(data.Package.Category),
		},
		ServiceType:          entity.ServiceType(data.ServiceType),
		PaymentMode:          entity.PaymentMode(data.PaymentMode),
		CODAmount:            data.CODAmount,
		ShippingCost:         data.ShippingCost,
		InsuranceCost:        data.InsuranceCost,
		TotalCost:            data.TotalCost,
		Status:               entity.ShipmentStatus(data.Status),
		PickupDate:           data.PickupDate,
		ExpectedDeliveryDate: data.ExpectedDeliveryDate,
		ActualDeliveryDate:   data.ActualDeliveryDate,
		SpecialInstructions:  data.SpecialInstructions,
		LabelGenerated:       data.LabelGenerated,
		LabelURL:             data.LabelURL,
		FailureReason:        data.FailureReason,
		AttemptCount:         data.AttemptCount,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

func fromShipmentDomain(data *entity.Shipment) *model.ShipmentModel {
	if data == nil {
		return nil
	}

	return &model.ShipmentModel{
		ID:          data.ID,
		TrackingID:  data.TrackingID,
		UserID:      data.UserID,
		CourierID:   data.CourierID,
		CourierName: data.CourierName,
		Sender:      fromPartyDomain(data.Sender),
		Receiver:    fromPartyDomain(data.Receiver),
		Package: model.PackageModel{
			Weight:        data.Package.WeightKg,
			Length:        data.Package.LengthCm,
			Width:         data.Package.WidthCm,
			Height:        data.Package.HeightCm,
			Description:   data.Package.Description,
			DeclaredValue: data.Package.DeclaredValue,
			Category:      string(data.Package.Category),
		},
		ServiceType:          string(data.ServiceType),
		PaymentMode:          string(data.PaymentMode),
		CODAmount:            data.CODAmount,
		ShippingCost:         data.ShippingCost,
		InsuranceCost:        data.InsuranceCost,
		TotalCost:            data.TotalCost,
		Status:               string(data.Status),
		PickupDate:           data.PickupDate,
		ExpectedDeliveryDate: data.ExpectedDeliveryDate,
		ActualDeliveryDate:   data.ActualDeliveryDate,
		SpecialInstructions:  data.SpecialInstructions,
		LabelGenerated:       data.LabelGenerated,
		LabelURL:             data.LabelURL,
		FailureReason:        data.FailureReason,
		AttemptCount:         data.AttemptCount,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}
