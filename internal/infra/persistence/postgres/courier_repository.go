package postgres

import (
	"context"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// courierRepository implements the repository.CourierRepository interface.
type courierRepository struct {
	db *gorm.DB
}

// NewCourierRepository is the constructor for courierRepository.
func NewCourierRepository(db *gorm.DB) repository.CourierRepository {
	return &courierRepository{
		db: db,
	}
}

// ListActive returns the active couriers ordered by name.
func (repo *courierRepository) ListActive(ctx context.Context) ([]*entity.Courier, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("is_active = ?", true))
}

// List returns every courier ordered by name.
func (repo *courierRepository) List(ctx context.Context) ([]*entity.Courier, error) {
	return repo.list(ctx, repo.db.WithContext(ctx))
}

func (repo *courierRepository) list(_ context.Context, query *gorm.DB) ([]*entity.Courier, error) {
	var courierModels []*model.CourierModel
	if err := query.Order("name ASC").Order("id ASC").Find(&courierModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list couriers")
	}

	couriers := make([]*entity.Courier, 0, len(courierModels))
	for _, courierM := range courierModels {
		couriers = append(couriers, toCourierDomain(courierM))
	}

	return couriers, nil
}

// FindByID retrieves a courier by its unique ID.
func (repo *courierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Courier, error) {
	var courierM model.CourierModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&courierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrCourierNotFound
		}

		return nil, errors.Wrap(err, "failed to find courier by id")
	}

	return toCourierDomain(&courierM), nil
}

// Create persists a new courier.
func (repo *courierRepository) Create(ctx context.Context, courier *entity.Courier) error {
	courierM := fromCourierDomain(courier)
	if courierM.ID == uuid.Nil {
		courierM.ID = newID()
	}

	if err := repo.db.WithContext(ctx).Create(courierM).Error; err != nil {
		return mapWriteError(err, domainerrors.ErrCourierAlreadyExists.WithDetails(courier.Name), "failed to create courier")
	}

	courier.ID = courierM.ID
	courier.CreatedAt = courierM.CreatedAt
	courier.UpdatedAt = courierM.UpdatedAt

	return nil
}

// Update overwrites every column of an existing courier.
func (repo *courierRepository) Update(ctx context.Context, courier *entity.Courier) error {
	courierM := fromCourierDomain(courier)

	result := repo.db.WithContext(ctx).
		Model(&model.CourierModel{}).
		Where("id = ?", courier.ID).
		Select("*").Omit("id", "created_at").
		Updates(courierM)
	if result.Error != nil {
		return mapWriteError(result.Error, domainerrors.ErrCourierAlreadyExists.WithDetails(courier.Name), "failed to update courier")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCourierNotFound
	}

	courier.UpdatedAt = courierM.UpdatedAt

	return nil
}

// Delete removes a courier.
func (repo *courierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CourierModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete courier")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCourierNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCourierDomain(data *model.CourierModel) *entity.Courier {
	if data == nil {
		return nil
	}

	return &entity.Courier{
		ID:          data.ID,
		Name:        data.Name,
		Code:        data.Code,
		Logo:        data.Logo,
		Description: data.Description,
		IsActive:    data.IsActive,
		Pricing: entity.CourierPricing{
			BaseRate:            data.BaseRate,
			WeightRate:          data.WeightRate,
			ExpressMultiplier:   data.ExpressMultiplier,
			OvernightMultiplier: data.OvernightMultiplier,
			CODCharges:          data.CODCharges,
			FuelSurcharge:       data.FuelSurcharge,
		},
		Coverage: entity.CourierCoverage{
			Domestic:           data.Coverage.Domestic,
			International:      data.Coverage.International,
			ServicePincodes:    data.Coverage.ServicePincodes,
			RestrictedPincodes: data.Coverage.RestrictedPincodes,
		},
		Performance: entity.CourierPerformance{
			AvgDeliveryDays:     data.AvgDeliveryDays,
			DeliverySuccessRate: data.DeliverySuccessRate,
			AvgRating:           data.AvgRating,
		},
		Contact: entity.CourierContact{
			SupportEmail: data.SupportEmail,
			SupportPhone: data.SupportPhone,
			Website:      data.Website,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCourierDomain(data *entity.Courier) *model.CourierModel {
	if data == nil {
		return nil
	}

	return &model.CourierModel{
		ID:                  data.ID,
		Name:                data.Name,
		Code:                data.Code,
		Logo:                data.Logo,
		Description:         data.Description,
		IsActive:            data.IsActive,
		BaseRate:            data.Pricing.BaseRate,
		WeightRate:          data.Pricing.WeightRate,
		ExpressMultiplier:   data.Pricing.ExpressMultiplier,
		OvernightMultiplier: data.Pricing.OvernightMultiplier,
		CODCharges:          data.Pricing.CODCharges,
		FuelSurcharge:       data.Pricing.FuelSurcharge,
		Coverage: model.CoverageModel{
			Domestic:           data.Coverage.Domestic,
			International:      data.Coverage.International,
			ServicePincodes:    data.Coverage.ServicePincodes,
			RestrictedPincodes: data.Coverage.RestrictedPincodes,
		},
		AvgDeliveryDays:     data.Performance.AvgDeliveryDays,
		DeliverySuccessRate: data.Performance.DeliverySuccessRate,
		AvgRating:           data.Performance.AvgRating,
		SupportEmail:        data.Contact.SupportEmail,
		SupportPhone:        data.Contact.SupportPhone,
		Website:             data.Contact.Website,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
