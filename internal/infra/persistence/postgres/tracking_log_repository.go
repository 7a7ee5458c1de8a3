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

// trackingLogRepository implements the append-only repository.TrackingLogRepository.
type trackingLogRepository struct {
	db *gorm.DB
}

// NewTrackingLogRepository is the constructor for trackingLogRepository.
func NewTrackingLogRepository(db *gorm.DB) repository.TrackingLogRepository {
	return &trackingLogRepository{
		db: db,
	}
}

// Append inserts a new log entry.
func (repo *trackingLogRepository) Append(ctx context.Context, entry *entity.TrackingLogEntry) error {
	logM := fromTrackingLogDomain(entry)
	if logM.ID == uuid.Nil {
		logM.ID = newID()
	}

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		return mapWriteError(err, nil, "failed to append tracking log")
	}

	entry.ID = logM.ID

	return nil
}

// ListByTrackingID returns entries oldest first. Ties on timestamp keep insertion order via the v7 key.
func (repo *trackingLogRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]*entity.TrackingLogEntry, error) {
	var logModels []*model.TrackingLogModel
	if err := repo.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		Order("timestamp ASC").Order("id ASC").
		Find(&logModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tracking logs")
	}

	entries := make([]*entity.TrackingLogEntry, 0, len(logModels))
	for _, logM := range logModels {
		entries = append(entries, toTrackingLogDomain(logM))
	}

	return entries, nil
}

// FindLatestByTrackingID returns the newest entry, or nil when there is none.
func (repo *trackingLogRepository) FindLatestByTrackingID(ctx context.Context, trackingID string) (*entity.TrackingLogEntry, error) {
	var logM model.TrackingLogModel
	if err := repo.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		Order("timestamp DESC").Order("id DESC").
		First(&logM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find latest tracking log")
	}

	return toTrackingLogDomain(&logM), nil
}

// DeleteByShipmentID removes the history of a deleted shipment.
func (repo *trackingLogRepository) DeleteByShipmentID(ctx context.Context, shipmentID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Delete(&model.TrackingLogModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete tracking logs")
	}

	return nil
}

// --- Mapper Functions ---

func toTrackingLogDomain(data *model.TrackingLogModel) *entity.TrackingLogEntry {
	if data == nil {
		return nil
	}

	entry := &entity.TrackingLogEntry{
		ID:          data.ID,
		ShipmentID:  data.ShipmentID,
		TrackingID:  data.TrackingID,
		Status:      entity.TrackingEvent(data.Status),
		Description: data.Description,
		Location: entity.Location{
			City:     data.City,
			State:    data.State,
			Facility: data.Facility,
		},
		Remarks:   data.Remarks,
		UpdatedBy: data.UpdatedBy,
		Timestamp: data.Timestamp,
	}
	if data.Latitude != nil && data.Longitude != nil {
		entry.Location.Coordinates = &entity.Coordinates{Lat: *data.Latitude, Lng: *data.Longitude}
	}

	return entry
}

func fromTrackingLogDomain(data *entity.TrackingLogEntry) *model.TrackingLogModel {
	if data == nil {
		return nil
	}

	logM := &model.TrackingLogModel{
		ID:          data.ID,
		ShipmentID:  data.ShipmentID,
		TrackingID:  data.TrackingID,
		Status:      string(data.Status),
		Description: data.Description,
		City:        data.Location.City,
		State:       data.Location.State,
		Facility:    data.Location.Facility,
		Remarks:     data.Remarks,
		UpdatedBy:   data.UpdatedBy,
		Timestamp:   data.Timestamp,
	}
	if c := data.Location.Coordinates; c != nil {
		logM.Latitude = &c.Lat
		logM.Longitude = &c.Lng
	}
	if logM.UpdatedBy == "" {
		logM.UpdatedBy = entity.DefaultUpdatedBy
	}

	return logM
}
