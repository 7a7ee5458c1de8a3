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

// systemLogRepository implements the repository.SystemLogRepository interface.
type systemLogRepository struct {
	db *gorm.DB
}

// NewSystemLogRepository is the constructor for systemLogRepository.
func NewSystemLogRepository(db *gorm.DB) repository.SystemLogRepository {
	return &systemLogRepository{
		db: db,
	}
}

// Create persists an audit record.
func (repo *systemLogRepository) Create(ctx context.Context, log *entity.SystemLog) error {
	logM := fromSystemLogDomain(log)
	if logM.ID == uuid.Nil {
		logM.ID = newID()
	}

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create system log")
	}

	log.ID = logM.ID
	log.CreatedAt = logM.CreatedAt

	return nil
}

// List returns a page of audit records matching the filter, newest first.
func (repo *systemLogRepository) List(ctx context.Context, filter entity.SystemLogFilter) ([]*entity.SystemLog, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Action != nil {
			db = db.Where("action = ?", string(*filter.Action))
		}
		if filter.Module != nil {
			db = db.Where("module = ?", string(*filter.Module))
		}
		if filter.UserID != nil {
			db = db.Where("user_id = ?", *filter.UserID)
		}

		return db
	}

	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.SystemLogModel{}).Scopes(scope).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count system logs")
	}

	var logModels []*model.SystemLogModel
	query := repo.db.WithContext(ctx).Scopes(scope).Order("created_at DESC")
	if err := paginate(query, filter.Limit, filter.Offset).Find(&logModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list system logs")
	}

	logs := make([]*entity.SystemLog, 0, len(logModels))
	for _, logM := range logModels {
		logs = append(logs, toSystemLogDomain(logM))
	}

	return logs, total, nil
}

// --- Mapper Functions ---

func toSystemLogDomain(data *model.SystemLogModel) *entity.SystemLog {
	if data == nil {
		return nil
	}

	return &entity.SystemLog{
		ID:           data.ID,
		Action:       entity.LogAction(data.Action),
		Module:       entity.LogModule(data.Module),
		UserID:       data.UserID,
		UserEmail:    data.UserEmail,
		Description:  data.Description,
		Details:      data.Details,
		IPAddress:    data.IPAddress,
		UserAgent:    data.UserAgent,
		Status:       entity.LogStatus(data.Status),
		ErrorMessage: data.ErrorMessage,
		CreatedAt:    data.CreatedAt,
	}
}

func fromSystemLogDomain(data *entity.SystemLog) *model.SystemLogModel {
	if data == nil {
		return nil
	}

	return &model.SystemLogModel{
		ID:           data.ID,
		Action:       string(data.Action),
		Module:       string(data.Module),
		UserID:       data.UserID,
		UserEmail:    data.UserEmail,
		Description:  data.Description,
		Details:      data.Details,
		IPAddress:    data.IPAddress,
		UserAgent:    data.UserAgent,
		Status:       string(data.Status),
		ErrorMessage: data.ErrorMessage,
		CreatedAt:    data.CreatedAt,
	}
}
