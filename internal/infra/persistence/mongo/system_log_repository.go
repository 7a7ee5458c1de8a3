package mongo

import (
	"context"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type systemLogRepository struct {
	c collection
}

// NewSystemLogRepository returns a MongoDB-backed repository.SystemLogRepository.
func NewSystemLogRepository(store *Store) repository.SystemLogRepository {
	return &systemLogRepository{c: store.collection(collSystemLogs, nil)}
}

func (repo *systemLogRepository) Create(ctx context.Context, log *entity.SystemLog) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if log.ID == uuid.Nil {
		log.ID = newID()
	}
	stampCreated(&log.CreatedAt, &log.CreatedAt)

	if _, err := repo.c.coll.InsertOne(ctx, fromSystemLogDomain(log)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create system log")
	}

	return nil
}

func (repo *systemLogRepository) List(ctx context.Context, filter entity.SystemLogFilter) ([]*entity.SystemLog, int64, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Action != nil {
		query["action"] = string(*filter.Action)
	}
	if filter.Module != nil {
		query["module"] = string(*filter.Module)
	}
	if filter.UserID != nil {
		query["user_id"] = filter.UserID.String()
	}

	total, err := repo.c.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count system logs")
	}

	cur, err := repo.c.coll.Find(ctx, query, findOptions(newestFirst(), filter.Limit, filter.Offset))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list system logs")
	}
	defer cur.Close(ctx)

	var docs []*systemLogDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, errors.Wrap(err, "failed to decode system logs")
	}

	logs := make([]*entity.SystemLog, 0, len(docs))
	for _, doc := range docs {
		logs = append(logs, toSystemLogDomain(doc))
	}

	return logs, total, nil
}
