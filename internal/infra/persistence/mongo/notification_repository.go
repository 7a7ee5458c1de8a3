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

type notificationRepository struct {
	c collection
}

// NewNotificationRepository returns a MongoDB-backed repository.NotificationRepository.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{c: store.collection(collNotifications, nil)}
}

func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if notification.ID == uuid.Nil {
		notification.ID = newID()
	}
	stampCreated(&notification.CreatedAt, &notification.CreatedAt)

	if _, err := repo.c.coll.InsertOne(ctx, fromNotificationDomain(notification)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	return nil
}

func (repo *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	query := bson.M{"user_id": userID.String()}
	if unreadOnly {
		query["is_read"] = false
	}

	total, err := repo.c.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count notifications")
	}

	cur, err := repo.c.coll.Find(ctx, query, findOptions(newestFirst(), limit, offset))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list notifications")
	}
	defer cur.Close(ctx)

	var docs []*notificationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, errors.Wrap(err, "failed to decode notifications")
	}

	notifications := make([]*entity.Notification, 0, len(docs))
	for _, doc := range docs {
		notifications = append(notifications, toNotificationDomain(doc))
	}

	return notifications, total, nil
}

func (repo *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	count, err := repo.c.coll.CountDocuments(ctx, bson.M{"user_id": userID.String(), "is_read": false})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

func (repo *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.UpdateOne(ctx,
		bson.M{"_id": id.String(), "user_id": userID.String()},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrNotificationNotFound
	}

	return nil
}

func (repo *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.UpdateMany(ctx,
		bson.M{"user_id": userID.String(), "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark notifications read")
	}

	return result.ModifiedCount, nil
}

func (repo *notificationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()})
	if err != nil {
		return errors.Wrap(err, "failed to delete notification")
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrNotificationNotFound
	}

	return nil
}
