package mongo

import (
	"context"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type trackingLogRepository struct {
	c collection
}

// NewTrackingLogRepository returns a MongoDB-backed repository.TrackingLogRepository.
func NewTrackingLogRepository(store *Store) repository.TrackingLogRepository {
	return newTrackingLogRepository(store, nil)
}

func newTrackingLogRepository(store *Store, sess mongo.Session) *trackingLogRepository {
	return &trackingLogRepository{c: store.collection(collTrackingLogs, sess)}
}

func (repo *trackingLogRepository) Append(ctx context.Context, entry *entity.TrackingLogEntry) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if entry.ID == uuid.Nil {
		entry.ID = newID()
	}

	if _, err := repo.c.coll.InsertOne(ctx, fromTrackingLogDomain(entry)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append tracking log")
	}

	return nil
}

// ListByTrackingID returns entries oldest first; the v7 _id breaks timestamp ties in insertion order.
func (repo *trackingLogRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]*entity.TrackingLogEntry, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	cur, err := repo.c.coll.Find(ctx, bson.M{"tracking_id": trackingID},
		findOptions(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}, 0, 0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracking logs")
	}
	defer cur.Close(ctx)

	var docs []*trackingLogDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode tracking logs")
	}

	entries := make([]*entity.TrackingLogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, toTrackingLogDomain(doc))
	}

	return entries, nil
}

func (repo *trackingLogRepository) FindLatestByTrackingID(ctx context.Context, trackingID string) (*entity.TrackingLogEntry, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})

	var doc trackingLogDocument
	if err := repo.c.coll.FindOne(ctx, bson.M{"tracking_id": trackingID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find latest tracking log")
	}

	return toTrackingLogDomain(&doc), nil
}

func (repo *trackingLogRepository) DeleteByShipmentID(ctx context.Context, shipmentID uuid.UUID) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if _, err := repo.c.coll.DeleteMany(ctx, bson.M{"shipment_id": shipmentID.String()}); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete tracking logs")
	}

	return nil
}
