package mongo

import (
	"context"
	"regexp"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type shipmentRepository struct {
	c collection
}

// NewShipmentRepository returns a MongoDB-backed repository.ShipmentRepository.
func NewShipmentRepository(store *Store) repository.ShipmentRepository {
	return newShipmentRepository(store, nil)
}

func newShipmentRepository(store *Store, sess mongo.Session) *shipmentRepository {
	return &shipmentRepository{c: store.collection(collShipments, sess)}
}

func (repo *shipmentRepository) Create(ctx context.Context, shipment *entity.Shipment) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if shipment.ID == uuid.Nil {
		shipment.ID = newID()
	}
	shipment.RecomputeTotal()
	stampCreated(&shipment.CreatedAt, &shipment.UpdatedAt)

	if _, err := repo.c.coll.InsertOne(ctx, fromShipmentDomain(shipment)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrTrackingIDConflict.WithDetails(shipment.TrackingID)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shipment")
	}

	return nil
}

func (repo *shipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

func (repo *shipmentRepository) FindByTrackingID(ctx context.Context, trackingID string) (*entity.Shipment, error) {
	return repo.findOne(ctx, bson.M{"tracking_id": trackingID})
}

func (repo *shipmentRepository) findOne(ctx context.Context, filter bson.M) (*entity.Shipment, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	var doc shipmentDocument
	if err := repo.c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrShipmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	return toShipmentDomain(&doc), nil
}

func (repo *shipmentRepository) List(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	query := shipmentQuery(filter)

	countCtx, cancel := repo.c.ctx(ctx)
	defer cancel()

	total, err := repo.c.coll.CountDocuments(countCtx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count shipments")
	}

	shipments, err := repo.find(ctx, query, findOptions(newestFirst(), filter.Limit, filter.Offset))
	if err != nil {
		return nil, 0, err
	}

	return shipments, total, nil
}

func (repo *shipmentRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Shipment, error) {
	return repo.find(ctx, bson.M{}, findOptions(newestFirst(), limit, 0))
}

func (repo *shipmentRepository) ListForAnalytics(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, error) {
	return repo.find(ctx, shipmentQuery(filter), findOptions(bson.D{{Key: "created_at", Value: 1}}, 0, 0))
}

func (repo *shipmentRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*entity.Shipment, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	cur, err := repo.c.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}
	defer cur.Close(ctx)

	var docs []*shipmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode shipments")
	}

	shipments := make([]*entity.Shipment, 0, len(docs))
	for _, doc := range docs {
		shipments = append(shipments, toShipmentDomain(doc))
	}

	return shipments, nil
}

func (repo *shipmentRepository) Update(ctx context.Context, shipment *entity.Shipment) error {
	shipment.RecomputeTotal()
	if shipment.UpdatedAt.IsZero() {
		shipment.UpdatedAt = time.Now()
	}
	doc := fromShipmentDomain(shipment)

	return repo.set(ctx, shipment.ID, bson.M{
		"courier_id":             doc.CourierID,
		"courier_name":           doc.CourierName,
		"sender":                 doc.Sender,
		"receiver":               doc.Receiver,
		"package":                doc.Package,
		"service_type":           doc.ServiceType,
		"payment_mode":           doc.PaymentMode,
		"cod_amount":             doc.CODAmount,
		"shipping_cost":          doc.ShippingCost,
		"insurance_cost":         doc.InsuranceCost,
		"total_cost":             doc.TotalCost,
		"status":                 doc.Status,
		"pickup_date":            doc.PickupDate,
		"expected_delivery_date": doc.ExpectedDeliveryDate,
		"actual_delivery_date":   doc.ActualDeliveryDate,
		"special_instructions":   doc.SpecialInstructions,
		"label_generated":        doc.LabelGenerated,
		"label_url":              doc.LabelURL,
		"failure_reason":         doc.FailureReason,
		"attempt_count":          doc.AttemptCount,
		"updated_at":             doc.UpdatedAt,
	})
}

func (repo *shipmentRepository) UpdateStatus(ctx context.Context, shipment *entity.Shipment) error {
	return repo.set(ctx, shipment.ID, bson.M{
		"status":               string(shipment.Status),
		"pickup_date":          shipment.PickupDate,
		"actual_delivery_date": shipment.ActualDeliveryDate,
		"failure_reason":       shipment.FailureReason,
		"attempt_count":        shipment.AttemptCount,
		"updated_at":           shipment.UpdatedAt,
	})
}

func (repo *shipmentRepository) set(ctx context.Context, id uuid.UUID, fields bson.M) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.UpdateByID(ctx, id.String(), bson.M{"$set": fields})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update shipment")
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrShipmentNotFound
	}

	return nil
}

func (repo *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete shipment")
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrShipmentNotFound
	}

	return nil
}

func newestFirst() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}

func shipmentQuery(filter entity.ShipmentFilter) bson.M {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = filter.UserID.String()
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.CourierID != nil {
		query["courier_id"] = filter.CourierID.String()
	}
	if filter.From != nil || filter.To != nil {
		createdAt := bson.M{}
		if filter.From != nil {
			createdAt["$gte"] = *filter.From
		}
		if filter.To != nil {
			createdAt["$lte"] = *filter.To
		}
		query["created_at"] = createdAt
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"tracking_id": pattern},
			bson.M{"receiver.name": pattern},
			bson.M{"receiver.city": pattern},
		}
	}

	return query
}
