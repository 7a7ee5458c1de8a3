package mongo

import (
	"context"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type courierRepository struct {
	c collection
}

// NewCourierRepository returns a MongoDB-backed repository.CourierRepository.
func NewCourierRepository(store *Store) repository.CourierRepository {
	return &courierRepository{c: store.collection(collCouriers, nil)}
}

func (repo *courierRepository) ListActive(ctx context.Context) ([]*entity.Courier, error) {
	return repo.find(ctx, bson.M{"is_active": true})
}

func (repo *courierRepository) List(ctx context.Context) ([]*entity.Courier, error) {
	return repo.find(ctx, bson.M{})
}

func (repo *courierRepository) find(ctx context.Context, filter bson.M) ([]*entity.Courier, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	cur, err := repo.c.coll.Find(ctx, filter, findOptions(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}, 0, 0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list couriers")
	}
	defer cur.Close(ctx)

	var docs []*courierDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode couriers")
	}

	couriers := make([]*entity.Courier, 0, len(docs))
	for _, doc := range docs {
		couriers = append(couriers, toCourierDomain(doc))
	}

	return couriers, nil
}

func (repo *courierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Courier, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	var doc courierDocument
	if err := repo.c.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrCourierNotFound
		}

		return nil, errors.Wrap(err, "failed to find courier")
	}

	return toCourierDomain(&doc), nil
}

func (repo *courierRepository) Create(ctx context.Context, courier *entity.Courier) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if courier.ID == uuid.Nil {
		courier.ID = newID()
	}
	stampCreated(&courier.CreatedAt, &courier.UpdatedAt)

	if _, err := repo.c.coll.InsertOne(ctx, fromCourierDomain(courier)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrCourierAlreadyExists.WithDetails(courier.Name)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create courier")
	}

	return nil
}

func (repo *courierRepository) Update(ctx context.Context, courier *entity.Courier) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if courier.UpdatedAt.IsZero() {
		courier.UpdatedAt = time.Now()
	}
	doc := fromCourierDomain(courier)

	result, err := repo.c.coll.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{
		"name":        doc.Name,
		"code":        doc.Code,
		"logo":        doc.Logo,
		"description": doc.Description,
		"is_active":   doc.IsActive,
		"pricing":     doc.Pricing,
		"coverage":    doc.Coverage,
		"performance": doc.Performance,
		"contact":     doc.Contact,
		"updated_at":  doc.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrCourierAlreadyExists.WithDetails(courier.Name)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update courier")
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrCourierNotFound
	}

	return nil
}

func (repo *courierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete courier")
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrCourierNotFound
	}

	return nil
}
