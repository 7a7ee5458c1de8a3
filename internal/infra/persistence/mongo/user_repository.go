package mongo

import (
	"context"
	"strings"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	c collection
}

// NewUserRepository returns a MongoDB-backed repository.UserRepository.
func NewUserRepository(store *Store) repository.UserRepository {
	return newUserRepository(store, nil)
}

func newUserRepository(store *Store, sess mongo.Session) *userRepository {
	return &userRepository{c: store.collection(collUsers, sess)}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	var doc userDocument
	if err := repo.c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&doc), nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	if user.ID == uuid.Nil {
		user.ID = newID()
	}
	user.Email = strings.ToLower(user.Email)
	stampCreated(&user.CreatedAt, &user.UpdatedAt)

	if _, err := repo.c.coll.InsertOne(ctx, fromUserDomain(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrUserAlreadyExists.WithDetails(user.Email)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	user.Email = strings.ToLower(user.Email)
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	result, err := repo.c.coll.UpdateByID(ctx, user.ID.String(), bson.M{"$set": bson.M{
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
		"company":       user.Company,
		"phone":         user.Phone,
		"is_active":     user.IsActive,
		"push_token":    user.PushToken,
		"last_login":    user.LastLogin,
		"updated_at":    user.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrUserAlreadyExists.WithDetails(user.Email)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	total, err := repo.c.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	cur, err := repo.c.coll.Find(ctx, bson.M{}, findOptions(bson.D{{Key: "created_at", Value: -1}}, limit, offset))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}
	defer cur.Close(ctx)

	var docs []*userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, errors.Wrap(err, "failed to decode users")
	}

	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, toUserDomain(doc))
	}

	return users, total, nil
}

func (repo *userRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.Settings) error {
	ctx, cancel := repo.c.ctx(ctx)
	defer cancel()

	result, err := repo.c.coll.UpdateByID(ctx, id.String(), bson.M{"$set": bson.M{"settings": settings}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user settings")
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

// stampCreated fills zero timestamps of a new record.
func stampCreated(createdAt, updatedAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}
