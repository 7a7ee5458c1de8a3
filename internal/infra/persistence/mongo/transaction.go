package mongo

import (
	"context"

	"courierhub/internal/domain/repository"
	"courierhub/internal/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// sessionTransactionManager runs use case work inside a MongoDB multi-document transaction.
// Transactions need a replica set or sharded cluster.
type sessionTransactionManager struct {
	store *Store
}

// sessionRepositoryFactory hands out repositories bound to one session.
type sessionRepositoryFactory struct {
	store *Store
	sess  mongo.Session
}

func (f *sessionRepositoryFactory) NewShipmentRepository() repository.ShipmentRepository {
	return newShipmentRepository(f.store, f.sess)
}

func (f *sessionRepositoryFactory) NewTrackingLogRepository() repository.TrackingLogRepository {
	return newTrackingLogRepository(f.store, f.sess)
}

func (f *sessionRepositoryFactory) NewUserRepository() repository.UserRepository {
	return newUserRepository(f.store, f.sess)
}

// NewTransactionManager is the constructor for sessionTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &sessionTransactionManager{store: store}
}

// Execute runs fn in a transaction. The driver may retry fn on transient errors.
func (tm *sessionTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	sess, err := tm.store.db.Client().StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer sess.EndSession(ctx)

	factory := &sessionRepositoryFactory{store: tm.store, sess: sess}

	_, err = sess.WithTransaction(ctx, func(_ mongo.SessionContext) (any, error) {
		return nil, fn(factory)
	})

	return err
}
