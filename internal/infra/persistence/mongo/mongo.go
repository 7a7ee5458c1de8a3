// Package mongo is the MongoDB implementation of the persistence layer.
// Identifiers are stored as canonical UUID strings in _id.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"courierhub/config"
	"courierhub/internal/domain/lifecycle"
	"courierhub/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

const defaultOpTimeout = 5 * time.Second

// Collection names.
const (
	collUsers         = "users"
	collCouriers      = "couriers"
	collShipments     = "shipments"
	collTrackingLogs  = "tracking_logs"
	collNotifications = "notifications"
	collSystemLogs    = "system_logs"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Store bundles the database handle with the per-operation timeout.
type Store struct {
	db        *mongo.Database
	opTimeout time.Duration
}

// New connects to MongoDB. The connection is verified and indexes are ensured on start.
func New(params Params) (*Store, error) {
	cfg := params.Config.Mongo
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo storage selected but mongo.uri is not configured")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	store := NewStore(client.Database(cfg.Database), cfg.Timeout)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			var hello helloReply
			if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
				return errors.Wrap(err, "failed to read MongoDB topology")
			}
			if err := hello.supportsTransactions(); err != nil {
				return err
			}

			if params.Config.Storage.AutoMigrate {
				if err := store.EnsureIndexes(ctx); err != nil {
					return errors.Wrap(err, "failed to ensure MongoDB indexes")
				}
			}

			params.Logger.Info("MongoDB connected", slog.String("database", cfg.Database))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return store, nil
}

// helloReply is the part of the hello command reply that describes the deployment.
type helloReply struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

// supportsTransactions rejects standalone servers. Booking and status changes
// write the shipment and its tracking log in one multi-document transaction.
func (h helloReply) supportsTransactions() error {
	if h.SetName != "" || h.Msg == "isdbgrid" {
		return nil
	}

	return errors.New("MongoDB is running as a standalone server but transactions need a replica set or sharded cluster; " +
		"start mongod with --replSet and add ?replicaSet=<name> to mongo.uri")
}

// NewStore wraps an existing database handle.
func NewStore(db *mongo.Database, opTimeout time.Duration) *Store {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}

	return &Store{db: db, opTimeout: opTimeout}
}

// EnsureIndexes creates the unique and lookup indexes every repository relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		collCouriers: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collShipments: {
			{Keys: bson.D{{Key: "tracking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collTrackingLogs: {
			{Keys: bson.D{{Key: "tracking_id", Value: 1}, {Key: "timestamp", Value: 1}}},
			{Keys: bson.D{{Key: "shipment_id", Value: 1}}},
		},
		collNotifications: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collSystemLogs: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "module", Value: 1}, {Key: "action", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", name)
		}
	}

	return nil
}

// collection is the per-repository handle. A non-nil session binds every call to a transaction.
type collection struct {
	coll      *mongo.Collection
	sess      mongo.Session
	opTimeout time.Duration
}

func (s *Store) collection(name string, sess mongo.Session) collection {
	return collection{coll: s.db.Collection(name), sess: sess, opTimeout: s.opTimeout}
}

// ctx applies the operation timeout and the transaction session, if any.
func (c collection) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, c.opTimeout)
	if c.sess != nil {
		return mongo.NewSessionContext(ctx, c.sess), cancel
	}

	return ctx, cancel
}

// findOptions builds the sort and page options of a listing.
func findOptions(sort bson.D, limit, offset int) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	return opts
}
