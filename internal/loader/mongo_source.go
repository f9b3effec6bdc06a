package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/descobre-saude/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	// ProceduresCollection holds one document per TUSS code.
	ProceduresCollection = "tuss_codes"
	// PlansCollection holds one document per plan.
	PlansCollection = "products"
)

// ConnectMongo opens a client on url, pings it and returns the named database.
func ConnectMongo(ctx context.Context, url, database string, logger *zap.Logger) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", database))
	return client.Database(database), nil
}

// MongoSource loads the datasets from MongoDB. Documents use the raw field
// names and are returned in insertion order.
type MongoSource struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoSource creates a MongoSource over db.
func NewMongoSource(db *mongo.Database, logger *zap.Logger) *MongoSource {
	return &MongoSource{db: db, logger: logger}
}

// Load reads both collections.
func (ms *MongoSource) Load(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{
		Procedures: make([]models.ProcedureCode, 0),
		Plans:      make([]models.PlanRecord, 0),
	}

	if err := ms.readAll(ctx, ProceduresCollection, &ds.Procedures); err != nil {
		return nil, err
	}
	if err := ms.readAll(ctx, PlansCollection, &ds.Plans); err != nil {
		return nil, err
	}

	ms.logger.Info("Loaded dataset from MongoDB",
		zap.String("database", ms.db.Name()),
		zap.Int("procedures", len(ds.Procedures)),
		zap.Int("plans", len(ds.Plans)))
	return ds, nil
}

func (ms *MongoSource) readAll(ctx context.Context, collection string, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := ms.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Save replaces both collections with ds, keeping dataset order.
func (ms *MongoSource) Save(ctx context.Context, ds *Dataset) error {
	procedures := make([]interface{}, len(ds.Procedures))
	for i, p := range ds.Procedures {
		procedures[i] = p
	}
	plans := make([]interface{}, len(ds.Plans))
	for i, p := range ds.Plans {
		plans[i] = p
	}

	if err := ms.replace(ctx, ProceduresCollection, procedures); err != nil {
		return err
	}
	if err := ms.replace(ctx, PlansCollection, plans); err != nil {
		return err
	}

	ms.logger.Info("Saved dataset to MongoDB",
		zap.Int("procedures", len(procedures)),
		zap.Int("plans", len(plans)))
	return nil
}

func (ms *MongoSource) replace(ctx context.Context, collection string, docs []interface{}) error {
	coll := ms.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}
	// ordered insert so ObjectIDs follow dataset order
	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}
