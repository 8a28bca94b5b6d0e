package db

import (
	"context"
	"fmt"
	"time"

	"github.com/grexie/classifier/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const runsCollection = "runs"

// Run records one training and evaluation. Weights are never stored.
type Run struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Dataset   string             `bson:"dataset"`
	CreatedAt time.Time          `bson:"createdAt"`

	Params      model.TrainParams `bson:"params"`
	NumFeatures int               `bson:"numFeatures"`
	NumClasses  int               `bson:"numClasses"`
	TrainSize   int               `bson:"trainSize"`
	TestSize    int               `bson:"testSize"`

	LossHistory []float64 `bson:"lossHistory"`
	Accuracy    float64   `bson:"accuracy"`
	F1Scores    []float64 `bson:"f1Scores"`
}

func ensureRunIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureIndex(ctx, db, runsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("dataset_createdAt"),
	})
}

// SaveRun inserts run and sets its ID.
func SaveRun(ctx context.Context, db *mongo.Database, run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	if err := ensureRunIndexes(ctx, db); err != nil {
		return err
	}

	id, err := WithTransaction(ctx, db, func(ctx context.Context) (any, error) {
		result, err := db.Collection(runsCollection).InsertOne(ctx, run)
		if err != nil {
			return nil, err
		}
		return result.InsertedID, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save run: %v", err)
	}

	if oid, ok := id.(primitive.ObjectID); ok {
		run.ID = oid
	}
	return nil
}

// ListRuns returns the most recent runs for dataset, newest first. An empty
// dataset matches every run.
func ListRuns(ctx context.Context, db *mongo.Database, dataset string, limit int64) ([]Run, error) {
	filter := bson.M{}
	if dataset != "" {
		filter["dataset"] = dataset
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := db.Collection(runsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %v", err)
	}

	runs := []Run{}
	if err := cur.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode runs: %v", err)
	}
	return runs, nil
}
