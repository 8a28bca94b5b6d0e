package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoURL = "mongodb://localhost:27017/classifier"

// EnsureIndex creates model on collectionName unless an index with the same
// name already exists.
func EnsureIndex(ctx context.Context, db *mongo.Database, collectionName string, model mongo.IndexModel) error {
	if model.Options == nil || model.Options.Name == nil {
		return fmt.Errorf("must provide a name for index")
	}
	expectedName := *model.Options.Name

	idxs := db.Collection(collectionName).Indexes()
	specs, err := idxs.ListSpecifications(ctx)
	if err != nil {
		return fmt.Errorf("unable to list indexes: %v", err)
	}

	if slices.ContainsFunc(specs, func(spec *mongo.IndexSpecification) bool {
		return spec.Name == expectedName
	}) {
		return nil
	}

	_, err = idxs.CreateOne(ctx, model)
	return err
}

// MongoURL is the connection string from MONGO_URL, or the local default.
func MongoURL() string {
	if u := os.Getenv("MONGO_URL"); u != "" {
		return u
	}
	return defaultMongoURL
}

// ConnectMongo connects to MongoURL and selects the database named in its
// path, "classifier" when the path is empty.
func ConnectMongo(ctx context.Context) (*mongo.Database, error) {
	mongoUrl := MongoURL()

	uri, err := url.Parse(mongoUrl)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUrl))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %v", err)
	}

	dbName := strings.Trim(uri.Path, "/")
	if dbName == "" {
		dbName = "classifier"
	}
	return client.Database(dbName), nil
}
