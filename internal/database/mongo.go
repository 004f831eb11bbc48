package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kmmndr/motion_analyzer/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const analysisCollection = "video_analysis"

// MongoRepository stores analyses as documents keyed by their uuid.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, uri string, database string) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(3*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	collection := client.Database(database).Collection(analysisCollection)
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &MongoRepository{client: client, collection: collection}, nil
}

func (r *MongoRepository) Add(ctx context.Context, values models.AnalysisCreate) (models.Analysis, error) {
	analysis, err := newAnalysis(values)
	if err != nil {
		return models.Analysis{}, err
	}

	// Mongo keeps millisecond precision.
	analysis.CreatedAt = analysis.CreatedAt.Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("failed to insert analysis: %w", err)
	}
	return analysis, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&analysis)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis %s: %w", id, err)
	}
	return &analysis, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, filter models.AnalysisFilter, skip, limit int) ([]models.Analysis, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	analyses := []models.Analysis{}
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %w", err)
	}
	return analyses, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter models.AnalysisFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, mongoFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	return result.DeletedCount, nil
}

func (r *MongoRepository) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.client.Disconnect(ctx)
}

func mongoFilter(filter models.AnalysisFilter) bson.M {
	query := bson.M{}
	if filter.Filename != "" {
		query["filename"] = filter.Filename
	}
	if filter.MovementDetected != nil {
		query["movement_detected"] = *filter.MovementDetected
	}
	return query
}
