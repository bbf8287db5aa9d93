package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sewminijayakody/smart-emergency-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 10 * time.Second

type MongoClient struct {
	client *mongo.Client
	dbName string
}

func NewMongoClient(uri, dbName string) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %s", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %s", err)
	}

	return &MongoClient{client: client, dbName: dbName}, nil
}

func (m *MongoClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *MongoClient) analysesCollection() *mongo.Collection {
	return m.client.Database(m.dbName).Collection("analyses")
}

// StoreAnalysis stores an analysis event in the analyses collection
func (m *MongoClient) StoreAnalysis(record *models.AnalysisRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if record.ID == 0 {
		record.ID = record.Timestamp.UnixNano()
	}

	doc := bson.M{
		"_id":         record.ID,
		"timestamp":   record.Timestamp,
		"emotion":     record.Emotion,
		"confidence":  record.Confidence,
		"predictions": string(record.Predictions),
		"latency_ms":  record.LatencyMs,
		"source_name": record.SourceName,
		"variant":     record.Variant,
	}

	if _, err := m.analysesCollection().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error storing analysis: %s", err)
	}
	return nil
}

// GetAllAnalyses retrieves all stored analysis events, newest first
func (m *MongoClient) GetAllAnalyses() ([]models.AnalysisRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := m.analysesCollection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying analyses: %s", err)
	}
	defer cursor.Close(ctx)

	var records []models.AnalysisRecord
	for cursor.Next(ctx) {
		var doc struct {
			ID          int64     `bson:"_id"`
			Timestamp   time.Time `bson:"timestamp"`
			Emotion     string    `bson:"emotion"`
			Confidence  float64   `bson:"confidence"`
			Predictions string    `bson:"predictions"`
			LatencyMs   float64   `bson:"latency_ms"`
			SourceName  string    `bson:"source_name"`
			Variant     string    `bson:"variant"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding analysis: %s", err)
		}
		records = append(records, models.AnalysisRecord{
			ID:          doc.ID,
			Timestamp:   doc.Timestamp,
			Emotion:     doc.Emotion,
			Confidence:  doc.Confidence,
			Predictions: []byte(doc.Predictions),
			LatencyMs:   doc.LatencyMs,
			SourceName:  doc.SourceName,
			Variant:     doc.Variant,
		})
	}

	return records, cursor.Err()
}
