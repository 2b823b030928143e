package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bolosign/bolosign/backend/go-services/internal/audit"
)

// MongoRepo stores audit records in a MongoDB collection. Records use
// string UUIDs as _id, so lookups need no index beyond the default one.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, rec *audit.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now()
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*audit.Record, error) {
	var rec audit.Record
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
