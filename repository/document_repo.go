package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pdf-rag-be/types"
)

// DocumentRepository is the registry tracking per-document lifecycle status.
type DocumentRepository interface {
	Create(ctx context.Context, doc *types.Document) error
	Get(ctx context.Context, filename string) (*types.Document, error)
	List(ctx context.Context, status string) ([]*types.Document, error)
	UpdateStatus(ctx context.Context, filename, status string, fields map[string]interface{}) error
	Delete(ctx context.Context, filename string) (bool, error)
	Statistics(ctx context.Context) (*types.DocumentStatistics, error)
}

type documentRepo struct {
	collection *mongo.Collection
}

func NewDocumentRepo(db *mongo.Database) DocumentRepository {
	collection := db.Collection("documents")
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "filename", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "uploaded_at", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating document indexes: %v", err)
	}

	return &documentRepo{
		collection: collection,
	}
}

func (r *documentRepo) Create(ctx context.Context, doc *types.Document) error {
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// Get returns (nil, nil) when no document with the filename exists.
func (r *documentRepo) Get(ctx context.Context, filename string) (*types.Document, error) {
	var doc types.Document
	err := r.collection.FindOne(ctx, bson.M{"filename": filename}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns documents newest first, optionally filtered by status.
func (r *documentRepo) List(ctx context.Context, status string) ([]*types.Document, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*types.Document
	for cursor.Next(ctx) {
		var doc types.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	return docs, cursor.Err()
}

// UpdateStatus sets the status plus any extra fields on the document record.
// A missing document is logged, not an error, so retried status updates on
// deleted documents stay harmless.
func (r *documentRepo) UpdateStatus(ctx context.Context, filename, status string, fields map[string]interface{}) error {
	update := bson.M{"status": status}
	for k, v := range fields {
		update[k] = v
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"filename": filename}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		log.Printf("Warning: no document found with filename '%s' to update", filename)
	}
	return nil
}

// Delete removes only the registry row. Stored bytes and vectors remain.
func (r *documentRepo) Delete(ctx context.Context, filename string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"filename": filename})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *documentRepo) Statistics(ctx context.Context) (*types.DocumentStatistics, error) {
	docs, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}
	stats := &types.DocumentStatistics{TotalDocuments: len(docs)}
	var totalSize int64
	for _, doc := range docs {
		totalSize += doc.FileSize
		switch strings.ToLower(doc.Status) {
		case types.DOC_STATUS_UPLOADED:
			stats.Uploaded++
		case types.DOC_STATUS_PROCESSING:
			stats.Processing++
		case types.DOC_STATUS_VECTORIZED:
			stats.Vectorized++
		case types.DOC_STATUS_ERROR:
			stats.Error++
		}
	}
	stats.TotalSizeMB = float64(totalSize) / 1024 / 1024
	return stats, nil
}
