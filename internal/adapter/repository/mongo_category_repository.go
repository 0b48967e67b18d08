package repository

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type mongoCategoryRepository struct {
	categories *mongo.Collection
}

type mongoCategory struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Position int    `bson:"position"`
}

func (r *mongoCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}

	var docs []mongoCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	categories := make([]*entity.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, &entity.Category{ID: doc.ID, Name: doc.Name})
	}
	return categories, nil
}

func (r *mongoCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var doc mongoCategory
	if err := r.categories.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}
	return &entity.Category{ID: doc.ID, Name: doc.Name}, nil
}

func (r *mongoCategoryRepository) Seed(ctx context.Context, names []string) (int, error) {
	count, err := r.categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Internal("Failed to count categories", err)
	}
	if count > 0 || len(names) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(names))
	for i, name := range names {
		docs = append(docs, mongoCategory{ID: strconv.Itoa(i + 1), Name: name, Position: i + 1})
	}

	result, err := r.categories.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, errors.Internal("Failed to seed categories", err)
	}
	if result == nil {
		return 0, nil
	}
	return len(result.InsertedIDs), nil
}
