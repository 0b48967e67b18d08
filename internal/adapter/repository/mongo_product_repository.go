package repository

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type mongoProductRepository struct {
	products *mongo.Collection
}

func (r *mongoProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = product.CreatedAt

	if _, err := r.products.InsertOne(ctx, newMongoProduct(product)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("Product already exists")
		}
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *mongoProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var doc mongoProduct
	if err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}
	return mongoProductToEntity(doc)
}

func (r *mongoProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	list, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		products[p.ID] = p
	}
	return products, nil
}

func (r *mongoProductRepository) List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.SellerID != "" {
		query["seller_id"] = filter.SellerID
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.products.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Internal("Failed to count products", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	products, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	var updated mongoProduct
	err := r.products.FindOneAndUpdate(ctx,
		bson.M{"_id": product.ID},
		bson.M{"$set": bson.M{
			"title":       product.Title,
			"description": product.Description,
			"price":       toDecimal128(product.Price),
			"category":    product.Category,
			"image_url":   product.ImageURL,
			"seller_name": product.SellerName,
			"condition":   product.Condition,
			"updated_at":  product.UpdatedAt,
		}},
	).Decode(&updated)
	if err != nil {
		if isNoDocuments(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}

	product.CreatedAt = updated.CreatedAt
	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	if result.DeletedCount == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *mongoProductRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	count, err := r.products.CountDocuments(ctx, bson.M{"seller_id": sellerID})
	if err != nil {
		return 0, errors.Internal("Failed to count seller products", err)
	}
	return count, nil
}

func (r *mongoProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Product, error) {
	cursor, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Internal("Failed to list products", err)
	}

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	products := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := mongoProductToEntity(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func mongoProductToEntity(doc mongoProduct) (*entity.Product, error) {
	product, err := doc.toEntity()
	if err != nil {
		return nil, errors.Internal("Failed to parse product price", err)
	}
	return product, nil
}
