package repository

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"ecofinds/internal/domain/entity"
	"ecofinds/pkg/errors"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

type firestoreCategory struct {
	Name     string `firestore:"name"`
	Position int    `firestore:"position"`
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	docs, err := r.client.Collection(categoriesCollection).OrderBy("position", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}

	categories := make([]*entity.Category, 0, len(docs))
	for _, doc := range docs {
		var data firestoreCategory
		if err := doc.DataTo(&data); err != nil {
			return nil, errors.Internal("Failed to parse category data", err)
		}
		categories = append(categories, &entity.Category{ID: doc.Ref.ID, Name: data.Name})
	}
	return categories, nil
}

func (r *firestoreCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	iter := r.client.Collection(categoriesCollection).Where("name", "==", name).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Category", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get category", err)
	}
	var data firestoreCategory
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}
	return &entity.Category{ID: doc.Ref.ID, Name: data.Name}, nil
}

func (r *firestoreCategoryRepository) Seed(ctx context.Context, names []string) (int, error) {
	inserted := 0
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		inserted = 0
		existing, err := tx.Documents(r.client.Collection(categoriesCollection).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		for i, name := range names {
			ref := r.client.Collection(categoriesCollection).Doc(strconv.Itoa(i + 1))
			if err := tx.Set(ref, firestoreCategory{Name: name, Position: i + 1}); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Internal("Failed to seed categories", err)
	}
	return inserted, nil
}
