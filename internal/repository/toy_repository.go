package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"plasco-inventory/internal/apperr"
	"plasco-inventory/internal/models"
)

type ToyStore interface {
	List(ctx context.Context, f ListFilter) ([]models.Toy, error)
	Get(ctx context.Context, id string) (*models.Toy, error)
	FindBySKU(ctx context.Context, sku string) (*models.Toy, error)
	Create(ctx context.Context, t *models.Toy) error
	Update(ctx context.Context, t *models.Toy) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type ToyRepository struct {
	collection *mongo.Collection
}

func NewToyRepository(collection *mongo.Collection) *ToyRepository {
	return &ToyRepository{collection: collection}
}

func (r *ToyRepository) List(ctx context.Context, f ListFilter) ([]models.Toy, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, f.Query(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	toys := make([]models.Toy, 0)
	if err := cursor.All(ctx, &toys); err != nil {
		return nil, err
	}
	return toys, nil
}

func (r *ToyRepository) Get(ctx context.Context, id string) (*models.Toy, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	var toy models.Toy
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&toy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &toy, nil
}

func (r *ToyRepository) FindBySKU(ctx context.Context, sku string) (*models.Toy, error) {
	if sku == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var toy models.Toy
	err := r.collection.FindOne(ctx, bson.M{"sku": sku}).Decode(&toy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &toy, nil
}

func (r *ToyRepository) Create(ctx context.Context, t *models.Toy) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	t.ID = primitive.NewObjectID()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *ToyRepository) Update(ctx context.Context, t *models.Toy) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ToyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ToyRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	objIDs := parseObjectIDs(ids)
	if len(objIDs) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
