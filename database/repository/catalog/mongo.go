package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"tablebooker/config"
	"tablebooker/database"
	"tablebooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
// The collection is seeded with the default catalog when empty so a fresh
// deployment starts with a working restaurant set.
func NewMongoCatalogRepo() CatalogRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("restaurants")
	repo := &MongoCatalogRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	if err := repo.seedIfEmpty(); err != nil {
		fmt.Printf("failed to seed restaurant catalog: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "microsite_name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) seedIfEmpty() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(DefaultCatalog))
	for _, rest := range DefaultCatalog {
		docs = append(docs, rest)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert default catalog: %w", err)
	}
	return nil
}

// List returns every catalog restaurant ordered by microsite name.
func (r *MongoCatalogRepo) List() ([]models.Restaurant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "microsite_name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var restaurants []models.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}
	return restaurants, nil
}

// GetByMicrosite retrieves a single restaurant by its microsite name.
func (r *MongoCatalogRepo) GetByMicrosite(microsite string) (*models.Restaurant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var restaurant models.Restaurant
	err := r.coll.FindOne(ctx, bson.M{"microsite_name": microsite}).Decode(&restaurant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("restaurant %q not found", microsite)
		}
		return nil, fmt.Errorf("failed to fetch restaurant %q: %w", microsite, err)
	}
	return &restaurant, nil
}

// Resolve maps a user-provided restaurant string to its canonical microsite name.
func (r *MongoCatalogRepo) Resolve(value string) string {
	restaurants, err := r.List()
	if err != nil {
		return ""
	}
	return resolveAgainst(restaurants, value)
}
