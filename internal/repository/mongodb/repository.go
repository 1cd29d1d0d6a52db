package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

const (
	equipmentCollection = "equipements"
	materialCollection  = "materiaux"
	snapshotCollection  = "inventory_snapshots"
)

// ErrNotFound is returned when an update matches no document.
var ErrNotFound = errors.New("document not found")

// Repository defines the inventory storage operations.
type Repository interface {
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	MarkOrderSent(ctx context.Context, materialID string) error
	SaveSnapshot(ctx context.Context, snapshot models.SummarySnapshot) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// ListEquipment loads every equipment document ordered by name.
func (r *MongoDBRepository) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	docs, err := r.findAll(ctx, equipmentCollection)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}

	out := make([]models.Equipment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeEquipment(doc))
	}
	return out, nil
}

// ListMaterials loads every material document ordered by name.
func (r *MongoDBRepository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	docs, err := r.findAll(ctx, materialCollection)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	out := make([]models.Material, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeMaterial(doc))
	}
	return out, nil
}

// MarkOrderSent flags the material's replenishment order as placed.
func (r *MongoDBRepository) MarkOrderSent(ctx context.Context, materialID string) error {
	collection := r.client.Database(r.dbName).Collection(materialCollection)

	res, err := collection.UpdateOne(ctx, bson.M{"_id": idFilter(materialID)}, bson.M{"$set": bson.M{"commandeEnvoyee": true}})
	if err != nil {
		return fmt.Errorf("failed to mark order sent for %s: %w", materialID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveSnapshot saves a summary snapshot to the database.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.SummarySnapshot) error {
	collection := r.client.Database(r.dbName).Collection(snapshotCollection)
	_, err := collection.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert summary snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) findAll(ctx context.Context, name string) ([]bson.M, error) {
	collection := r.client.Database(r.dbName).Collection(name)

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", name, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return docs, nil
}

// idFilter matches ObjectID keys when the id looks like one, plain keys otherwise.
func idFilter(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
