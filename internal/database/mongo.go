package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"tobaccoform/internal/catalog"
	"tobaccoform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client     *mongo.Client
	Database   *mongo.Database
	collection string
}

func NewMongoDB(uri, dbName, collection string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Connected to MongoDB at %s", uri)

	return &MongoDB{
		Client:     client,
		Database:   client.Database(dbName),
		collection: collection,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) tobaccos() *mongo.Collection {
	return m.Database.Collection(m.collection)
}

// InsertTobacco stores record unless an identical brand/taste/flavour
// triple already exists.
func (m *MongoDB) InsertTobacco(ctx context.Context, record models.TobaccoRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"brand": record.Brand, "taste": record.Taste, "flavour": record.Flavour}
	err := m.tobaccos().FindOne(ctx, filter).Err()
	if err == nil {
		return catalog.ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check existing tobacco %s: %w", record.Brand, err)
	}

	doc := bson.M{
		"brand":     record.Brand,
		"taste":     record.Taste,
		"flavour":   record.Flavour,
		"createdAt": time.Now().UTC(),
	}
	if _, err := m.tobaccos().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert tobacco: %w", err)
	}
	return nil
}

// ListBrands walks the collection in insertion order and keeps the first
// occurrence of each brand.
func (m *MongoDB) ListBrands(ctx context.Context) ([]models.Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"brand": 1})
	cursor, err := m.tobaccos().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer cursor.Close(ctx)

	seen := make(map[models.Brand]struct{})
	var brands []models.Brand
	for cursor.Next(ctx) {
		var doc struct {
			Brand string `bson:"brand"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode brand: %w", err)
		}
		if _, ok := seen[doc.Brand]; ok {
			continue
		}
		seen[doc.Brand] = struct{}{}
		brands = append(brands, doc.Brand)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return brands, nil
}

func (m *MongoDB) ListTobacco(ctx context.Context) ([]models.TobaccoRecord, error) {
	return m.findTobacco(ctx, bson.D{})
}

func (m *MongoDB) TobaccoByBrand(ctx context.Context, brand models.Brand) ([]models.TobaccoRecord, error) {
	return m.findTobacco(ctx, bson.D{{Key: "brand", Value: brand}})
}

func (m *MongoDB) findTobacco(ctx context.Context, filter bson.D) ([]models.TobaccoRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.tobaccos().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tobacco: %w", err)
	}

	var records []models.TobaccoRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode tobacco: %w", err)
	}
	return records, nil
}

func (m *MongoDB) ListCollections() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	names, err := m.Database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// BackupCollection writes every document of collectionName to writer, one
// JSON document per line or concatenated BSON. It returns the document count.
func (m *MongoDB) BackupCollection(collectionName string, writer io.Writer, format string) (int, error) {
	collection := m.Database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var data []byte
		if format == "json" {
			// Extended JSON keeps ObjectIDs and dates restorable.
			data, err = bson.MarshalExtJSON(cursor.Current, false, false)
			if err != nil {
				return count, fmt.Errorf("failed to marshal to JSON: %w", err)
			}
			data = append(data, '\n')
		} else {
			data = cursor.Current
		}

		if _, err := writer.Write(data); err != nil {
			return count, fmt.Errorf("failed to write backup data: %w", err)
		}
		count++

		if count%1000 == 0 {
			log.Printf("Backed up %d documents...", count)
		}
	}

	if err := cursor.Err(); err != nil {
		return count, fmt.Errorf("cursor error: %w", err)
	}

	log.Printf("Backup completed: %d documents from collection '%s'", count, collectionName)
	return count, nil
}

// RestoreCollection loads documents written by BackupCollection.
func (m *MongoDB) RestoreCollection(collectionName string, reader io.Reader, format string, dropExisting bool) (int, error) {
	collection := m.Database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if dropExisting {
		if err := collection.Drop(ctx); err != nil {
			log.Printf("Warning: failed to drop collection %s: %v", collectionName, err)
		}
	}

	var documents []interface{}
	total := 0
	const batchSize = 1000

	flush := func() error {
		if len(documents) == 0 {
			return nil
		}
		if err := m.insertBatch(ctx, collection, documents); err != nil {
			return err
		}
		total += len(documents)
		documents = documents[:0]
		return nil
	}

	if format == "json" {
		decoder := json.NewDecoder(reader)
		for {
			var raw json.RawMessage
			if err := decoder.Decode(&raw); err == io.EOF {
				break
			} else if err != nil {
				return total, fmt.Errorf("failed to decode JSON: %w", err)
			}
			var doc bson.M
			if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
				return total, fmt.Errorf("failed to decode extended JSON: %w", err)
			}
			documents = append(documents, doc)

			if len(documents) >= batchSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	} else {
		docs, err := SplitBSON(reader)
		if err != nil {
			return total, err
		}
		for _, raw := range docs {
			var doc bson.M
			if err := bson.Unmarshal(raw, &doc); err != nil {
				return total, fmt.Errorf("failed to unmarshal BSON: %w", err)
			}
			documents = append(documents, doc)

			if len(documents) >= batchSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}

	log.Printf("Restore completed: imported %d documents to collection '%s'", total, collectionName)
	return total, nil
}

// SplitBSON cuts a stream of concatenated BSON documents using each
// document's little-endian length prefix.
func SplitBSON(reader io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read BSON data: %w", err)
	}

	var docs [][]byte
	for len(data) > 0 {
		if len(data) < 4 {
			return nil, fmt.Errorf("truncated BSON document header")
		}
		docSize := int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3])<<24
		if docSize < 5 || docSize > len(data) {
			return nil, fmt.Errorf("invalid BSON document size %d", docSize)
		}
		docs = append(docs, data[:docSize])
		data = data[docSize:]
	}
	return docs, nil
}

func (m *MongoDB) insertBatch(ctx context.Context, collection *mongo.Collection, documents []interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := collection.InsertMany(ctx, documents)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	log.Printf("Inserted batch of %d documents", len(documents))
	return nil
}
