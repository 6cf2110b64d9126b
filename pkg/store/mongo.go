package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pagesmith/pkg/model"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string // default "pagesmith"
	Collection string // default "websites"
	Timeout    time.Duration
}

// mongoWebsite is the stored document. Components are kept as the JSON
// envelope text so fields unknown to this version survive untouched.
type mongoWebsite struct {
	ID            string              `bson:"_id"`
	Title         string              `bson:"title"`
	Slug          string              `bson:"slug"`
	Domain        string              `bson:"domain"`
	Status        string              `bson:"status"`
	Components    string              `bson:"components"`
	Count         int                 `bson:"componentCount"`
	DesignPalette model.DesignPalette `bson:"designPalette"`
	SEOSettings   model.SEOSettings   `bson:"seoSettings"`
	SchemaVersion int                 `bson:"schemaVersion"`
	UpdatedAt     time.Time           `bson:"updatedAt"`
}

// MongoStore keeps websites in a MongoDB collection.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// NewMongoStore connects to MongoDB and ensures the slug index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "pagesmith"
	}
	if cfg.Collection == "" {
		cfg.Collection = "websites"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, persistence(err, "connect", cfg.URI)
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, persistence(err, "index", cfg.Collection)
	}
	return &MongoStore{client: client, coll: coll, timeout: cfg.Timeout, now: time.Now}, nil
}

func (s *MongoStore) LoadWebsite(ctx context.Context, id string) (model.WebsiteRecord, error) {
	return s.findOne(ctx, bson.M{"_id": id}, id)
}

func (s *MongoStore) FindBySlug(ctx context.Context, slug string) (model.WebsiteRecord, error) {
	return s.findOne(ctx, bson.M{"slug": slug}, slug)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, key string) (model.WebsiteRecord, error) {
	var doc mongoWebsite
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return model.WebsiteRecord{}, NotFound(key)
		}
		return model.WebsiteRecord{}, persistence(err, "load", key)
	}
	return fromMongo(doc)
}

func (s *MongoStore) SaveWebsite(ctx context.Context, id string, req SaveRequest) (SaveResult, error) {
	w, err := Prepare(id, req, s.now())
	if err != nil {
		return SaveResult{}, err
	}
	doc, err := toMongo(w)
	if err != nil {
		return SaveResult{}, persistence(err, "encode", w.ID)
	}

	var owner mongoWebsite
	err = s.coll.FindOne(ctx, bson.M{"slug": w.Slug}).Decode(&owner)
	switch {
	case err == nil && owner.ID != w.ID:
		return SaveResult{}, SlugTaken(w.Slug)
	case err != nil && !stderrors.Is(err, mongo.ErrNoDocuments):
		return SaveResult{}, persistence(err, "save", w.ID)
	}

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": w.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return SaveResult{}, SlugTaken(w.Slug)
		}
		return SaveResult{}, persistence(err, "save", w.ID)
	}
	return SaveResult{ID: w.ID, Domain: w.Domain}, nil
}

func (s *MongoStore) ListWebsites(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"components": 0})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, persistence(err, "list", "*")
	}
	var docs []mongoWebsite
	if err := cur.All(ctx, &docs); err != nil {
		return nil, persistence(err, "list", "*")
	}
	out := make([]Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, Summary{
			ID:         d.ID,
			Title:      d.Title,
			Slug:       d.Slug,
			Status:     model.Status(d.Status),
			Components: d.Count,
			UpdatedAt:  d.UpdatedAt,
		})
	}
	return out, nil
}

func (s *MongoStore) DeleteWebsite(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return persistence(err, "delete", id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toMongo(w model.WebsiteRecord) (mongoWebsite, error) {
	components, err := json.Marshal(w.Components)
	if err != nil {
		return mongoWebsite{}, err
	}
	return mongoWebsite{
		ID:            w.ID,
		Title:         w.Title,
		Slug:          w.Slug,
		Domain:        w.Domain,
		Status:        string(w.Status),
		Components:    string(components),
		Count:         len(w.Components),
		DesignPalette: w.DesignPalette,
		SEOSettings:   w.SEOSettings,
		SchemaVersion: model.SchemaVersion,
		UpdatedAt:     w.UpdatedAt,
	}, nil
}

// fromMongo rebuilds the JSON envelope so stored documents go through the
// same migration path as every other backend.
func fromMongo(d mongoWebsite) (model.WebsiteRecord, error) {
	env := map[string]any{
		"id":            d.ID,
		"title":         d.Title,
		"slug":          d.Slug,
		"domain":        d.Domain,
		"status":        d.Status,
		"components":    json.RawMessage(orEmptyArray(d.Components)),
		"designPalette": d.DesignPalette,
		"seoSettings":   d.SEOSettings,
		"updatedAt":     d.UpdatedAt,
	}
	if d.SchemaVersion > 0 {
		env["schemaVersion"] = d.SchemaVersion
	}
	data, err := json.Marshal(env)
	if err != nil {
		return model.WebsiteRecord{}, persistence(err, "decode", d.ID)
	}
	return Decode(data)
}

func orEmptyArray(s string) string {
	if s == "" {
		return "[]"
	}
	return s
}

var _ Store = (*MongoStore)(nil)
