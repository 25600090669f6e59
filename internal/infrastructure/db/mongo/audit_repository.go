package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/shop-api/internal/core/domain"
)

const auditCollection = "audit_log"

type auditDocument struct {
	ID       string    `bson:"_id"`
	Action   string    `bson:"action"`
	Entity   string    `bson:"entity"`
	EntityID string    `bson:"entity_id"`
	Actor    string    `bson:"actor"`
	Outcome  string    `bson:"outcome"`
	At       time.Time `bson:"at"`
}

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the indexes backing Recent and per-entity lookups.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDocument{
		ID:       entry.ID,
		Action:   entry.Action,
		Entity:   entry.Entity,
		EntityID: entry.EntityID,
		Actor:    entry.Actor,
		Outcome:  entry.Outcome,
		At:       entry.At.UTC(),
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("audit find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("audit decode: %w", err)
	}

	out := make([]*domain.AuditEntry, len(docs))
	for i, d := range docs {
		out[i] = &domain.AuditEntry{
			ID:       d.ID,
			Action:   d.Action,
			Entity:   d.Entity,
			EntityID: d.EntityID,
			Actor:    d.Actor,
			Outcome:  d.Outcome,
			At:       d.At,
		}
	}
	return out, nil
}
