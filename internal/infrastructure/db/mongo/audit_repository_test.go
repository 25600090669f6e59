package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/storefront/shop-api/internal/core/domain"
)

func TestAuditRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("writes the entry under its id", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
		err := repo.Insert(context.Background(), &domain.AuditEntry{
			ID: "a1", Action: domain.AuditCreate, Entity: domain.EntityCategory,
			EntityID: "7", Actor: "robin", Outcome: domain.OutcomeSuccess, At: at,
		})
		if err != nil {
			mt.Fatalf("insert: %v", err)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "insert" {
			mt.Fatalf("expected an insert command, got %+v", started)
		}
		if coll := started.Command.Lookup("insert").StringValue(); coll != auditCollection {
			mt.Fatalf("expected collection %q, got %q", auditCollection, coll)
		}
		docs, err := started.Command.Lookup("documents").Array().Values()
		if err != nil || len(docs) != 1 {
			mt.Fatalf("expected one document, got %v (%v)", docs, err)
		}
		doc := docs[0].Document()
		if id := doc.Lookup("_id").StringValue(); id != "a1" {
			mt.Fatalf("expected _id a1, got %q", id)
		}
		if actor := doc.Lookup("actor").StringValue(); actor != "robin" {
			mt.Fatalf("expected actor robin, got %q", actor)
		}
		if got := doc.Lookup("at").Time(); !got.Equal(at) {
			mt.Fatalf("expected at %s, got %s", at, got)
		}
	})

	mt.Run("duplicate id is an error", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		if err := repo.Insert(context.Background(), &domain.AuditEntry{ID: "a1"}); err == nil {
			mt.Fatal("expected duplicate key error")
		}
	})
}

func TestAuditRepository_Recent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sorts newest first and applies the limit", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)

		newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		ns := mt.DB.Name() + "." + auditCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "a2"}, {Key: "action", Value: domain.AuditUpdate},
				{Key: "entity", Value: domain.EntityProduct}, {Key: "entity_id", Value: "3"},
				{Key: "actor", Value: "robin"}, {Key: "outcome", Value: domain.OutcomeSuccess},
				{Key: "at", Value: newer},
			},
			bson.D{
				{Key: "_id", Value: "a1"}, {Key: "action", Value: domain.AuditLogin},
				{Key: "entity", Value: domain.EntityUser}, {Key: "entity_id", Value: "robin"},
				{Key: "actor", Value: "robin"}, {Key: "outcome", Value: domain.OutcomeFailure},
				{Key: "at", Value: older},
			},
		))

		entries, err := repo.Recent(context.Background(), 2)
		if err != nil {
			mt.Fatalf("recent: %v", err)
		}
		if len(entries) != 2 || entries[0].ID != "a2" || entries[1].ID != "a1" {
			mt.Fatalf("unexpected entries: %+v", entries)
		}
		if entries[0].Entity != domain.EntityProduct || !entries[0].At.Equal(newer) {
			mt.Fatalf("entry not decoded: %+v", entries[0])
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "find" {
			mt.Fatalf("expected a find command, got %+v", started)
		}
		if limit := started.Command.Lookup("limit").AsInt64(); limit != 2 {
			mt.Fatalf("expected limit 2, got %d", limit)
		}
		sort := started.Command.Lookup("sort").Document()
		if dir := sort.Lookup("at").AsInt64(); dir != -1 {
			mt.Fatalf("expected descending sort on at, got %d", dir)
		}
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		ns := mt.DB.Name() + "." + auditCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		entries, err := repo.Recent(context.Background(), 20)
		if err != nil {
			mt.Fatalf("recent: %v", err)
		}
		if len(entries) != 0 {
			mt.Fatalf("expected no entries, got %d", len(entries))
		}
	})

	mt.Run("command failure is wrapped", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		if _, err := repo.Recent(context.Background(), 5); err == nil {
			mt.Fatal("expected find error")
		}
	})
}

func TestAuditRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates both indexes", func(mt *mtest.T) {
		repo := NewAuditRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := repo.EnsureIndexes(context.Background()); err != nil {
			mt.Fatalf("ensure indexes: %v", err)
		}
		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "createIndexes" {
			mt.Fatalf("expected createIndexes, got %+v", started)
		}
		idx, err := started.Command.Lookup("indexes").Array().Values()
		if err != nil || len(idx) != 2 {
			mt.Fatalf("expected two index specs, got %v (%v)", idx, err)
		}
	})
}
