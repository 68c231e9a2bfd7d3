package store

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Kode  string             `bson:"kode"`
	Nilai int64              `bson:"nilai"`
}

func TestMemoryInsertAndGetAll(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id1, err := m.Insert(ctx, "docs", testDoc{Kode: "A", Nilai: 1})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := m.Insert(ctx, "docs", testDoc{Kode: "B", Nilai: 2}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	docs, err := GetAll[testDoc](ctx, m, "docs")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	if docs[0].Kode != "A" || docs[1].Kode != "B" {
		t.Fatalf("order not preserved: %+v", docs)
	}
	if docs[0].ID.Hex() != id1 {
		t.Fatalf("id = %s, want %s", docs[0].ID.Hex(), id1)
	}
}

func TestMemoryGetByIndex(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Insert(ctx, "docs", testDoc{Kode: "A", Nilai: 1}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	doc, err := GetByIndex[testDoc](ctx, m, "docs", "kode", "A")
	if err != nil {
		t.Fatalf("get by index: %v", err)
	}
	if doc == nil || doc.Nilai != 1 {
		t.Fatalf("doc = %+v", doc)
	}

	missing, err := GetByIndex[testDoc](ctx, m, "docs", "kode", "Z")
	if err != nil {
		t.Fatalf("get by index: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing = %+v, want nil", missing)
	}
}

func TestMemoryUpdate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Insert(ctx, "docs", testDoc{Kode: "A", Nilai: 1})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := m.Update(ctx, "docs", id, bson.M{"nilai": int64(5)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	doc, err := GetByIndex[testDoc](ctx, m, "docs", "kode", "A")
	if err != nil || doc == nil {
		t.Fatalf("get: %v %v", doc, err)
	}
	if doc.Nilai != 5 {
		t.Fatalf("nilai = %d, want 5", doc.Nilai)
	}

	if err := m.Update(ctx, "docs", primitive.NewObjectID().Hex(), bson.M{"nilai": 1}); err != ErrNoDocument {
		t.Fatalf("update missing = %v, want ErrNoDocument", err)
	}
}

func TestMemoryDeleteIsNoopOnMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Delete(ctx, "docs", primitive.NewObjectID().Hex()); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	id, _ := m.Insert(ctx, "docs", testDoc{Kode: "A"})
	if err := m.DeleteBatch(ctx, "docs", []string{id, primitive.NewObjectID().Hex()}); err != nil {
		t.Fatalf("delete batch: %v", err)
	}
	docs, err := GetAll[testDoc](ctx, m, "docs")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("len = %d, want 0", len(docs))
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := m.Insert(ctx, "docs", testDoc{Kode: "A", Nilai: int64(i)}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := m.Clear(ctx, "docs"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	docs, err := GetAll[testDoc](ctx, m, "docs")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("len = %d, want 0", len(docs))
	}
}

func TestUnconfiguredMongoReadsDegrade(t *testing.T) {
	s := NewMongo(nil)
	ctx := context.Background()

	docs, err := GetAll[testDoc](ctx, s, "docs")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("len = %d, want 0", len(docs))
	}

	doc, err := GetByIndex[testDoc](ctx, s, "docs", "kode", "A")
	if err != nil {
		t.Fatalf("get by index: %v", err)
	}
	if doc != nil {
		t.Fatalf("doc = %+v, want nil", doc)
	}

	if _, err := s.Insert(ctx, "docs", testDoc{Kode: "A"}); err != ErrNotConfigured {
		t.Fatalf("insert = %v, want ErrNotConfigured", err)
	}
}
