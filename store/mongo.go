package store

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo - хранилище поверх базы MongoDB. db может быть nil, тогда чтение
// возвращает пустой результат, а запись - ErrNotConfigured (касса должна
// запускаться и без настроенной базы).
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) Configured() bool {
	return m != nil && m.db != nil
}

func (m *Mongo) Find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error) {
	if !m.Configured() {
		log.Printf("store: database not configured, returning empty result for %s", collection)
		return nil, nil
	}
	cur, err := m.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var out []bson.Raw
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	if !m.Configured() {
		return nil, ErrNoDocument
	}
	res := m.db.Collection(collection).FindOne(ctx, filter)
	raw, err := res.Raw()
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (m *Mongo) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	return forEachBatch(len(docs), func(lo, hi int) error {
		_, err := m.db.Collection(collection).InsertMany(ctx, docs[lo:hi])
		return err
	})
}

func (m *Mongo) Update(ctx context.Context, collection, id string, doc interface{}) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	fields, err := toBsonM(doc)
	if err != nil {
		return err
	}
	delete(fields, "_id")
	res, err := m.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	// Удаление несуществующего id - no-op.
	_, err := m.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	return err
}

// DeleteBatch удаляет документы независимыми пакетами по BatchSize штук.
// Ошибка посреди цикла оставляет уже выполненные пакеты удалёнными.
func (m *Mongo) DeleteBatch(ctx context.Context, collection string, ids []string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	return forEachBatch(len(ids), func(lo, hi int) error {
		keys := make([]interface{}, 0, hi-lo)
		for _, id := range ids[lo:hi] {
			keys = append(keys, IDValue(id))
		}
		_, err := m.db.Collection(collection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
		return err
	})
}

func (m *Mongo) Clear(ctx context.Context, collection string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	_, err := m.db.Collection(collection).DeleteMany(ctx, bson.M{})
	return err
}

func IDValue(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func idFilter(id string) bson.M {
	return bson.M{"_id": IDValue(id)}
}

func toBsonM(doc interface{}) (bson.M, error) {
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
