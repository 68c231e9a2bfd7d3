package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory - хранилище в памяти с той же семантикой, что и Mongo. Используется
// в тестах; порядок документов - порядок вставки.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string]map[string]bson.Raw
	order map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string]map[string]bson.Raw),
		order: make(map[string][]string),
	}
}

func (m *Memory) Configured() bool { return true }

func (m *Memory) Find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []bson.Raw
	for _, id := range m.order[collection] {
		raw, ok := m.docs[collection][id]
		if !ok {
			continue
		}
		match, err := matches(raw, filter)
		if err != nil {
			return nil, err
		}
		if match {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	raws, err := m.Find(ctx, collection, filter)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, ErrNoDocument
	}
	return raws[0], nil
}

func (m *Memory) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(collection, doc)
}

func (m *Memory) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		if _, err := m.insertLocked(collection, doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) insertLocked(collection string, doc interface{}) (string, error) {
	fields, err := toBsonM(doc)
	if err != nil {
		return "", err
	}

	id := ""
	switch v := fields["_id"].(type) {
	case primitive.ObjectID:
		if !v.IsZero() {
			id = v.Hex()
		}
	case string:
		id = v
	}
	if id == "" {
		oid := primitive.NewObjectID()
		fields["_id"] = oid
		id = oid.Hex()
	}

	raw, err := bson.Marshal(fields)
	if err != nil {
		return "", err
	}
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]bson.Raw)
	}
	if _, exists := m.docs[collection][id]; !exists {
		m.order[collection] = append(m.order[collection], id)
	}
	m.docs[collection][id] = raw
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, doc interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.docs[collection][id]
	if !ok {
		return ErrNoDocument
	}
	var current bson.M
	if err := bson.Unmarshal(existing, &current); err != nil {
		return err
	}
	fields, err := toBsonM(doc)
	if err != nil {
		return err
	}
	delete(fields, "_id")
	for k, v := range fields {
		current[k] = v
	}
	raw, err := bson.Marshal(current)
	if err != nil {
		return err
	}
	m.docs[collection][id] = raw
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs[collection], id)
	return nil
}

func (m *Memory) DeleteBatch(ctx context.Context, collection string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return forEachBatch(len(ids), func(lo, hi int) error {
		for _, id := range ids[lo:hi] {
			delete(m.docs[collection], id)
		}
		return nil
	})
}

func (m *Memory) Clear(ctx context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, collection)
	delete(m.order, collection)
	return nil
}

// matches проверяет равенство по верхнеуровневым полям фильтра.
// Поддерживается только равенство - больше хранилищу и не нужно.
func matches(raw bson.Raw, filter bson.M) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return false, err
	}
	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false, nil
		}
		if !reflect.DeepEqual(normalize(got), normalize(want)) {
			return false, nil
		}
	}
	return true, nil
}

func normalize(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return n
	default:
		return v
	}
}
