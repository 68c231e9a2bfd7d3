package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Имена коллекций.
const (
	CollBarang       = "barang"
	CollBarangMasuk  = "barang_masuk"
	CollBarangKeluar = "barang_keluar"
	CollTransaksi    = "transaksi"
	CollLabaArsip    = "laba_arsip"
	CollAuth         = "auth"
)

// BatchSize - лимит на размер одной пакетной операции записи.
const BatchSize = 500

// forEachBatch вызывает fn для последовательных диапазонов [lo, hi) из n
// элементов, каждый не больше BatchSize. Ошибка прерывает обход: уже
// обработанные диапазоны остаются зафиксированными.
func forEachBatch(n int, fn func(lo, hi int) error) error {
	for lo := 0; lo < n; lo += BatchSize {
		hi := lo + BatchSize
		if hi > n {
			hi = n
		}
		if err := fn(lo, hi); err != nil {
			return err
		}
	}
	return nil
}

var (
	ErrNotConfigured = errors.New("store: database not configured")
	ErrNoDocument    = errors.New("store: document not found")
)

// Store - доступ к коллекциям документов. Передаётся явно, а не через
// глобальные переменные: архивация и отчёты должны работать и с Mongo,
// и с памятью в тестах.
type Store interface {
	Configured() bool
	Find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error)
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error)
	Insert(ctx context.Context, collection string, doc interface{}) (string, error)
	InsertMany(ctx context.Context, collection string, docs []interface{}) error
	Update(ctx context.Context, collection, id string, doc interface{}) error
	Delete(ctx context.Context, collection, id string) error
	DeleteBatch(ctx context.Context, collection string, ids []string) error
	Clear(ctx context.Context, collection string) error
}

// GetAll читает коллекцию целиком. Для ненастроенного хранилища возвращает
// пустой срез, а не ошибку.
func GetAll[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raws, err := s.Find(ctx, collection, bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// GetByID возвращает документ по его ключу или nil, если такого нет.
func GetByID[T any](ctx context.Context, s Store, collection, id string) (*T, error) {
	return GetByIndex[T](ctx, s, collection, "_id", IDValue(id))
}

// GetByIndex возвращает первый документ с полем field == value или nil,
// если такого нет.
func GetByIndex[T any](ctx context.Context, s Store, collection, field string, value interface{}) (*T, error) {
	raw, err := s.FindOne(ctx, collection, bson.M{field: value})
	if errors.Is(err, ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
