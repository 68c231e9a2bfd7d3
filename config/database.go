package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDatabase подключается к MongoDB по MONGO_URI и возвращает базу
// (MONGO_DB, по умолчанию "kasir"). Если MONGO_URI не задан, возвращает nil -
// касса работает в ненастроенном режиме, чтение отдаёт пустые списки.
func ConnectDatabase() (*mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "kasir"
	}
	log.Println("Connected to MongoDB")
	return client.Database(name), nil
}
