package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mybrudda/MovieApp/internal/config"
)

// Connect opens the Mongo client and verifies the connection with a ping.
func Connect(cfg *config.Config) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo: connect failed")
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("mongo: ping failed")
	}

	log.Info().Str("db", cfg.MongoDB).Msg("mongo: connected")
	return client, client.Database(cfg.MongoDB)
}
