package main

import (
	"context"
	"net/http"
	"os"
	"time"

	_ "github.com/mybrudda/MovieApp/docs" // swagger docs

	"github.com/mybrudda/MovieApp/internal/auth"
	"github.com/mybrudda/MovieApp/internal/catalog"
	"github.com/mybrudda/MovieApp/internal/config"
	"github.com/mybrudda/MovieApp/internal/db"
	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/handler"
	"github.com/mybrudda/MovieApp/internal/library"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title MovieTime API
// @version 1.0
// @description Movie browsing, watchlists and reviews (TMDB, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	// Mongo
	client, database := db.Connect(cfg)
	defer client.Disconnect(context.Background())
	docs := docstore.NewMongoStore(client, database)

	// Redis, revoked-token set. The server still runs without it, logouts
	// just stop being durable.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, token revocation disabled")
		rdb = nil
	}
	cancel()
	revoker := auth.NewRevoker(rdb, logger)

	// TMDB
	tmdb, err := catalog.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog client init failed")
	}

	provider := auth.NewStoreProvider(docs, logger)
	lib := library.NewStore(docs, logger)

	authH := handler.NewAuthHandler(provider, docs, revoker, cfg.JWTSecret, logger)
	movieH := handler.NewMovieHandler(tmdb, lib, logger)
	watchlistH := handler.NewWatchlistHandler(lib, logger)
	reviewH := handler.NewReviewHandler(lib, logger)
	browseH := handler.NewBrowseHandler(tmdb, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(handler.RateLimit(50, 100))

	// public
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)
	r.Post("/auth/verify", authH.Verify)

	r.Get("/movies", movieH.List)
	r.Get("/movies/{id}", movieH.Detail)
	r.Get("/movies/{id}/credits", movieH.Credits)
	r.Get("/movies/{id}/reviews", movieH.Reviews)

	r.Get("/ws/browse", browseH.Browse)

	// JWT protected
	authMw := handler.JWTAuth(cfg.JWTSecret, revoker)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/auth/logout", authH.Logout)

		r.Route("/me", func(r chi.Router) {
			r.Get("/watchlist", watchlistH.List)
			r.Post("/watchlist", watchlistH.Add)
			r.Delete("/watchlist/{movieId}", watchlistH.Remove)

			r.Get("/reviews", reviewH.List)
			r.Post("/reviews", reviewH.Submit)
			r.Delete("/reviews/{movieId}", reviewH.Delete)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	logger.Info().Str("port", cfg.HTTPPort).Msg("http listening")
	logger.Fatal().Err(http.ListenAndServe(":"+cfg.HTTPPort, r)).Msg("server stopped")
}
