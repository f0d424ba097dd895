// Command seed fills the configured database with demo users, posts and engagement.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/anonto42/careerpulse/backend/internal/router"
	"github.com/anonto42/careerpulse/backend/internal/seed"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/anonto42/careerpulse/backend/pkg/cache"
	"github.com/anonto42/careerpulse/backend/pkg/config"
	"github.com/anonto42/careerpulse/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	follows := flag.Int("follows", 5, "Follows attempted per user")
	reactions := flag.Int("reactions", 5, "Maximum reactions per post")
	comments := flag.Int("comments", 3, "Maximum comments per post")
	seedValue := flag.Int64("seed", 0, "Random seed, 0 for a random run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := config.InitDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	rc := cache.Connect(cfg.RedisURL, zlog)
	defer rc.Close()

	repos := router.MongoRepositories(db.Mongo, db.Database, cfg.MongoTransactions)
	svc := router.NewServices(cfg, repos, rc, nil, zlog, services.SystemClock())

	s := seed.NewSeeder(svc, seed.Options{
		Users:          *numUsers,
		Posts:          *numPosts,
		FollowsPerUser: *follows,
		MaxReactions:   *reactions,
		MaxComments:    *comments,
		Seed:           *seedValue,
	}, zlog)

	if _, err := s.Run(context.Background()); err != nil {
		zlog.Fatal("Seeding failed", zap.Error(err))
	}
	zlog.Info("All seeded users share one password", zap.String("password", seed.DefaultPassword))
}
