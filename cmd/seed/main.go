// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed loads the embedded reference directory into PostgreSQL.
//
// It runs the migrations first, then upserts every diocese, parish and
// ministry from data/seed/seed.json. With -placeholders N it also adds N
// generated placeholder ministries to every parish. When REDIS_URL is set
// the cached search suggestions are dropped afterwards.
//
// Usage:
//
//	go run ./cmd/seed [-placeholders N] [-faker-seed S]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/taibuivan/ministryfinder/data"
	"github.com/taibuivan/ministryfinder/internal/core/diocese"
	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/parish"
	"github.com/taibuivan/ministryfinder/internal/core/search"
	"github.com/taibuivan/ministryfinder/internal/platform/config"
	"github.com/taibuivan/ministryfinder/internal/platform/constants"
	"github.com/taibuivan/ministryfinder/internal/platform/migration"
	pgstore "github.com/taibuivan/ministryfinder/internal/platform/postgres"
	redisstore "github.com/taibuivan/ministryfinder/internal/platform/redis"
	"github.com/taibuivan/ministryfinder/internal/seed"
)

func main() {
	placeholders := flag.Int("placeholders", 0, "placeholder ministries to generate per parish")
	fakerSeed := flag.Int64("faker-seed", 1, "seed for the placeholder generator; reruns with the same seed converge")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName+"-seed"))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), constants.SeedTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, data.Migrations, data.MigrationsDir, log), "run migrations")

	doc, err := seed.Parse(data.Seed)
	must(log, err, "parse seed document")

	loader := seed.NewLoader(
		diocese.NewPostgresRepository(pool),
		parish.NewPostgresRepository(pool),
		ministry.NewPostgresRepository(pool),
		log,
	)

	opts := seed.Options{Placeholders: *placeholders}
	if *placeholders > 0 {
		opts.Generator = seed.NewGenerator(*fakerSeed)
	}

	_, err = loader.Load(ctx, doc, opts)
	must(log, err, "load seed document")

	if cfg.CacheEnabled() {
		rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer rdb.Close()

		search.NewCache(rdb, nil, log).Invalidate(ctx)
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
