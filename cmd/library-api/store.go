package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/api/handler"
	"github.com/librarium/library-api/internal/core/ports"
	"github.com/librarium/library-api/internal/infrastructure/config"
	"github.com/librarium/library-api/internal/infrastructure/db/memory"
	mongodb "github.com/librarium/library-api/internal/infrastructure/db/mongo"
	"github.com/librarium/library-api/internal/infrastructure/db/postgres"
	redisdb "github.com/librarium/library-api/internal/infrastructure/db/redis"
)

// store is the persistence selected by STORE_DRIVER plus the idempotency store.
type store struct {
	users       ports.UserRepository
	books       ports.BookRepository
	authors     ports.AuthorRepository
	borrowers   ports.BorrowerRepository
	idempotency ports.IdempotencyStore
	readiness   map[string]handler.Pinger
	closers     []func(context.Context) error
}

func (s *store) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i](ctx)
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	s := &store{readiness: map[string]handler.Pinger{}, idempotency: redisdb.NoopStore{}}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		repos := mongodb.NewRepositories(db)
		if err := repos.EnsureIndexes(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.users, s.books, s.authors, s.borrowers = repos.Users, repos.Books, repos.Authors, repos.Borrowers
		s.readiness["mongodb"] = mongodb.Pinger{Client: client}

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			s.Close(ctx)
			return nil, err
		}
		repos := postgres.NewRepositories(db)
		s.users, s.books, s.authors, s.borrowers = repos.Users, repos.Books, repos.Authors, repos.Borrowers
		s.readiness["postgres"] = postgres.Pinger{DB: db}

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		repos := memory.NewRepositories()
		s.users, s.books, s.authors, s.borrowers = repos.Users, repos.Books, repos.Authors, repos.Borrowers

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys disabled")
		return s, nil
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		s.Close(ctx)
		return nil, err
	}
	s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
	s.idempotency = redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	s.readiness["redis"] = redisdb.Pinger{Client: rdb}

	return s, nil
}
