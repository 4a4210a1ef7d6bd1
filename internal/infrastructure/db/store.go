// Package db builds the repositories for the configured storage backend.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/calorietrack/calorie-api/internal/core/ports"
	"github.com/calorietrack/calorie-api/internal/infrastructure/db/mongo"
	"github.com/calorietrack/calorie-api/internal/infrastructure/db/relational"
)

const DriverMongo = "mongo"

// Config selects a backend. SQL drivers use DSN; mongo uses MongoURI/MongoDB.
type Config struct {
	Driver   string
	DSN      string
	MongoURI string
	MongoDB  string
	Timeout  time.Duration
	LogSQL   bool
}

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Users     ports.UserRepository
	Intakes   ports.IntakeRepository
	Artifacts ports.ArtifactRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open connects to the backend named by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case relational.DriverSQLite, relational.DriverPostgres, relational.DriverMySQL:
		return openRelational(cfg)
	case DriverMongo:
		return openMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func openRelational(cfg Config) (*Store, error) {
	gdb, err := relational.Open(relational.Config{Driver: cfg.Driver, DSN: cfg.DSN, Timeout: cfg.Timeout, LogSQL: cfg.LogSQL})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	return &Store{
		Users:     relational.NewUserRepository(gdb, cfg.Timeout),
		Intakes:   relational.NewIntakeRepository(gdb, cfg.Timeout),
		Artifacts: relational.NewArtifactRepository(gdb, cfg.Timeout),
		ping:      sqlDB.PingContext,
		close:     func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg Config) (*Store, error) {
	client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDB, Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		Users:     mongo.NewUserRepository(database, cfg.Timeout),
		Intakes:   mongo.NewIntakeRepository(client, database, cfg.Timeout),
		Artifacts: mongo.NewArtifactRepository(database, cfg.Timeout),
		ping:      func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:     client.Disconnect,
	}, nil
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
