package core

import (
	"context"
	"fmt"

	"districtportal/internal/config"
	"districtportal/internal/infra/medium/fs"
	"districtportal/internal/infra/medium/memory"
	"districtportal/internal/infra/medium/mongo"
	"districtportal/internal/infra/medium/postgres"
	"districtportal/internal/infra/medium/s3"
	"districtportal/internal/infra/medium/sqlite"
	"districtportal/internal/medium"
)

// StorageConfig selects and parameterizes the durable medium.
type StorageConfig = config.StorageConfig

// OpenMedium constructs the medium named by cfg.Driver. An empty driver selects sqlite.
func OpenMedium(ctx context.Context, cfg StorageConfig) (medium.Medium, error) {
	driver := cfg.EffectiveDriver()
	switch driver {
	case medium.DriverMemory:
		return memory.New(), nil
	case medium.DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case medium.DriverSQLite:
		return sqlite.NewStore(cfg.SQLitePath)
	case medium.DriverPostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)
	case medium.DriverS3:
		return s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	case medium.DriverMongo:
		return mongo.New(ctx, mongo.Config{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// Open constructs the medium from cfg and loads the portal service over it.
func Open(ctx context.Context, cfg StorageConfig, opts ...ServiceOption) (*Service, error) {
	m, err := OpenMedium(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := NewService(ctx, m, opts...)
	if err != nil {
		_ = medium.Close(m)
		return nil, err
	}
	return svc, nil
}
