package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB holds the audit database, nil when auditing is disabled
	MongoDB *mongo.Database
	// Redis client backing per-browser UI state
	Redis *redisclient.Client
)

// InitMongoDB connects to the audit database. An empty MONGODB_URI leaves
// MongoDB nil and auditing disabled.
func InitMongoDB() error {
	if AppConfig.MongoURI == "" {
		logging.Logger.Info("MONGODB_URI not set, audit trail disabled")
		return nil
	}

	timeout := getEnvAsDurationOrDefault("MONGODB_CONNECT_TIMEOUT", 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(uint64(getEnvAsIntOrDefault("MONGODB_MAX_POOL_SIZE", 20))).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureAuditLogsIndex(ctx, MongoDB.Collection(AppConfig.MongoAuditCollection)); err != nil {
		logging.Logger.Error("failed to ensure audit indexes", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
	return nil
}

// InitRedis initializes the Redis connection. REDIS_URI accepts either a
// host:port address or a redis:// URL.
func InitRedis() error {
	opts, err := redisOptions(AppConfig.RedisURI, AppConfig.RedisPassword, AppConfig.RedisDB)
	if err != nil {
		return err
	}

	Redis = redisclient.NewClient(redis.NewClient(opts))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
	return nil
}

func redisOptions(uri, password string, db int) (*redis.Options, error) {
	var opts *redis.Options
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		parsed, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URI: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: uri, DB: db}
	}

	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = getEnvAsIntOrDefault("REDIS_POOL_SIZE", 10)
	opts.MinIdleConns = 2
	return opts, nil
}

// maskMongoURI masks sensitive information in MongoDB URI
func maskMongoURI(uri string) string {
	return "mongodb://****:****@" + uri[strings.LastIndex(uri, "@")+1:]
}

// ensureAuditLogsIndex creates the audit indexes that do not exist yet
func ensureAuditLogsIndex(ctx context.Context, collection *mongo.Collection) error {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	existing := make(map[string]bool)
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok {
			existing[name] = true
		}
	}

	var toCreate []mongo.IndexModel
	for _, model := range auditIndexModels() {
		if !existing[*model.Options.Name] {
			toCreate = append(toCreate, model)
		}
	}
	if len(toCreate) == 0 {
		return nil
	}

	if _, err := collection.Indexes().CreateMany(ctx, toCreate); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	logging.Logger.Info("created audit indexes", zap.Int("count", len(toCreate)))
	return nil
}

func auditIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("timestamp_-1"),
		},
		{
			Keys:    bson.D{{Key: "actor_cpf", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("actor_cpf_1_timestamp_-1"),
		},
		{
			Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}},
			Options: options.Index().SetName("resource_1_resource_id_1"),
		},
	}
}
