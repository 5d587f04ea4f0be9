package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-registration/config"
	"github.com/oksasatya/account-registration/internal/application"
	repo "github.com/oksasatya/account-registration/internal/domain/repository"
	"github.com/oksasatya/account-registration/internal/infrastructure/cache"
	"github.com/oksasatya/account-registration/internal/infrastructure/events"
	"github.com/oksasatya/account-registration/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/account-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/account-registration/internal/infrastructure/search"
	"github.com/oksasatya/account-registration/pkg/helpers"
	"github.com/oksasatya/account-registration/pkg/validation"
)

// Container owns the infrastructure handles of one process. Optional
// backends stay nil when their address is not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client

	accounts repo.AccountRepository
}

// Open connects every backend cfg enables. Postgres is required when it is
// the store driver; Redis, RabbitMQ and Elasticsearch failures only log.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.MigrateOnBoot {
			if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		c.PGPool = pool
		c.accounts = pginfra.NewAccountRepository(pool)
	case config.StoreMemory:
		logger.Warn("using in-memory account store; accounts are lost on exit")
		c.accounts = memory.NewAccountRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable; account cache disabled")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
			c.accounts = cache.NewAccountRepository(c.accounts, rdb, cfg.AccountTTL, logger)
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; registration events disabled")
		} else {
			c.RabbitPub = pub
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; account indexing disabled")
		} else {
			c.ES = es
		}
	}

	return c, nil
}

// Accounts returns the account store, wrapped by the Redis cache when one
// is connected.
func (c *Container) Accounts() repo.AccountRepository { return c.accounts }

// Listeners returns one listener per connected event sink.
func (c *Container) Listeners(ctx context.Context) []application.Listener {
	var ls []application.Listener
	if c.RabbitPub != nil {
		ls = append(ls, events.NewAccountPublisher(c.RabbitPub))
	}
	if c.ES != nil {
		idx := search.NewAccountIndexer(c.ES, c.Config.ESAccountsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			c.Logger.WithError(err).Warn("accounts index not ready; indexing will be retried per document")
		}
		ls = append(ls, idx)
	}
	return ls
}

// RegistrationService wires the registration use case on top of the
// container's store and listeners.
func (c *Container) RegistrationService(ctx context.Context) *application.RegistrationService {
	return application.NewRegistrationService(
		c.Accounts(),
		validation.NewCredentialValidator(),
		helpers.NewBcryptHasher(c.Config.BcryptCost, c.Config.HashWorkers),
		helpers.NewTokenIssuer(),
		c.Logger,
		c.Listeners(ctx)...,
	)
}

// Close releases every connected backend.
func (c *Container) Close() {
	c.RabbitPub.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
