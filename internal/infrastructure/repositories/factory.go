package repositories

import (
	"context"

	"costream/internal/core/ports"
	"costream/internal/infrastructure/repositories/memory"
	redisrepo "costream/internal/infrastructure/repositories/redis"
	"costream/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RepositoryFactory creates repositories with fallback support
type RepositoryFactory struct {
	useRedis    bool
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(cfg *config.Config, logger *zap.SugaredLogger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useRedis: cfg.Redis.Enabled,
		logger:   logger,
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warnw("failed to connect to Redis, falling back to memory repositories",
				"error", err,
			)
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis repositories")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

// CreateEventRepository creates an event repository (Redis or memory with fallback)
func (f *RepositoryFactory) CreateEventRepository() ports.EventRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisEventRepository(f.redisClient)
	}
	return memory.NewMemoryEventRepository()
}

// CreateCollaboratorRepository creates a collaborator repository (Redis or memory with fallback)
func (f *RepositoryFactory) CreateCollaboratorRepository() ports.CollaboratorRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisCollaboratorRepository(f.redisClient)
	}
	return memory.NewMemoryCollaboratorRepository()
}

// CreateSessionRepository creates a session repository (Redis or memory with fallback)
func (f *RepositoryFactory) CreateSessionRepository() ports.SessionRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisSessionRepository(f.redisClient)
	}
	return memory.NewMemorySessionRepository()
}

// Close closes Redis connection if used
func (f *RepositoryFactory) Close() error {
	if f.redisClient != nil {
		return redisrepo.CloseRedisClient(f.redisClient)
	}
	return nil
}

// HealthCheck checks Redis connection health
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
