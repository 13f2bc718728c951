// Package pool manages the redis client used by the session store.
package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

// Manager hands out redis clients keyed by pool type and owns their
// lifecycle.
type Manager struct {
	clients map[string]*redis.Client
	cfg     *config.SessionConfig
	logger  *logx.Logger
	mu      sync.RWMutex
}

// NewManager creates a redis pool manager.
func NewManager(cfg *config.SessionConfig, logger *logx.Logger) *Manager {
	return &Manager{
		clients: make(map[string]*redis.Client),
		cfg:     cfg,
		logger:  logger,
	}
}

// GetClient returns a redis client for the pool type, creating and
// ping-testing it on first use.
func (m *Manager) GetClient(ctx context.Context, poolType string) (*redis.Client, error) {
	m.mu.RLock()
	client, exists := m.clients[poolType]
	m.mu.RUnlock()
	if exists {
		return client, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if client, exists := m.clients[poolType]; exists {
		return client, nil
	}

	client, err := m.createClient(ctx, poolType)
	if err != nil {
		return nil, fmt.Errorf("create redis pool (pool_type=%s): %w", poolType, err)
	}
	m.clients[poolType] = client
	m.logger.Info(ctx, "redis pool created", logx.KV("pool_type", poolType))
	return client, nil
}

func (m *Manager) createClient(ctx context.Context, poolType string) (*redis.Client, error) {
	var redisURL string
	if m.cfg.RedisPassword != "" {
		redisURL = fmt.Sprintf("redis://:%s@%s:%d/%d",
			m.cfg.RedisPassword, m.cfg.RedisHost, m.cfg.RedisPort, m.cfg.RedisDB)
	} else {
		redisURL = fmt.Sprintf("redis://%s:%d/%d",
			m.cfg.RedisHost, m.cfg.RedisPort, m.cfg.RedisDB)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = maxConnectionsForPoolType(poolType)
	opt.MinIdleConns = 1
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func maxConnectionsForPoolType(poolType string) int {
	switch poolType {
	case "high_priority":
		return 50
	case "background":
		return 10
	default:
		return 25
	}
}

// HealthCheck pings every active pool.
func (m *Manager) HealthCheck(ctx context.Context) map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	health := map[string]any{"overall_status": "healthy"}
	pools := make(map[string]any, len(m.clients))
	for poolType, client := range m.clients {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			pools[poolType] = map[string]any{"status": "unhealthy", "error": err.Error()}
			health["overall_status"] = "degraded"
		} else {
			pools[poolType] = map[string]any{"status": "healthy"}
		}
		cancel()
	}
	health["pools"] = pools
	return health
}

// Close shuts down all clients.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for poolType, client := range m.clients {
		if err := client.Close(); err != nil {
			m.logger.Error(context.Background(), "close redis pool failed",
				logx.KV("pool_type", poolType), logx.KV("error", err))
			lastErr = err
		}
	}
	m.clients = make(map[string]*redis.Client)
	return lastErr
}
