package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config - настройки подключения к Redis
type Config struct {
	Address  string
	Password string
	DB       int
}

// ErrEmptyAddress возвращается, когда адрес Redis не сконфигурирован
var ErrEmptyAddress = errors.New("redis address is required")

// connectionTimeout - таймаут проверки соединения
const connectionTimeout = 5 * time.Second

// NewClient создает клиент Redis и проверяет соединение
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
