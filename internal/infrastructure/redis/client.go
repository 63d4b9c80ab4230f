// Package redis conecta con Redis para los candados por ítem de stock (bsm/redislock)
// y para difundir eventos de cambio entre instancias (PUBLISH/SUBSCRIBE).
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/phonestock-api/pkg/config"
)

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
